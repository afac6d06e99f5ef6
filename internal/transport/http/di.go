package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/NYTimes/gziphandler"
	"github.com/rs/cors"

	"github.com/astro-web3/hrdesk-console/internal/app/branding"
	"github.com/astro-web3/hrdesk-console/internal/config"
	"github.com/astro-web3/hrdesk-console/internal/infra/api"
	"github.com/astro-web3/hrdesk-console/internal/infra/credstore"
	"github.com/astro-web3/hrdesk-console/pkg/logger"
	"github.com/astro-web3/hrdesk-console/pkg/otel"
	"github.com/astro-web3/hrdesk-console/pkg/tracer"
)

type Server struct {
	httpServer    *http.Server
	stopBootstrap context.CancelFunc
}

const (
	idleTimeoutMultiplier = 2
	serviceName           = "hrdesk-console"
)

func NewServer(cfg *config.Config) (*Server, error) {
	logger.InitLogger(cfg.Observability.LogLevel, cfg.Observability.Format, cfg.Observability.LogSource)

	otelCfg := otel.DefaultConfig(serviceName)
	otelCfg.EndpointURL = cfg.Observability.TracingEndpointURL
	otelCfg.Enabled = cfg.Observability.TraceEnabled
	if err := tracer.InitTracer(serviceName, otelCfg); err != nil {
		return nil, fmt.Errorf("failed to initialize tracer: %w", err)
	}

	sessions, err := newSessions(cfg)
	if err != nil {
		return nil, err
	}

	gateway := api.NewGateway(cfg.API.BaseURL, nil)
	assets := NewAssets()
	brandingService := branding.NewService(gateway.Anonymous(), gateway.BaseURL(), assets.DefaultFavicon())

	handler := NewHandler(gateway, sessions, brandingService, assets, cfg)
	router := NewRouter(handler, cfg)

	var root http.Handler = router
	if len(cfg.CORS.AllowedOrigins) > 0 {
		root = cors.New(cors.Options{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost},
			AllowCredentials: true,
		}).Handler(root)
	}
	root = gziphandler.GzipHandler(root)

	bootstrapCtx, stopBootstrap := context.WithCancel(context.Background())
	go brandingService.Bootstrap(bootstrapCtx)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      root,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout * idleTimeoutMultiplier,
	}

	return &Server{
		httpServer:    httpServer,
		stopBootstrap: stopBootstrap,
	}, nil
}

// newSessions picks Redis when a URL is configured and the in-process store
// otherwise. The in-process store loses every session on restart.
func newSessions(cfg *config.Config) (credstore.Sessions, error) {
	if cfg.Session.RedisURL == "" {
		logger.WarnContext(context.Background(), "no session redis configured, sessions are kept in memory")
		return credstore.NewMemorySessions(), nil
	}

	client, err := credstore.NewRedisClient(cfg.Session.RedisURL, cfg.Session.PoolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	return credstore.NewRedisSessions(client, cfg.Session.KeyPrefix), nil
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.stopBootstrap()
	return s.httpServer.Shutdown(ctx)
}
