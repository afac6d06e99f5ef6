package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/astro-web3/hrdesk-console/internal/config"
	"github.com/astro-web3/hrdesk-console/internal/domain/access"
)

func NewRouter(handler *Handler, cfg *config.Config) *gin.Engine {
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.SetHTMLTemplate(parseTemplates(handler.assets))

	router.Use(gin.Recovery())
	if cfg.Observability.TraceEnabled {
		router.Use(otelgin.Middleware(serviceName))
	}
	router.Use(loggingMiddleware(), metricsMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	if cfg.Observability.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	router.GET("/static/*filepath", gin.WrapH(handler.assets.Handler()))

	console := router.Group("", handler.sessionMiddleware())
	console.GET("/login", handler.LoginForm)
	console.POST("/login", handler.Login)
	console.POST("/logout", handler.Logout)
	console.POST("/preferences/theme", handler.Theme)
	console.GET("/session", handler.Session)

	// Every catalog item is registered, but its routes only answer when the
	// request's access decision includes it. That decision also renders the
	// menu, signed in or not.
	routes := handler.pageRoutes()
	for _, item := range access.Catalog() {
		route, ok := routes[item.Path]
		if !ok {
			continue
		}
		page := console.Group(item.Path, handler.gate(item))
		page.GET("", handler.showPage(route))
		for path, act := range route.actions {
			page.POST(path, handler.runAction(item, route, act))
		}
	}

	router.NoRoute(handler.sessionMiddleware(), handler.notFound)

	return router
}
