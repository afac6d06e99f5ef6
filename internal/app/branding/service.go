// Package branding keeps the site title and favicon fetched from the public
// branding endpoint. The console renders with the default until the first
// fetch settles and falls back to it when that fetch fails.
package branding

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/astro-web3/hrdesk-console/internal/domain/hr"
	"github.com/astro-web3/hrdesk-console/internal/infra/api"
	"github.com/astro-web3/hrdesk-console/pkg/logger"
	"github.com/astro-web3/hrdesk-console/pkg/tracer"
)

const DefaultTitle = "HR Desk"

type Snapshot struct {
	Title string
	// FaviconPath is the path reported by the API, empty for the bundled icon.
	FaviconPath string
	// FaviconHref is what pages put in <link rel="icon">.
	FaviconHref string
}

// Fetcher is satisfied by an anonymous api.Gateway.
type Fetcher interface {
	Call(ctx context.Context, method, path string, body, out any) error
}

type Service struct {
	api         Fetcher
	origin      string
	defaultIcon string

	mu         sync.Mutex
	generation uint64
	current    atomic.Pointer[Snapshot]

	readyOnce sync.Once
	ready     chan struct{}
}

// NewService builds a Service that resolves favicon paths against the origin
// of apiBaseURL. defaultIcon is the href used when no favicon is configured.
func NewService(fetcher Fetcher, apiBaseURL, defaultIcon string) *Service {
	s := &Service{
		api:         fetcher,
		origin:      originOf(apiBaseURL),
		defaultIcon: defaultIcon,
		ready:       make(chan struct{}),
	}
	def := s.Default()
	s.current.Store(&def)
	return s
}

func (s *Service) Default() Snapshot {
	return Snapshot{Title: DefaultTitle, FaviconHref: s.defaultIcon}
}

// Current returns the applied snapshot, or the default while Bootstrap is
// still pending.
func (s *Service) Current() Snapshot {
	return *s.current.Load()
}

// Ready is closed once Bootstrap has applied a result.
func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

// Bootstrap fetches branding once without credentials. Any failure applies
// the default and is only logged.
func (s *Service) Bootstrap(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "app.branding.Bootstrap")
	defer span.End()

	gen := s.begin()
	defer s.readyOnce.Do(func() { close(s.ready) })

	b, err := s.fetch(ctx)
	if err != nil {
		span.RecordError(err)
		logger.WarnContext(ctx, "failed to load branding, using default", slog.Any("error", err))
		s.commit(gen, s.Default())
		return
	}
	s.commit(gen, s.snapshot(b))
}

// Refresh re-fetches branding. On failure the current snapshot stays.
func (s *Service) Refresh(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "app.branding.Refresh")
	defer span.End()

	gen := s.begin()
	b, err := s.fetch(ctx)
	if err != nil {
		span.RecordError(err)
		logger.WarnContext(ctx, "failed to refresh branding", slog.Any("error", err))
		return err
	}
	s.commit(gen, s.snapshot(b))
	return nil
}

// Apply installs b immediately and supersedes any fetch still in flight.
func (s *Service) Apply(b hr.Branding) Snapshot {
	snap := s.snapshot(b)
	s.commit(s.begin(), snap)
	return snap
}

// FaviconHref resolves an API favicon path for use in markup.
func (s *Service) FaviconHref(path string) string {
	switch {
	case path == "":
		return s.defaultIcon
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		return path
	default:
		return s.origin + path
	}
}

func (s *Service) fetch(ctx context.Context) (hr.Branding, error) {
	var b hr.Branding
	err := s.api.Call(ctx, http.MethodGet, api.BrandingPath, nil, &b)
	return b, err
}

// snapshot builds the snapshot for b. An empty title keeps the one currently
// shown, which is the default until a title has been applied.
func (s *Service) snapshot(b hr.Branding) Snapshot {
	title := b.SiteTitle
	if title == "" {
		title = s.Current().Title
	}
	return Snapshot{
		Title:       title,
		FaviconPath: b.SiteFavicon,
		FaviconHref: s.FaviconHref(b.SiteFavicon),
	}
}

func (s *Service) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// commit stores snap unless a newer fetch or Apply has started since gen.
func (s *Service) commit(gen uint64, snap Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	s.current.Store(&snap)
	return true
}

func originOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
