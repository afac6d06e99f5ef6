package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/astro-web3/hrdesk-console/internal/app/shell"
	"github.com/astro-web3/hrdesk-console/internal/domain/access"
	"github.com/astro-web3/hrdesk-console/pkg/logger"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hrdesk",
		Subsystem: "console",
		Name:      "http_requests_total",
		Help:      "Console HTTP requests broken down by method, route and status.",
	}, []string{"method", "route", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hrdesk",
		Subsystem: "console",
		Name:      "http_request_duration_seconds",
		Help:      "Latency distribution of console HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		attrs := []slog.Attr{
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("duration", duration),
		}
		if scope := scopeFrom(c); scope != nil {
			attrs = append(attrs, slog.String("role", scope.state.Role.String()))
		}

		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request.Context(), "request failed", attrs...)
		} else {
			logger.InfoContext(c.Request.Context(), "request completed", attrs...)
		}
	}
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpLatency.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// sessionMiddleware starts a Shell for every request. Each request is a page
// load, so the role always reflects the credential stored right now.
func (h *Handler) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		creds := newCookieCredentials(c, h.sessions, h.cookie)
		gateway := h.gateway.WithCredentials(creds)
		sh := shell.New(creds, gateway)

		c.Set(scopeKey, &requestScope{
			shell:   sh,
			gateway: gateway,
			state:   sh.Start(c.Request.Context()),
		})
		c.Next()
	}
}

// gate mounts item's routes only when the request's access decision allows
// it, the same decision that renders the menu. Anything else is a 404, just
// like a route that does not exist.
func (h *Handler) gate(item access.Item) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := scopeFrom(c)
		if scope == nil || !scope.state.Access.Allows(item) {
			h.notFound(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
