package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/astro-web3/hrdesk-console/internal/app/branding"
	"github.com/astro-web3/hrdesk-console/internal/app/pages"
	"github.com/astro-web3/hrdesk-console/internal/config"
	"github.com/astro-web3/hrdesk-console/internal/domain/access"
	"github.com/astro-web3/hrdesk-console/internal/infra/api"
	"github.com/astro-web3/hrdesk-console/internal/infra/credstore"
	"github.com/astro-web3/hrdesk-console/pkg/logger"
	"github.com/astro-web3/hrdesk-console/pkg/tracer"
)

const genericError = "Something went wrong. Please try again."

type Handler struct {
	gateway  *api.Gateway
	sessions credstore.Sessions
	branding *branding.Service
	assets   *Assets
	cookie   cookieConfig
	now      pages.Clock
}

type HandlerOption func(*Handler)

// WithClock sets the clock pages use for "today" and the current month.
func WithClock(now pages.Clock) HandlerOption {
	return func(h *Handler) {
		h.now = now
	}
}

func NewHandler(
	gateway *api.Gateway,
	sessions credstore.Sessions,
	brandingService *branding.Service,
	assets *Assets,
	cfg *config.Config,
	opts ...HandlerOption,
) *Handler {
	h := &Handler{
		gateway:  gateway,
		sessions: sessions,
		branding: brandingService,
		assets:   assets,
		cookie: cookieConfig{
			Name:   cfg.Session.CookieName,
			TTL:    cfg.Session.TTL,
			Secure: cfg.Session.SecureCookie,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type navItemResponse struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon"`
}

type sessionResponse struct {
	Authenticated bool              `json:"authenticated"`
	Role          string            `json:"role"`
	Elevated      bool              `json:"elevated"`
	Navigation    []navItemResponse `json:"navigation"`
}

// Session reports the state the menu and route gate are derived from.
func (h *Handler) Session(c *gin.Context) {
	state := scopeFrom(c).state

	nav := make([]navItemResponse, 0)
	for _, item := range state.Navigation() {
		nav = append(nav, navItemResponse{Label: item.Label, Path: item.Path, Icon: item.Icon})
	}

	c.JSON(http.StatusOK, sessionResponse{
		Authenticated: state.Authenticated,
		Role:          string(state.Role),
		Elevated:      state.Access.Elevated(),
		Navigation:    nav,
	})
}

func (h *Handler) LoginForm(c *gin.Context) {
	if scopeFrom(c).state.Authenticated {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.renderLogin(c, http.StatusOK, "")
}

func (h *Handler) Login(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "transport.http.Login")
	defer span.End()

	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	if username == "" || password == "" {
		h.renderLogin(c, http.StatusUnprocessableEntity, "Enter a username and password.")
		return
	}

	scope := scopeFrom(c)
	state, err := scope.shell.Login(ctx, username, password)
	if err != nil {
		span.RecordError(err)
		logger.WarnContext(ctx, "sign-in failed", slog.String("username", username), slog.Any("error", err))
		h.renderLogin(c, statusFor(err), errorText(err))
		return
	}
	scope.state = state

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) Logout(c *gin.Context) {
	scope := scopeFrom(c)
	state, err := scope.shell.Logout(c.Request.Context())
	if err != nil {
		logger.ErrorContext(c.Request.Context(), "failed to sign out", slog.Any("error", err))
		c.Status(http.StatusInternalServerError)
		return
	}
	scope.state = state

	c.Redirect(http.StatusSeeOther, "/")
}

// Theme stores the dark mode preference; "system" forgets it.
func (h *Handler) Theme(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	switch c.PostForm("dark") {
	case "true":
		c.SetCookie(themeCookieName, "true", themeCookieAge, "/", "", h.cookie.Secure, false)
	case "false":
		c.SetCookie(themeCookieName, "false", themeCookieAge, "/", "", h.cookie.Secure, false)
	default:
		c.SetCookie(themeCookieName, "", -1, "/", "", h.cookie.Secure, false)
	}
	c.Redirect(http.StatusSeeOther, backTo(c))
}

func (h *Handler) notFound(c *gin.Context) {
	view := h.layout(c, "Not found")
	c.HTML(http.StatusNotFound, "notfound", view)
}

func (h *Handler) renderLogin(c *gin.Context, status int, message string) {
	view := h.layout(c, "Sign in")
	view.SigningIn = true
	view.Error = message
	c.HTML(status, "login", view)
}

// pageLoader fetches the data a page renders.
type pageLoader func(c *gin.Context, scope *requestScope) (any, error)

// pageAction performs a form submission and returns the notice to show.
type pageAction func(c *gin.Context, scope *requestScope) (string, error)

type pageRoute struct {
	template string
	heading  string
	load     pageLoader
	actions  map[string]pageAction
}

func (h *Handler) showPage(route pageRoute) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.renderPage(c, route, http.StatusOK, c.Query("notice"), nil)
	}
}

// runAction redirects back to the page on success and re-renders it with the
// error inline otherwise.
func (h *Handler) runAction(item access.Item, route pageRoute, act pageAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		notice, err := act(c, scopeFrom(c))
		if err != nil {
			if discarded(c, err) {
				return
			}
			logger.WarnContext(c.Request.Context(), "page action failed",
				slog.String("path", c.Request.URL.Path), slog.Any("error", err))
			h.renderPage(c, route, statusFor(err), "", err)
			return
		}

		target := item.Path
		if notice != "" {
			target += "?notice=" + url.QueryEscape(notice)
		}
		c.Redirect(http.StatusSeeOther, target)
	}
}

func (h *Handler) renderPage(c *gin.Context, route pageRoute, status int, notice string, actionErr error) {
	data, err := route.load(c, scopeFrom(c))
	if err != nil && discarded(c, err) {
		return
	}

	view := h.layout(c, route.heading)
	view.Notice = notice
	view.Page = data

	switch {
	case actionErr != nil:
		view.Error = errorText(actionErr)
	case err != nil:
		view.Error = errorText(err)
		status = statusFor(err)
	}

	c.HTML(status, route.template, view)
}

// discarded reports whether err comes from the client going away, in which
// case the result is dropped without rendering.
func discarded(c *gin.Context, err error) bool {
	if c.Request.Context().Err() != nil && errors.Is(err, context.Canceled) {
		c.Abort()
		return true
	}
	return false
}

func statusFor(err error) int {
	var vErr *pages.ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, pages.ErrNotAllowed):
		return http.StatusForbidden
	}
	if status := api.StatusOf(err); status >= http.StatusBadRequest && status < http.StatusInternalServerError {
		return status
	}
	return http.StatusBadGateway
}

func errorText(err error) string {
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return genericError
}

// backTo returns the local path of the referring page, or "/".
func backTo(c *gin.Context) string {
	ref, err := url.Parse(c.Request.Referer())
	if err != nil || ref.Path == "" || !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") {
		return "/"
	}
	if ref.Host != "" && ref.Host != c.Request.Host {
		return "/"
	}
	return ref.Path
}
