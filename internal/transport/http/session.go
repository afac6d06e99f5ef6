package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/astro-web3/hrdesk-console/internal/app/shell"
	"github.com/astro-web3/hrdesk-console/internal/infra/api"
	"github.com/astro-web3/hrdesk-console/internal/infra/credstore"
	"github.com/astro-web3/hrdesk-console/pkg/logger"
)

const (
	scopeKey        = "hrdesk_scope"
	themeCookieName = "darkMode"
	themeCookieAge  = 365 * 24 * 60 * 60
)

type cookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// cookieCredentials is the credential.Store of one browser request. The
// browser only ever sees an opaque session id; the token stays server-side.
type cookieCredentials struct {
	c        *gin.Context
	sessions credstore.Sessions
	cookie   cookieConfig

	id       string
	resolved bool
}

func newCookieCredentials(c *gin.Context, sessions credstore.Sessions, cookie cookieConfig) *cookieCredentials {
	return &cookieCredentials{c: c, sessions: sessions, cookie: cookie}
}

func (s *cookieCredentials) sessionID() string {
	if !s.resolved {
		s.id, _ = s.c.Cookie(s.cookie.Name)
		s.resolved = true
	}
	return s.id
}

func (s *cookieCredentials) Get(ctx context.Context) (string, bool) {
	id := s.sessionID()
	if id == "" {
		return "", false
	}

	token, err := s.sessions.Load(ctx, id)
	if err != nil {
		if !errors.Is(err, credstore.ErrSessionNotFound) {
			logger.WarnContext(ctx, "failed to load session, treating as signed out", slog.Any("error", err))
		}
		return "", false
	}
	return token, true
}

// Set stores token under a fresh session id and drops the previous one.
func (s *cookieCredentials) Set(ctx context.Context, token string) error {
	previous := s.sessionID()
	id := uuid.NewString()

	if err := s.sessions.Save(ctx, id, token, s.cookie.TTL); err != nil {
		return err
	}
	if previous != "" {
		if err := s.sessions.Delete(ctx, previous); err != nil {
			logger.WarnContext(ctx, "failed to drop previous session", slog.Any("error", err))
		}
	}

	s.id = id
	s.writeCookie(id, int(s.cookie.TTL.Seconds()))
	return nil
}

func (s *cookieCredentials) Clear(ctx context.Context) error {
	if id := s.sessionID(); id != "" {
		if err := s.sessions.Delete(ctx, id); err != nil {
			return err
		}
	}
	s.id = ""
	s.writeCookie("", -1)
	return nil
}

func (s *cookieCredentials) writeCookie(value string, maxAge int) {
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(s.cookie.Name, value, maxAge, "/", "", s.cookie.Secure, true)
}

// requestScope carries what a page load needs: the session shell and a
// gateway bound to this request's credential.
type requestScope struct {
	shell   *shell.Shell
	gateway *api.Gateway
	state   shell.State
}

func scopeFrom(c *gin.Context) *requestScope {
	if v, ok := c.Get(scopeKey); ok {
		if scope, ok := v.(*requestScope); ok {
			return scope
		}
	}
	return nil
}

// darkMode reads the theme cookie. ok is false when the user never chose,
// in which case pages follow the system preference.
func darkMode(c *gin.Context) (dark, ok bool) {
	v, err := c.Cookie(themeCookieName)
	if err != nil {
		return false, false
	}
	switch v {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}
