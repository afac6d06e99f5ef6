// Package shell owns the console's session state: whether a credential is
// present, the role it claims and the access decision derived from that role.
//
// State is recomputed only on Start, Login and Logout. If the credential is
// revoked or replaced elsewhere while a Shell is live, State keeps reporting
// the old role until the next transition. The web console creates a Shell per
// page load, so a reload always reflects the stored credential.
package shell

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/astro-web3/hrdesk-console/internal/domain/access"
	"github.com/astro-web3/hrdesk-console/internal/domain/credential"
	"github.com/astro-web3/hrdesk-console/internal/domain/session"
	"github.com/astro-web3/hrdesk-console/pkg/logger"
	"github.com/astro-web3/hrdesk-console/pkg/tracer"
)

// Authenticator exchanges credentials for a token and stores it.
type Authenticator interface {
	Login(ctx context.Context, username, password string) error
}

type State struct {
	Authenticated bool
	Role          session.Role
	Access        access.Decision
}

func (s State) Navigation() []access.Item {
	return s.Access.Navigation()
}

type Shell struct {
	creds credential.Store
	auth  Authenticator

	mu    sync.RWMutex
	state State
}

func New(creds credential.Store, auth Authenticator) *Shell {
	return &Shell{
		creds: creds,
		auth:  auth,
		state: derive("", false),
	}
}

// Start reads the stored credential and derives the initial state.
func (s *Shell) Start(ctx context.Context) State {
	token, ok := s.creds.Get(ctx)
	return s.set(derive(token, ok))
}

// Login authenticates and, on success, re-derives state from the new
// credential. A failed login leaves both the credential and State untouched.
func (s *Shell) Login(ctx context.Context, username, password string) (State, error) {
	ctx, span := tracer.Start(ctx, "app.shell.Login")
	defer span.End()

	if err := s.auth.Login(ctx, username, password); err != nil {
		span.RecordError(err)
		return s.State(), err
	}

	token, ok := s.creds.Get(ctx)
	state := s.set(derive(token, ok))

	span.SetAttributes(
		attribute.String("session.role", state.Role.String()),
		attribute.Bool("session.elevated", state.Access.Elevated()),
	)
	logger.InfoContext(ctx, "user signed in",
		slog.String("username", username),
		slog.String("role", state.Role.String()),
	)

	return state, nil
}

// Logout clears the credential and returns to the unauthenticated state.
func (s *Shell) Logout(ctx context.Context) (State, error) {
	if err := s.creds.Clear(ctx); err != nil {
		return s.State(), fmt.Errorf("failed to clear credential: %w", err)
	}
	return s.set(derive("", false)), nil
}

func (s *Shell) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Shell) set(state State) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	return state
}

func derive(token string, present bool) State {
	if !present {
		return State{Access: access.Decide(session.RoleNone)}
	}
	role := session.DecodeRole(token)
	return State{
		Authenticated: true,
		Role:          role,
		Access:        access.Decide(role),
	}
}
