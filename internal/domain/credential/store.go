// Package credential defines the single persisted piece of console state:
// the bearer token returned by the HR API login endpoint.
package credential

import (
	"context"
	"sync"
)

// Store holds at most one bearer token. A token is either present or absent;
// implementations never validate its shape.
type Store interface {
	// Get returns the stored token and true, or "" and false when absent.
	// Backend failures read as absent.
	Get(ctx context.Context) (string, bool)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Memory is a process-local Store.
type Memory struct {
	mu    sync.RWMutex
	token string
	set   bool
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Get(_ context.Context) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.set
}

func (m *Memory) Set(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.set = token, true
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.set = "", false
	return nil
}

type none struct{}

// None is a Store that never holds a token. Set and Clear are no-ops.
var None Store = none{}

func (none) Get(context.Context) (string, bool) { return "", false }
func (none) Set(context.Context, string) error  { return nil }
func (none) Clear(context.Context) error        { return nil }
