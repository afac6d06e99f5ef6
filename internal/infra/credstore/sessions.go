// Package credstore persists bearer tokens outside the process: per browser
// session for the console, in a user file for hrdeskctl.
package credstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultKeyPrefix = "hrdesk:session:"

var ErrSessionNotFound = errors.New("session not found")

// Sessions maps an opaque session id to the bearer token of that session.
type Sessions interface {
	Load(ctx context.Context, id string) (string, error)
	Save(ctx context.Context, id, token string, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

func NewRedisClient(url string, poolSize int) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	if poolSize > 0 {
		opt.PoolSize = poolSize
	}

	client := redis.NewClient(opt)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// RedisSessions keeps tokens as plain string values under prefix+id.
type RedisSessions struct {
	client redis.Cmdable
	prefix string
}

func NewRedisSessions(client redis.Cmdable, prefix string) *RedisSessions {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisSessions{client: client, prefix: prefix}
}

func (s *RedisSessions) key(id string) string {
	return s.prefix + id
}

func (s *RedisSessions) Load(ctx context.Context, id string) (string, error) {
	token, err := s.client.Get(ctx, s.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session: %w", err)
	}
	return token, nil
}

func (s *RedisSessions) Save(ctx context.Context, id, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(id), token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *RedisSessions) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

type memoryEntry struct {
	token   string
	expires time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

// MemorySessions is the single-instance fallback used when no Redis URL is
// configured. Expired entries are dropped on Load and swept on every Save.
type MemorySessions struct {
	mu   sync.Mutex
	data map[string]memoryEntry
	now  func() time.Time
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{
		data: make(map[string]memoryEntry),
		now:  time.Now,
	}
}

func (m *MemorySessions) Load(_ context.Context, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.data[id]
	if !ok {
		return "", ErrSessionNotFound
	}
	if entry.expired(m.now()) {
		delete(m.data, id)
		return "", ErrSessionNotFound
	}
	return entry.token, nil
}

func (m *MemorySessions) Save(_ context.Context, id, token string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for key, existing := range m.data {
		if existing.expired(now) {
			delete(m.data, key)
		}
	}

	entry := memoryEntry{token: token}
	if ttl > 0 {
		entry.expires = now.Add(ttl)
	}
	m.data[id] = entry
	return nil
}

func (m *MemorySessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}
