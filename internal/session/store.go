package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/childhope-org/childhope-backend/internal/cache"
	"github.com/childhope-org/childhope-backend/internal/models"
)

// ErrNotFound is returned by Load when no user is persisted under the key.
var ErrNotFound = errors.New("session: not found")

// Store persists at most one serialized user per session key.
type Store interface {
	Save(ctx context.Context, key string, user models.User) error
	Load(ctx context.Context, key string) (*models.User, error)
	Delete(ctx context.Context, key string) error
}

// MemoryStore is an in-process Store used by tests and the mock
// provider setup.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]models.User
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]models.User)}
}

// Save stores a copy of user under key.
func (m *MemoryStore) Save(_ context.Context, key string, user models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[key] = user
	return nil
}

// Load returns the user stored under key or ErrNotFound.
func (m *MemoryStore) Load(_ context.Context, key string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[key]
	if !ok {
		return nil, ErrNotFound
	}
	u := user
	return &u, nil
}

// Delete removes the user stored under key, if any.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, key)
	return nil
}

// CacheStore persists sessions in redis through the cache layer, one
// key per session holding the serialized current user.
type CacheStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewCacheStore wraps c as a session store with the given TTL.
func NewCacheStore(c *cache.Cache, ttl time.Duration) *CacheStore {
	return &CacheStore{cache: c, ttl: ttl}
}

func (s *CacheStore) storeKey(key string) string {
	return "session:" + key
}

// Save serializes user under the session key.
func (s *CacheStore) Save(ctx context.Context, key string, user models.User) error {
	const op = "session.CacheStore.Save"
	if err := s.cache.Set(ctx, s.storeKey(key), user, s.ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Load returns the persisted user or ErrNotFound.
func (s *CacheStore) Load(ctx context.Context, key string) (*models.User, error) {
	const op = "session.CacheStore.Load"
	var user models.User
	ok, err := s.cache.Get(ctx, s.storeKey(key), &user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

// Delete removes the persisted user, if any.
func (s *CacheStore) Delete(ctx context.Context, key string) error {
	const op = "session.CacheStore.Delete"
	if err := s.cache.Invalidate(ctx, s.storeKey(key)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
