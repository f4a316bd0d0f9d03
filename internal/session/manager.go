package session

import "github.com/google/uuid"

// Manager creates sessions bound to a shared store. New sessions get a
// random key; Get rebinds to an existing key (the middleware path).
type Manager struct {
	store Store
}

// NewManager returns a Manager over store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// New returns an uninitialized session under a fresh random key.
func (m *Manager) New() *Session {
	return New(m.store, uuid.NewString())
}

// Get returns an uninitialized session bound to an existing key. The
// caller restores it to resolve the persisted state.
func (m *Manager) Get(key string) *Session {
	return New(m.store, key)
}
