// Package session implements the binding of zero-or-one authenticated
// user, persisted across requests through a key-value store. A Session
// is explicitly owned and injectable, so tests can run isolated
// sessions, and it notifies subscribers exactly on transitions between
// the authenticated and unauthenticated states.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/childhope-org/childhope-backend/internal/models"
)

// State of a session. A session starts uninitialized, passes through
// restoring once, and then stays in authenticated or unauthenticated
// until the next login/logout.
type State int

const (
	StateUninitialized State = iota
	StateRestoring
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

var (
	// ErrUnauthenticated is returned by operations requiring a current user.
	ErrUnauthenticated = errors.New("session: not authenticated")
	// ErrUserMismatch is returned when an update targets a different user
	// than the one currently bound. The bound identity is immutable.
	ErrUserMismatch = errors.New("session: user id mismatch")
)

// Observer is called with the current user after a transition into the
// authenticated state, and with nil after a transition out of it.
type Observer func(user *models.User)

// Session binds at most one authenticated user under a fixed store key.
type Session struct {
	mu        sync.Mutex
	key       string
	store     Store
	state     State
	user      *models.User
	observers map[int]Observer
	nextObs   int
}

// New returns an uninitialized session bound to key.
func New(store Store, key string) *Session {
	return &Session{
		key:       key,
		store:     store,
		state:     StateUninitialized,
		observers: make(map[int]Observer),
	}
}

// Key returns the store key this session persists under.
func (s *Session) Key() string { return s.key }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Loading reports whether restoration has not yet resolved to a
// definite authenticated/unauthenticated state.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateUninitialized || s.state == StateRestoring
}

// Current returns a copy of the bound user, or nil when unauthenticated.
func (s *Session) Current() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated reports whether a user is currently bound.
func (s *Session) Authenticated() bool {
	return s.Current() != nil
}

// Restore recovers a previously persisted user. It is idempotent: once
// the session has resolved, further calls return immediately. A store
// failure resolves the session to unauthenticated and is returned.
func (s *Session) Restore(ctx context.Context) error {
	const op = "session.Restore"

	s.mu.Lock()
	if s.state != StateUninitialized {
		s.mu.Unlock()
		return nil
	}
	s.state = StateRestoring
	s.mu.Unlock()

	user, err := s.store.Load(ctx, s.key)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateUnauthenticated
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	s.user = user
	s.state = StateAuthenticated
	s.notifyLocked(user)
	return nil
}

// SetUser persists user and binds it as the current user, replacing any
// previous binding. Persistence failure leaves the session unchanged.
func (s *Session) SetUser(ctx context.Context, user models.User) error {
	const op = "session.SetUser"
	if err := s.store.Save(ctx, s.key, user); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	wasAuthenticated := s.state == StateAuthenticated
	s.user = &user
	s.state = StateAuthenticated
	if !wasAuthenticated {
		s.notifyLocked(&user)
	}
	return nil
}

// Update replaces the bound user's mutable fields with user, which must
// carry the same identifier. The session stays authenticated.
func (s *Session) Update(ctx context.Context, user models.User) error {
	const op = "session.Update"

	s.mu.Lock()
	if s.state != StateAuthenticated || s.user == nil {
		s.mu.Unlock()
		return ErrUnauthenticated
	}
	if s.user.ID != user.ID {
		s.mu.Unlock()
		return ErrUserMismatch
	}
	s.mu.Unlock()

	if err := s.store.Save(ctx, s.key, user); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	return nil
}

// SetSubscription attaches a subscription snapshot to the bound user.
// A nil snapshot clears it.
func (s *Session) SetSubscription(ctx context.Context, sub *models.Subscription) error {
	s.mu.Lock()
	if s.state != StateAuthenticated || s.user == nil {
		s.mu.Unlock()
		return ErrUnauthenticated
	}
	updated := *s.user
	updated.Subscription = sub
	s.mu.Unlock()

	return s.Update(ctx, updated)
}

// Clear removes the persisted user and resolves the session to
// unauthenticated. It is safe to call on an already-cleared session.
func (s *Session) Clear(ctx context.Context) error {
	const op = "session.Clear"
	if err := s.store.Delete(ctx, s.key); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	wasAuthenticated := s.state == StateAuthenticated
	s.user = nil
	s.state = StateUnauthenticated
	if wasAuthenticated {
		s.notifyLocked(nil)
	}
	return nil
}

// Subscribe registers an observer for authenticated/unauthenticated
// transitions and returns its unsubscribe function.
func (s *Session) Subscribe(fn Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// notifyLocked fires observers while the mutex is held; observers must
// not call back into the session.
func (s *Session) notifyLocked(user *models.User) {
	for _, fn := range s.observers {
		fn(user)
	}
}
