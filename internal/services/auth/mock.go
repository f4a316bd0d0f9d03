package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/childhope-org/childhope-backend/internal/models"
)

// MockProvider is the in-memory identity backend used for local
// development and tests. It keeps the demo-site behavior: unknown
// credentials are accepted and synthesized into a user, an email
// containing "admin" grants the admin role, and the display name
// defaults to the email local part.
type MockProvider struct {
	mu       sync.Mutex
	accounts map[string]mockAccount // keyed by email
}

type mockAccount struct {
	user     models.User
	password string
}

// NewMockProvider returns an empty MockProvider.
func NewMockProvider() *MockProvider {
	return &MockProvider{accounts: make(map[string]mockAccount)}
}

// Login returns the registered account for email when the password
// matches, or synthesizes a donor/admin user for unknown emails.
func (m *MockProvider) Login(_ context.Context, email, password string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if acct, ok := m.accounts[email]; ok {
		if acct.password != password {
			return nil, errors.New("invalid credentials")
		}
		u := acct.user
		return &u, nil
	}

	role := models.RoleDonor
	if strings.Contains(email, "admin") {
		role = models.RoleAdmin
	}
	user := models.User{
		ID:    uuid.NewString(),
		Email: email,
		Name:  localPart(email),
		Role:  role,
	}
	m.accounts[email] = mockAccount{user: user, password: password}
	return &user, nil
}

// Register creates a fresh account. Duplicate emails are rejected.
func (m *MockProvider) Register(_ context.Context, req RegisterRequest) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[req.Email]; ok {
		return nil, errors.New("email already registered")
	}
	user := models.User{
		ID:      uuid.NewString(),
		Email:   req.Email,
		Name:    req.Name,
		Role:    req.Role,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if user.Name == "" {
		user.Name = localPart(req.Email)
	}
	m.accounts[req.Email] = mockAccount{user: user, password: req.Password}
	return &user, nil
}

// SyncProfile stores the updated profile for the account, when known.
func (m *MockProvider) SyncProfile(_ context.Context, user models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	acct, ok := m.accounts[user.Email]
	if !ok {
		return errors.New("unknown account")
	}
	user.AccessToken = "" // credential tokens are session state, not account state
	acct.user = user
	m.accounts[user.Email] = acct
	return nil
}

func localPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
