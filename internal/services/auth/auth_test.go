package auth_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/childhope-org/childhope-backend/internal/models"
	"github.com/childhope-org/childhope-backend/internal/services/auth"
	subscriptionservice "github.com/childhope-org/childhope-backend/internal/services/subscription"
	"github.com/childhope-org/childhope-backend/internal/session"
)

// discard logger
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger { return slog.New(discardHandler{}) }

type staticMinter struct{}

func (staticMinter) GenerateToken(string, string, string) (string, error) {
	return "token-123", nil
}

type fakeFetcher struct {
	result subscriptionservice.FetchResult
	calls  int
}

func (f *fakeFetcher) FetchWithDeadline(_ context.Context, _ string, _ time.Duration) subscriptionservice.FetchResult {
	f.calls++
	return f.result
}

func newFacade(t *testing.T, subs auth.SubscriptionFetcher) (*auth.Service, *session.Session) {
	t.Helper()
	sess := session.New(session.NewMemoryStore(), "test-session")
	svc := auth.NewService(auth.NewMockProvider(), sess, staticMinter{}, subs, time.Second, makeLogger())
	return svc, sess
}

func TestRegisterThenLogin(t *testing.T) {
	svc, sess := newFacade(t, nil)
	ctx := context.Background()

	ok := svc.Register(ctx, auth.RegisterRequest{
		Email:    "a@x.com",
		Password: "secret1",
		Role:     models.RoleDonor,
	})
	require.True(t, ok)

	svc.Logout(ctx)
	require.Nil(t, sess.Current())

	require.True(t, svc.Login(ctx, "a@x.com", "secret1"))
	user := sess.Current()
	require.NotNil(t, user)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, models.RoleDonor, user.Role)
	assert.Zero(t, user.Donations)
	assert.Zero(t, user.VolunteerHours)
	assert.Equal(t, "token-123", user.AccessToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, sess := newFacade(t, nil)
	ctx := context.Background()

	require.True(t, svc.Register(ctx, auth.RegisterRequest{
		Email:    "a@x.com",
		Password: "secret1",
		Role:     models.RoleDonor,
	}))
	svc.Logout(ctx)

	assert.False(t, svc.Login(ctx, "a@x.com", "wrong-password"))
	assert.Nil(t, sess.Current())
}

func TestLogin_EmptyCredentials(t *testing.T) {
	svc, sess := newFacade(t, nil)

	assert.False(t, svc.Login(context.Background(), "", "secret1"))
	assert.False(t, svc.Login(context.Background(), "a@x.com", ""))
	assert.Nil(t, sess.Current())
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newFacade(t, nil)
	ctx := context.Background()

	assert.False(t, svc.Register(ctx, auth.RegisterRequest{
		Email: "not-an-email", Password: "secret1", Role: models.RoleDonor,
	}))
	assert.False(t, svc.Register(ctx, auth.RegisterRequest{
		Email: "a@x.com", Password: "short", Role: models.RoleDonor,
	}))
	// admin is not self-assignable
	assert.False(t, svc.Register(ctx, auth.RegisterRequest{
		Email: "a@x.com", Password: "secret1", Role: models.RoleAdmin,
	}))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newFacade(t, nil)
	ctx := context.Background()

	req := auth.RegisterRequest{Email: "a@x.com", Password: "secret1", Role: models.RoleVolunteer}
	require.True(t, svc.Register(ctx, req))
	assert.False(t, svc.Register(ctx, req))
}

func TestLogout_AlwaysUnauthenticated(t *testing.T) {
	svc, sess := newFacade(t, nil)
	ctx := context.Background()

	// logout with no prior login is safe
	svc.Logout(ctx)
	assert.Nil(t, sess.Current())

	require.True(t, svc.Login(ctx, "a@x.com", "secret1"))
	svc.Logout(ctx)
	assert.Nil(t, sess.Current())
	assert.Equal(t, session.StateUnauthenticated, sess.State())
}

func TestUpdateProfile_Idempotent(t *testing.T) {
	svc, sess := newFacade(t, nil)
	ctx := context.Background()
	require.True(t, svc.Login(ctx, "a@x.com", "secret1"))

	name := "Alice"
	phone := "+1 (555) 123-4567"
	patch := auth.ProfilePatch{Name: &name, Phone: &phone}

	require.True(t, svc.UpdateProfile(ctx, patch))
	once := sess.Current()

	require.True(t, svc.UpdateProfile(ctx, patch))
	twice := sess.Current()

	assert.Equal(t, once, twice)
	assert.Equal(t, "Alice", twice.Name)
	assert.Equal(t, "+1 (555) 123-4567", twice.Phone)
	// immutable fields untouched
	assert.Equal(t, "a@x.com", twice.Email)
	assert.Equal(t, once.ID, twice.ID)
}

func TestUpdateProfile_Preconditions(t *testing.T) {
	svc, _ := newFacade(t, nil)
	ctx := context.Background()

	name := "Alice"
	assert.False(t, svc.UpdateProfile(ctx, auth.ProfilePatch{Name: &name}))

	require.True(t, svc.Login(ctx, "a@x.com", "secret1"))
	admin := models.RoleAdmin
	assert.False(t, svc.UpdateProfile(ctx, auth.ProfilePatch{Role: &admin}))

	volunteer := models.RoleVolunteer
	assert.True(t, svc.UpdateProfile(ctx, auth.ProfilePatch{Role: &volunteer}))
}

type syncFailingProvider struct {
	auth.Provider
}

func (p syncFailingProvider) SyncProfile(context.Context, models.User) error {
	return errors.New("provider unreachable")
}

func TestUpdateProfile_RemoteSyncFailureKeepsLocalMerge(t *testing.T) {
	sess := session.New(session.NewMemoryStore(), "test-session")
	provider := syncFailingProvider{Provider: auth.NewMockProvider()}
	svc := auth.NewService(provider, sess, staticMinter{}, nil, time.Second, makeLogger())
	ctx := context.Background()

	require.True(t, svc.Login(ctx, "a@x.com", "secret1"))

	name := "Alice"
	ok := svc.UpdateProfile(ctx, auth.ProfilePatch{Name: &name})
	assert.False(t, ok)
	assert.Equal(t, "Alice", sess.Current().Name)
}

func TestLogin_AdminEmailGetsAdminRole(t *testing.T) {
	svc, sess := newFacade(t, nil)

	require.True(t, svc.Login(context.Background(), "admin@childhope.org", "secret1"))
	assert.Equal(t, models.RoleAdmin, sess.Current().Role)
	assert.Equal(t, "admin", sess.Current().Name)
}

func TestSnapshotTimeout_LeavesSessionAuthenticated(t *testing.T) {
	fetcher := &fakeFetcher{result: subscriptionservice.FetchResult{
		Outcome: subscriptionservice.OutcomeTimedOut,
		Err:     context.DeadlineExceeded,
	}}
	svc, sess := newFacade(t, fetcher)

	require.True(t, svc.Login(context.Background(), "a@x.com", "secret1"))
	assert.Equal(t, 1, fetcher.calls)
	user := sess.Current()
	require.NotNil(t, user)
	assert.Nil(t, user.Subscription)
}

func TestSnapshotOK_AttachedToSession(t *testing.T) {
	fetcher := &fakeFetcher{result: subscriptionservice.FetchResult{
		Outcome: subscriptionservice.OutcomeOK,
		Snapshot: &models.Subscription{
			Status:  models.SubscriptionActive,
			PriceID: "price_1RjtDVLxmSamPrG3GuU8LeBZ",
		},
	}}
	svc, sess := newFacade(t, fetcher)

	require.True(t, svc.Login(context.Background(), "a@x.com", "secret1"))
	user := sess.Current()
	require.NotNil(t, user.Subscription)
	assert.Equal(t, models.SubscriptionActive, user.Subscription.Status)
}

func TestRestore_RecoversPersistedSession(t *testing.T) {
	store := session.NewMemoryStore()
	first := session.New(store, "shared-key")
	svc := auth.NewService(auth.NewMockProvider(), first, staticMinter{}, nil, time.Second, makeLogger())
	require.True(t, svc.Login(context.Background(), "a@x.com", "secret1"))

	second := session.New(store, "shared-key")
	restored := auth.NewService(auth.NewMockProvider(), second, staticMinter{}, nil, time.Second, makeLogger())
	restored.Restore(context.Background())

	require.NotNil(t, second.Current())
	assert.Equal(t, "a@x.com", second.Current().Email)
}
