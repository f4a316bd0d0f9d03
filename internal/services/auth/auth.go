// Package auth implements the identity facade: login, registration,
// logout and profile updates over an interchangeable provider, bound to
// one session. Failures never propagate as panics or errors to the
// presentation layer; every operation reports success through its
// return value and logs the cause.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator"

	"github.com/childhope-org/childhope-backend/internal/lib/sl"
	"github.com/childhope-org/childhope-backend/internal/models"
	"github.com/childhope-org/childhope-backend/internal/services/subscription"
	"github.com/childhope-org/childhope-backend/internal/session"
)

// minPasswordLen is the provider minimum password policy enforced
// locally before any provider call.
const minPasswordLen = 6

// RegisterRequest carries the public registration fields. Role is
// restricted to donor or volunteer; admin is never self-assignable.
type RegisterRequest struct {
	Email    string
	Name     string
	Password string
	Role     string
	Phone    string
	Address  string
}

// ProfilePatch is a partial profile update. Nil fields are left
// untouched; email and id are immutable and therefore absent here.
type ProfilePatch struct {
	Name    *string
	Phone   *string
	Address *string
	Role    *string
}

// Provider is the identity backend seam. Implementations normalize
// their payloads into the canonical models.User; the returned user
// carries no credential token, the facade mints that.
type Provider interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	SyncProfile(ctx context.Context, user models.User) error
}

// TokenMinter mints the credential token attached to the user after a
// successful login or registration.
type TokenMinter interface {
	GenerateToken(userID, role, sessionKey string) (string, error)
}

// SubscriptionFetcher is the best-effort snapshot lookup performed
// after a session is established.
type SubscriptionFetcher interface {
	FetchWithDeadline(ctx context.Context, userID string, d time.Duration) subscription.FetchResult
}

// Service is the auth facade bound to a single session.
type Service struct {
	provider     Provider
	session      *session.Session
	tokens       TokenMinter
	subs         SubscriptionFetcher
	snapshotWait time.Duration
	log          *slog.Logger
	validate     *validator.Validate
}

// NewService builds a facade over provider operating on sess. subs may
// be nil when no record store is configured.
func NewService(provider Provider, sess *session.Session, tokens TokenMinter, subs SubscriptionFetcher, snapshotWait time.Duration, log *slog.Logger) *Service {
	return &Service{
		provider:     provider,
		session:      sess,
		tokens:       tokens,
		subs:         subs,
		snapshotWait: snapshotWait,
		log:          log,
		validate:     validator.New(),
	}
}

// Session exposes the bound session for readouts.
func (s *Service) Session() *session.Session { return s.session }

// Login exchanges credentials for an authenticated session. Both fields
// must be non-empty; any provider failure leaves the session
// unauthenticated and yields false.
func (s *Service) Login(ctx context.Context, email, password string) bool {
	const op = "auth.Login"
	log := s.log.With(slog.String("op", op))

	if email == "" || password == "" {
		log.Error("empty credentials")
		return false
	}

	user, err := s.provider.Login(ctx, email, password)
	if err != nil {
		log.Error("provider rejected login", sl.Err(err))
		return false
	}
	if !s.establish(ctx, log, user) {
		return false
	}
	s.refreshSubscription(ctx, user.ID)
	return true
}

// Register creates a fresh user and logs it in. Donation total and
// volunteer hours start at zero.
func (s *Service) Register(ctx context.Context, req RegisterRequest) bool {
	const op = "auth.Register"
	log := s.log.With(slog.String("op", op))

	if err := s.validate.Var(req.Email, "required,email"); err != nil {
		log.Error("malformed email", sl.Err(err))
		return false
	}
	if len(req.Password) < minPasswordLen {
		log.Error("password below minimum policy")
		return false
	}
	if req.Role != models.RoleDonor && req.Role != models.RoleVolunteer {
		log.Error("role not assignable through registration", slog.String("role", req.Role))
		return false
	}

	user, err := s.provider.Register(ctx, req)
	if err != nil {
		log.Error("provider rejected registration", sl.Err(err))
		return false
	}
	if !s.establish(ctx, log, user) {
		return false
	}
	s.refreshSubscription(ctx, user.ID)
	return true
}

// Logout clears the session and the persisted credential. Safe to call
// when already logged out.
func (s *Service) Logout(ctx context.Context) {
	const op = "auth.Logout"
	if err := s.session.Clear(ctx); err != nil {
		s.log.Error("failed to clear session", slog.String("op", op), sl.Err(err))
	}
}

// UpdateProfile merges the patch into the current user. The local merge
// survives a remote sync failure, but the failure is surfaced as false.
// Applying the same patch twice yields the same user state.
func (s *Service) UpdateProfile(ctx context.Context, patch ProfilePatch) bool {
	const op = "auth.UpdateProfile"
	log := s.log.With(slog.String("op", op))

	current := s.session.Current()
	if current == nil {
		log.Error("not authenticated")
		return false
	}
	if patch.Role != nil && *patch.Role != models.RoleDonor && *patch.Role != models.RoleVolunteer {
		log.Error("role not assignable through profile update", slog.String("role", *patch.Role))
		return false
	}

	updated := *current
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Phone != nil {
		updated.Phone = *patch.Phone
	}
	if patch.Address != nil {
		updated.Address = *patch.Address
	}
	if patch.Role != nil {
		updated.Role = *patch.Role
	}

	if err := s.session.Update(ctx, updated); err != nil {
		log.Error("failed to persist profile", sl.Err(err))
		return false
	}
	if err := s.provider.SyncProfile(ctx, updated); err != nil {
		log.Error("remote profile sync failed, local merge kept", sl.Err(err))
		return false
	}
	return true
}

// Restore recovers a persisted session and, when one exists, refreshes
// the subscription snapshot best-effort.
func (s *Service) Restore(ctx context.Context) {
	const op = "auth.Restore"
	if err := s.session.Restore(ctx); err != nil {
		s.log.Error("session restore failed", slog.String("op", op), sl.Err(err))
		return
	}
	if user := s.session.Current(); user != nil {
		s.refreshSubscription(ctx, user.ID)
	}
}

// establish mints the credential token and binds the user to the session.
func (s *Service) establish(ctx context.Context, log *slog.Logger, user *models.User) bool {
	token, err := s.tokens.GenerateToken(user.ID, user.Role, s.session.Key())
	if err != nil {
		log.Error("failed to mint credential token", sl.Err(err))
		return false
	}
	user.AccessToken = token

	if err := s.session.SetUser(ctx, *user); err != nil {
		log.Error("failed to persist session", sl.Err(err))
		return false
	}
	return true
}

// refreshSubscription attaches a subscription snapshot to the session
// best-effort. Timeouts and failures only leave the snapshot absent.
func (s *Service) refreshSubscription(ctx context.Context, userID string) {
	if s.subs == nil {
		return
	}
	res := s.subs.FetchWithDeadline(ctx, userID, s.snapshotWait)
	switch res.Outcome {
	case subscription.OutcomeOK:
		if res.Snapshot == nil {
			return
		}
		if err := s.session.SetSubscription(ctx, res.Snapshot); err != nil {
			s.log.Warn("failed to attach subscription snapshot", sl.Err(err))
		}
	case subscription.OutcomeTimedOut:
		s.log.Warn("subscription snapshot fetch timed out", slog.String("user_id", userID))
	case subscription.OutcomeFailed:
		s.log.Warn("subscription snapshot fetch failed", sl.Err(res.Err))
	}
}
