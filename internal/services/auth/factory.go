package auth

import (
	"log/slog"
	"time"

	"github.com/childhope-org/childhope-backend/internal/session"
)

// Factory builds facades bound to individual sessions. The HTTP layer
// creates one facade per request session; everything else is shared.
type Factory struct {
	provider     Provider
	tokens       TokenMinter
	subs         SubscriptionFetcher
	snapshotWait time.Duration
	log          *slog.Logger
}

// NewFactory returns a Factory with shared collaborators.
func NewFactory(provider Provider, tokens TokenMinter, subs SubscriptionFetcher, snapshotWait time.Duration, log *slog.Logger) *Factory {
	return &Factory{
		provider:     provider,
		tokens:       tokens,
		subs:         subs,
		snapshotWait: snapshotWait,
		log:          log,
	}
}

// ForSession binds a facade to sess.
func (f *Factory) ForSession(sess *session.Session) *Service {
	return NewService(f.provider, sess, f.tokens, f.subs, f.snapshotWait, f.log)
}
