// Package subscription implements the best-effort subscription
// snapshot fetch. The fetch is bounded by an explicit deadline and
// reports a tagged outcome instead of racing ad hoc: a slow record
// store degrades to an absent snapshot, never to a failed login.
package subscription

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/childhope-org/childhope-backend/internal/models"
)

// Outcome tags a fetch result.
type Outcome int

const (
	// OutcomeOK means the lookup completed; the snapshot may still be
	// nil when the user has no subscription row.
	OutcomeOK Outcome = iota
	// OutcomeTimedOut means the deadline elapsed before the lookup completed.
	OutcomeTimedOut
	// OutcomeFailed means the record store returned an error.
	OutcomeFailed
)

// FetchResult is the tagged result of FetchWithDeadline.
type FetchResult struct {
	Outcome  Outcome
	Snapshot *models.Subscription
	Err      error
}

// Repository is the single-row-or-none lookup the service needs.
type Repository interface {
	GetSubscriptionByUserID(ctx context.Context, userID string) (*models.Subscription, error)
}

// Service fetches subscription snapshots.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService returns a Service over repo.
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// FetchWithDeadline looks up the user's subscription snapshot, waiting
// at most d. Exactly one attempt is made; there are no retries.
func (s *Service) FetchWithDeadline(ctx context.Context, userID string, d time.Duration) FetchResult {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	type lookup struct {
		snap *models.Subscription
		err  error
	}
	done := make(chan lookup, 1)
	go func() {
		snap, err := s.repo.GetSubscriptionByUserID(ctx, userID)
		done <- lookup{snap: snap, err: err}
	}()

	select {
	case <-ctx.Done():
		return FetchResult{Outcome: OutcomeTimedOut, Err: ctx.Err()}
	case res := <-done:
		if res.err != nil {
			if errors.Is(res.err, context.DeadlineExceeded) {
				return FetchResult{Outcome: OutcomeTimedOut, Err: res.err}
			}
			return FetchResult{Outcome: OutcomeFailed, Err: res.err}
		}
		return FetchResult{Outcome: OutcomeOK, Snapshot: res.snap}
	}
}
