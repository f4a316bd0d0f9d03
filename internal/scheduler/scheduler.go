// Package scheduler runs the periodic maintenance job that marks
// lapsed subscription snapshots as expired.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/childhope-org/childhope-backend/internal/lib/sl"
)

const jobTimeout = 30 * time.Second

type Expirer interface {
	ExpireLapsedSubscriptions(ctx context.Context) (int64, error)
}

type Scheduler struct {
	cron *cron.Cron
	log  *slog.Logger
}

// New registers the expiry job at the given cron spec (e.g. "@hourly").
func New(spec string, expirer Expirer, log *slog.Logger) (*Scheduler, error) {
	const op = "scheduler.New"

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		expired, err := expirer.ExpireLapsedSubscriptions(ctx)
		if err != nil {
			log.Error("subscription expiry job failed", sl.Err(err))
			return
		}
		if expired > 0 {
			log.Info("expired lapsed subscriptions", slog.Int64("count", expired))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Scheduler{cron: c, log: log}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started")
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}
