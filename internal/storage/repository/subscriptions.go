package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/childhope-org/childhope-backend/internal/models"
)

// GetSubscriptionByUserID returns the user's subscription snapshot, or
// nil when the user has no subscription row. One row per user at most.
func (s *Storage) GetSubscriptionByUserID(ctx context.Context, userID string) (*models.Subscription, error) {
	const op = "repository.GetSubscriptionByUserID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT status, price_id, period_end
			  FROM subscriptions
			  WHERE user_id = $1`
	sub := &models.Subscription{}
	row := s.DB.QueryRowContext(ctx, query, userID)
	if err := row.Scan(&sub.Status, &sub.PriceID, &sub.PeriodEnd); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// UpsertSubscription replaces the user's snapshot with the given one.
func (s *Storage) UpsertSubscription(ctx context.Context, userID string, sub models.Subscription) error {
	const op = "repository.UpsertSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_id, status, price_id, period_end)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (user_id)
			  DO UPDATE SET status = $2, price_id = $3, period_end = $4`
	if _, err := s.DB.ExecContext(ctx, query, userID, sub.Status, sub.PriceID, sub.PeriodEnd); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ExpireLapsedSubscriptions marks snapshots whose period end has passed
// as expired and returns how many rows changed.
func (s *Storage) ExpireLapsedSubscriptions(ctx context.Context) (int64, error) {
	const op = "repository.ExpireLapsedSubscriptions"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET status = 'expired'
			  WHERE period_end < NOW() AND status <> 'expired'`
	res, err := s.DB.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return affected, nil
}
