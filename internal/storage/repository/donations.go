package repository

import (
	"context"
	"fmt"

	"github.com/childhope-org/childhope-backend/internal/models"
)

// CreateDonation records a donation reported by the payment provider
// and returns its id.
func (s *Storage) CreateDonation(ctx context.Context, d models.Donation) (string, error) {
	const op = "repository.CreateDonation"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO donations (email, amount, currency, type, status, provider_session_id)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		d.Email, d.Amount, d.Currency, d.Type, d.Status, d.ProviderSessionID).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// SumDonations totals completed donations in cents.
func (s *Storage) SumDonations(ctx context.Context) (int64, error) {
	const op = "repository.SumDonations"
	var total int64
	query := `SELECT COALESCE(SUM(amount), 0) FROM donations WHERE status = 'completed'`
	if err := s.DB.QueryRowContext(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// ListRecentDonations returns the newest donations, newest first.
func (s *Storage) ListRecentDonations(ctx context.Context, limit int) ([]models.Donation, error) {
	const op = "repository.ListRecentDonations"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, amount, currency, type, status, provider_session_id, created_at
			  FROM donations
			  ORDER BY created_at DESC
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Donation
	for rows.Next() {
		var d models.Donation
		if err = rows.Scan(&d.ID, &d.Email, &d.Amount, &d.Currency, &d.Type,
			&d.Status, &d.ProviderSessionID, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
