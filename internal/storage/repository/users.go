package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/childhope-org/childhope-backend/internal/models"
)

// UserRecord is the raw row shape of the users table. The auth provider
// normalizes it into models.User; nothing else consumes it.
type UserRecord struct {
	ID             string
	Email          string
	Name           string
	Role           string
	PasswordHash   string
	ProfilePicture string
	Phone          string
	Address        string
	Donations      int64 // cents
	VolunteerHours float64
	CreatedAt      time.Time
}

// RegisterUser stores a new user and returns its generated id.
func (s *Storage) RegisterUser(ctx context.Context, rec UserRecord) (string, error) {
	const op = "repository.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO users (email, name, role, password_hash, phone, address)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		rec.Email, rec.Name, rec.Role, rec.PasswordHash, nullable(rec.Phone),
		nullable(rec.Address)).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByEmail returns the user row for email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*UserRecord, error) {
	const op = "repository.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, name, role, password_hash, profile_picture,
			      phone, address, donations, volunteer_hours, created_at
			  FROM users
			  WHERE email = $1`
	rec := &UserRecord{}
	row := s.DB.QueryRowContext(ctx, query, email)

	var profilePicture, phone, address sql.NullString
	if err := row.Scan(&rec.ID, &rec.Email, &rec.Name, &rec.Role, &rec.PasswordHash,
		&profilePicture, &phone, &address, &rec.Donations, &rec.VolunteerHours,
		&rec.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rec.ProfilePicture = profilePicture.String
	rec.Phone = phone.String
	rec.Address = address.String
	return rec, nil
}

// UpdateUserProfile replaces the mutable profile fields of the user.
// Email and id never change.
func (s *Storage) UpdateUserProfile(ctx context.Context, user models.User) error {
	const op = "repository.UpdateUserProfile"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET name = $1, phone = $2, address = $3, role = $4
			  WHERE id = $5`
	res, err := s.DB.ExecContext(ctx, query,
		user.Name, nullable(user.Phone), nullable(user.Address), user.Role, user.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, sql.ErrNoRows)
	}
	return nil
}

// AddToDonationTotalByEmail bumps the cumulative donation total of the
// donor known by email. Donations from emails without an account are
// recorded in the ledger only.
func (s *Storage) AddToDonationTotalByEmail(ctx context.Context, email string, amount int64) error {
	const op = "repository.AddToDonationTotalByEmail"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET donations = donations + $1 WHERE email = $2`
	if _, err := s.DB.ExecContext(ctx, query, amount, email); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CountUsers returns the number of registered users.
func (s *Storage) CountUsers(ctx context.Context) (int64, error) {
	const op = "repository.CountUsers"
	var count int64
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// CountVolunteers returns the number of users with the volunteer role.
func (s *Storage) CountVolunteers(ctx context.Context) (int64, error) {
	const op = "repository.CountVolunteers"
	var count int64
	query := `SELECT COUNT(*) FROM users WHERE role = 'volunteer'`
	if err := s.DB.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// SumVolunteerHours totals the recorded hours of volunteer users.
func (s *Storage) SumVolunteerHours(ctx context.Context) (float64, error) {
	const op = "repository.SumVolunteerHours"
	var hours float64
	query := `SELECT COALESCE(SUM(volunteer_hours), 0) FROM users WHERE role = 'volunteer'`
	if err := s.DB.QueryRowContext(ctx, query).Scan(&hours); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return hours, nil
}

func nullable(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
