package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/childhope-org/childhope-backend/internal/models"
)

// CreateVolunteerApplication stores a submitted application and returns
// its id. Skills and languages are kept as JSON arrays.
func (s *Storage) CreateVolunteerApplication(ctx context.Context, app models.VolunteerApplication) (string, error) {
	const op = "repository.CreateVolunteerApplication"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	skills, err := json.Marshal(app.Skills)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	languages, err := json.Marshal(app.Languages)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var newID string
	query := `INSERT INTO volunteer_applications
			      (first_name, last_name, email, phone, address, city, country,
			       date_of_birth, occupation, skills, experience, availability,
			       motivation, languages, emergency_contact, emergency_phone,
			       background_check, terms_accepted, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			          $14, $15, $16, $17, $18, $19)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		app.FirstName, app.LastName, app.Email, nullable(app.Phone),
		nullable(app.Address), nullable(app.City), nullable(app.Country),
		nullable(app.DateOfBirth), nullable(app.Occupation), skills,
		nullable(app.Experience), nullable(app.Availability),
		nullable(app.Motivation), languages, nullable(app.EmergencyContact),
		nullable(app.EmergencyPhone), app.BackgroundCheck, app.TermsAccepted,
		app.Status).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// CountVolunteerApplications counts applications, optionally filtered
// by status. An empty status counts everything.
func (s *Storage) CountVolunteerApplications(ctx context.Context, status string) (int64, error) {
	const op = "repository.CountVolunteerApplications"
	var count int64
	var err error
	if status == "" {
		err = s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM volunteer_applications`).Scan(&count)
	} else {
		err = s.DB.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM volunteer_applications WHERE status = $1`, status).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
