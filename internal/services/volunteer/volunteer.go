// Package volunteer persists volunteer applications submitted through
// the site form.
package volunteer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/childhope-org/childhope-backend/internal/lib/sl"
	"github.com/childhope-org/childhope-backend/internal/models"
)

type Repository interface {
	CreateVolunteerApplication(ctx context.Context, app models.VolunteerApplication) (string, error)
}

type Confirmer interface {
	SendVolunteerConfirmation(ctx context.Context, to, firstName string) error
}

type Service struct {
	repo    Repository
	confirm Confirmer
	log     *slog.Logger
}

func New(repo Repository, confirm Confirmer, log *slog.Logger) *Service {
	return &Service{repo: repo, confirm: confirm, log: log}
}

// Submit stores the application as pending and sends a confirmation
// mail. The mail is best-effort: an application is never lost because
// the mail provider is down.
func (s *Service) Submit(ctx context.Context, app models.VolunteerApplication) (string, error) {
	const op = "volunteer.Submit"

	app.Status = models.ApplicationPending
	id, err := s.repo.CreateVolunteerApplication(ctx, app)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := s.confirm.SendVolunteerConfirmation(ctx, app.Email, app.FirstName); err != nil {
		s.log.Warn("failed to send volunteer confirmation", sl.Err(err))
	}

	s.log.Info("volunteer application submitted",
		slog.String("application_id", id),
		slog.String("email", app.Email))
	return id, nil
}
