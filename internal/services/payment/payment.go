// Package payment turns provider webhook events into ledger entries.
// The webhook is the only place donation state is committed: starting a
// checkout never touches the database.
package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/childhope-org/childhope-backend/internal/lib/sl"
	"github.com/childhope-org/childhope-backend/internal/models"
	"github.com/childhope-org/childhope-backend/internal/notify"
)

const eventCheckoutCompleted = "checkout.session.completed"

// Event is the provider's webhook payload. Only the fields the ledger
// needs are decoded.
type Event struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID            string `json:"id"`
			Mode          string `json:"mode"`
			AmountTotal   int64  `json:"amount_total"`
			Currency      string `json:"currency"`
			CustomerEmail string `json:"customer_email"`
		} `json:"object"`
	} `json:"data"`
}

type Repository interface {
	CreateDonation(ctx context.Context, d models.Donation) (string, error)
	AddToDonationTotalByEmail(ctx context.Context, email string, amount int64) error
}

type Publisher interface {
	Publish(routingKey string, message any) error
}

type Receipter interface {
	SendDonationReceipt(ctx context.Context, to string, amount int64, currency string) error
}

type Service struct {
	repo      Repository
	publisher Publisher
	receipts  Receipter
	log       *slog.Logger
}

func New(repo Repository, publisher Publisher, receipts Receipter, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		receipts:  receipts,
		log:       log,
	}
}

// ProcessWebhookEvent records a confirmed checkout as a donation,
// attributes it to the donor's account by email, and fans out the
// receipt. Publishing and mail are best-effort; the ledger write is
// not.
func (s *Service) ProcessWebhookEvent(ctx context.Context, ev Event) error {
	const op = "payment.ProcessWebhookEvent"

	if ev.Type != eventCheckoutCompleted {
		s.log.Debug("ignoring webhook event", slog.String("type", ev.Type))
		return nil
	}

	obj := ev.Data.Object
	donationType := models.DonationOneTime
	if obj.Mode == "subscription" {
		donationType = models.DonationRecurring
	}

	donation := models.Donation{
		Email:             obj.CustomerEmail,
		Amount:            obj.AmountTotal,
		Currency:          obj.Currency,
		Type:              donationType,
		Status:            models.DonationCompleted,
		ProviderSessionID: obj.ID,
	}

	id, err := s.repo.CreateDonation(ctx, donation)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	donation.ID = id

	if obj.CustomerEmail != "" {
		if err := s.repo.AddToDonationTotalByEmail(ctx, obj.CustomerEmail, obj.AmountTotal); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := s.publisher.Publish(notify.RoutingKeyDonation, notify.DonationCompleted{
		DonationID: donation.ID,
		Email:      donation.Email,
		Amount:     donation.Amount,
		Currency:   donation.Currency,
		Type:       donation.Type,
	}); err != nil {
		s.log.Warn("failed to publish donation event", sl.Err(err))
	}

	if obj.CustomerEmail != "" {
		if err := s.receipts.SendDonationReceipt(ctx, obj.CustomerEmail, obj.AmountTotal, obj.Currency); err != nil {
			s.log.Warn("failed to send donation receipt", sl.Err(err))
		}
	}

	s.log.Info("donation recorded",
		slog.String("donation_id", donation.ID),
		slog.Int64("amount", donation.Amount),
		slog.String("type", donation.Type))
	return nil
}
