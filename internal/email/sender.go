// Package email sends transactional mail through Resend. Sending is
// best-effort: callers log failures and move on.
package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// Sender wraps the Resend client. With an empty API key the sender is
// disabled and every send is a no-op, which keeps local development
// working without credentials.
type Sender struct {
	client *resend.Client
	from   string
}

func NewSender(apiKey, from string) *Sender {
	if apiKey == "" {
		return &Sender{from: from}
	}
	return &Sender{client: resend.NewClient(apiKey), from: from}
}

func (s *Sender) Enabled() bool {
	return s != nil && s.client != nil
}

// SendVolunteerConfirmation acknowledges a submitted volunteer
// application.
func (s *Sender) SendVolunteerConfirmation(ctx context.Context, to, firstName string) error {
	const op = "email.SendVolunteerConfirmation"
	if !s.Enabled() {
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: "We received your volunteer application",
		Html: fmt.Sprintf(
			"<p>Hi %s,</p><p>Thank you for applying to volunteer with ChildHope. "+
				"Our team will review your application and get back to you soon.</p>"+
				"<p>— The ChildHope team</p>", firstName),
	}
	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SendDonationReceipt thanks a donor after the payment provider
// confirms their donation. Amount is in cents.
func (s *Sender) SendDonationReceipt(ctx context.Context, to string, amount int64, currency string) error {
	const op = "email.SendDonationReceipt"
	if !s.Enabled() {
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: "Thank you for your donation",
		Html: fmt.Sprintf(
			"<p>Thank you for your generous donation of %.2f %s to ChildHope.</p>"+
				"<p>Your support helps us provide education, healthcare and hope "+
				"to children in need.</p><p>— The ChildHope team</p>",
			float64(amount)/100, currency),
	}
	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
