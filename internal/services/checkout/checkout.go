// Package checkout turns a donation action into a redirect to the
// hosted payment page. The dispatcher refuses unauthenticated callers
// before any network effect, distinctly from provider failures.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/childhope-org/childhope-backend/internal/catalog"
	"github.com/childhope-org/childhope-backend/internal/models"
)

var (
	// ErrAuthenticationRequired means the caller had no authenticated
	// user with a credential token. No network call was made.
	ErrAuthenticationRequired = errors.New("checkout: authentication required")
	// ErrUnknownProduct means the product reference did not resolve in
	// the static catalog. No network call was made.
	ErrUnknownProduct = errors.New("checkout: unknown product")
)

// SessionCreator is the single outbound call to the payment provider.
type SessionCreator interface {
	CreateSession(ctx context.Context, intent models.CheckoutIntent) (string, error)
}

// Dispatcher builds checkout intents and resolves them to redirect URLs.
type Dispatcher struct {
	sessions SessionCreator
	siteURL  string // absolute origin the provider redirects back to
	log      *slog.Logger
}

// NewDispatcher returns a Dispatcher sending users back to siteURL.
func NewDispatcher(sessions SessionCreator, siteURL string, log *slog.Logger) *Dispatcher {
	return &Dispatcher{sessions: sessions, siteURL: siteURL, log: log}
}

// StartCheckout resolves productID in the catalog and requests a
// checkout session for user. On success the returned URL is where the
// browser navigates; on failure no partial state is retained.
func (d *Dispatcher) StartCheckout(ctx context.Context, productID string, user *models.User) (string, error) {
	const op = "checkout.StartCheckout"

	if user == nil || user.AccessToken == "" {
		return "", ErrAuthenticationRequired
	}
	product, ok := catalog.ByID(productID)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownProduct, productID)
	}

	intent := models.CheckoutIntent{
		PriceID:     product.PriceID,
		Mode:        product.Mode,
		SuccessURL:  d.siteURL + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:   d.siteURL + "/donate",
		AccessToken: user.AccessToken,
	}

	url, err := d.sessions.CreateSession(ctx, intent)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	d.log.Info("checkout session created",
		slog.String("op", op),
		slog.String("product_id", productID),
		slog.String("user_id", user.ID),
	)
	return url, nil
}
