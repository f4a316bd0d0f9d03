package checkout_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/childhope-org/childhope-backend/internal/models"
	"github.com/childhope-org/childhope-backend/internal/services/checkout"
)

type spyCreator struct {
	calls  int
	intent models.CheckoutIntent
	url    string
	err    error
}

func (s *spyCreator) CreateSession(_ context.Context, intent models.CheckoutIntent) (string, error) {
	s.calls++
	s.intent = intent
	return s.url, s.err
}

// discard logger
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger { return slog.New(discardHandler{}) }

func donor() *models.User {
	return &models.User{ID: "u1", Email: "a@x.com", Role: models.RoleDonor, AccessToken: "token-123"}
}

func TestStartCheckout_Success(t *testing.T) {
	creator := &spyCreator{url: "https://checkout.example/pay/cs_1"}
	d := checkout.NewDispatcher(creator, "https://childhope.org", makeLogger())

	url, err := d.StartCheckout(context.Background(), "prod_SfDewKDDeGMYzN", donor())
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/pay/cs_1", url)

	require.Equal(t, 1, creator.calls)
	assert.Equal(t, "price_1RjtDVLxmSamPrG3GuU8LeBZ", creator.intent.PriceID)
	assert.Equal(t, "subscription", creator.intent.Mode)
	assert.Equal(t, "https://childhope.org/success?session_id={CHECKOUT_SESSION_ID}", creator.intent.SuccessURL)
	assert.Equal(t, "https://childhope.org/donate", creator.intent.CancelURL)
	assert.Equal(t, "token-123", creator.intent.AccessToken)
}

func TestStartCheckout_NoUser_ZeroNetworkCalls(t *testing.T) {
	creator := &spyCreator{url: "https://checkout.example/pay/cs_1"}
	d := checkout.NewDispatcher(creator, "https://childhope.org", makeLogger())

	_, err := d.StartCheckout(context.Background(), "prod_SfDewKDDeGMYzN", nil)
	assert.ErrorIs(t, err, checkout.ErrAuthenticationRequired)
	assert.Zero(t, creator.calls)
}

func TestStartCheckout_MissingToken(t *testing.T) {
	creator := &spyCreator{}
	d := checkout.NewDispatcher(creator, "https://childhope.org", makeLogger())

	user := donor()
	user.AccessToken = ""
	_, err := d.StartCheckout(context.Background(), "prod_SfDewKDDeGMYzN", user)
	assert.ErrorIs(t, err, checkout.ErrAuthenticationRequired)
	assert.Zero(t, creator.calls)
}

func TestStartCheckout_UnknownProduct(t *testing.T) {
	creator := &spyCreator{}
	d := checkout.NewDispatcher(creator, "https://childhope.org", makeLogger())

	_, err := d.StartCheckout(context.Background(), "prod_unknown", donor())
	assert.ErrorIs(t, err, checkout.ErrUnknownProduct)
	assert.Zero(t, creator.calls)
}

func TestStartCheckout_ProviderFailure(t *testing.T) {
	creator := &spyCreator{err: errors.New("unexpected status: 502 Bad Gateway")}
	d := checkout.NewDispatcher(creator, "https://childhope.org", makeLogger())

	url, err := d.StartCheckout(context.Background(), "prod_SfDewKDDeGMYzN", donor())
	require.Error(t, err)
	assert.NotErrorIs(t, err, checkout.ErrAuthenticationRequired)
	assert.Empty(t, url)
}
