// Package paymentprovider implements the HTTP client for the hosted
// checkout-session endpoint. One outbound request per intent, no
// retries; any failure is terminal for that invocation.
package paymentprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/childhope-org/childhope-backend/internal/models"
)

// Client calls the checkout-session creation endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient returns a client for the given endpoint with a bounded
// request timeout.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CreateSession exchanges a checkout intent for a redirect URL. The
// intent's credential token authorizes the call.
func (c *Client) CreateSession(ctx context.Context, intent models.CheckoutIntent) (string, error) {
	const op = "paymentprovider.CreateSession"

	body := CreateSessionRequest{
		PriceID:    intent.PriceID,
		Mode:       intent.Mode,
		SuccessURL: intent.SuccessURL,
		CancelURL:  intent.CancelURL,
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &buf)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+intent.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}

	var sessionResp CreateSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sessionResp); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if sessionResp.URL == "" {
		return "", fmt.Errorf("%s: %w", op, errors.New("no checkout URL in response"))
	}
	return sessionResp.URL, nil
}
