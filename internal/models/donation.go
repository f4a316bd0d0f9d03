package models

import "time"

// Donation types and statuses as recorded from provider webhooks.
const (
	DonationOneTime   = "one-time"
	DonationRecurring = "recurring"

	DonationCompleted = "completed"
	DonationPending   = "pending"
	DonationFailed    = "failed"
)

// Donation is one completed (or attempted) contribution as reported by
// the payment provider. Amounts are stored in cents.
type Donation struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"` // donor email as known to the provider
	Amount            int64     `json:"amount"`
	Currency          string    `json:"currency"`
	Type              string    `json:"type"`   // one-time | recurring
	Status            string    `json:"status"` // completed | pending | failed
	ProviderSessionID string    `json:"providerSessionId"`
	CreatedAt         time.Time `json:"createdAt"`
}
