package models

import "time"

// Subscription statuses as reported by the payment provider, plus the
// locally derived "expired" set by the scheduler once the period end
// has passed.
const (
	SubscriptionActive   = "active"
	SubscriptionTrialing = "trialing"
	SubscriptionPastDue  = "past_due"
	SubscriptionCanceled = "canceled"
	SubscriptionExpired  = "expired"
)

// Subscription is the point-in-time snapshot of a user's recurring
// donation, attached to the session after a best-effort fetch. Absence
// of a snapshot means nothing was fetched, not that no subscription
// exists.
type Subscription struct {
	Status    string    `json:"status"`
	PriceID   string    `json:"priceId"`
	PeriodEnd time.Time `json:"periodEnd"`
}
