package models

// CheckoutIntent is a one-shot request to the hosted payment provider.
// It is created when a user triggers a donation, consumed by a single
// session-creation call and never persisted.
type CheckoutIntent struct {
	PriceID     string `json:"price_id"`
	Mode        string `json:"mode"` // payment | subscription
	SuccessURL  string `json:"success_url"`
	CancelURL   string `json:"cancel_url"`
	AccessToken string `json:"-"` // requesting user's credential token
}
