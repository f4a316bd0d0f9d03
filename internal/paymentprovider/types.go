package paymentprovider

// CreateSessionRequest is the body of a checkout-session creation call.
// The success URL must contain the literal {CHECKOUT_SESSION_ID}
// placeholder, which the provider substitutes before redirecting back.
type CreateSessionRequest struct {
	PriceID    string `json:"price_id"`
	Mode       string `json:"mode"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

// CreateSessionResponse is the provider's reply. URL is where the
// browser is sent to complete payment.
type CreateSessionResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
	Error     string `json:"error,omitempty"`
}
