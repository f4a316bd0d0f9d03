package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

const RoutingKeyDonation = "donation"

// DonationCompleted is the event body published when the payment
// provider confirms a donation.
type DonationCompleted struct {
	DonationID string    `json:"donation_id"`
	Email      string    `json:"email"`
	Amount     int64     `json:"amount"`
	Currency   string    `json:"currency"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher sends events through an open channel. A nil Publisher is
// valid and drops everything, so services can run without a broker.
type Publisher struct {
	ch *amqp.Channel
}

func NewPublisher(ch *amqp.Channel) *Publisher {
	return &Publisher{ch: ch}
}

func (p *Publisher) Publish(routingKey string, message any) error {
	const op = "notify.Publish"
	if p == nil || p.ch == nil {
		return nil
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		Exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
