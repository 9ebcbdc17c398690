package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/leadhub/server/internal/model"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName = "ex.leads"

	RoutingKeySubmitted     = "lead.submitted"
	RoutingKeyStatusChanged = "lead.status_changed"
)

// LeadEvent is the JSON body published for every lead change
type LeadEvent struct {
	Type       string       `json:"type"`
	LeadID     uuid.UUID    `json:"leadId"`
	Status     model.Status `json:"status"`
	Email      string       `json:"email"`
	OccurredAt time.Time    `json:"occurredAt"`
}

// Channel is the subset of *amqp.Channel the publisher needs
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher emits lead events to a durable direct exchange
type Publisher struct {
	ch  Channel
	now func() time.Time
}

// Dial connects to RabbitMQ, opens a channel and declares the lead exchange.
// The caller owns the returned connection.
func Dial(amqpURL string) (*Publisher, *amqp.Connection, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}

	p, err := NewPublisher(ch)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return p, conn, nil
}

// NewPublisher declares the exchange on ch and returns a publisher using it
func NewPublisher(ch Channel) (*Publisher, error) {
	if err := ch.ExchangeDeclare(ExchangeName, "direct", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", ExchangeName, err)
	}
	return &Publisher{ch: ch, now: time.Now}, nil
}

func (p *Publisher) LeadSubmitted(ctx context.Context, lead model.Lead) error {
	return p.publish(ctx, RoutingKeySubmitted, lead)
}

func (p *Publisher) StatusChanged(ctx context.Context, lead model.Lead) error {
	return p.publish(ctx, RoutingKeyStatusChanged, lead)
}

func (p *Publisher) publish(ctx context.Context, key string, lead model.Lead) error {
	body, err := json.Marshal(LeadEvent{
		Type:       key,
		LeadID:     lead.ID,
		Status:     lead.Status,
		Email:      lead.Email,
		OccurredAt: p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal lead event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx, ExchangeName, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    p.now(),
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}
	return nil
}
