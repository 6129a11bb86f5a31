// Package rabbitmq publishes committed changes as domain events.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uom"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uomstatus"
	"github.com/mutugading/goapps-backend/services/uom/internal/infrastructure/audit"
	"github.com/mutugading/goapps-backend/services/uom/internal/infrastructure/config"
)

const publishTimeout = 5 * time.Second

var routingPrefixes = map[string]string{
	uomstatus.EntityName: "uom_status",
	uom.EntityName:       "uom",
}

// Event is the message body published for a committed change.
type Event struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Entity      string    `json:"entity"`
	RecordID    int64     `json:"recordId"`
	OccurredAt  time.Time `json:"occurredAt"`
	Before      any       `json:"before,omitempty"`
	After       any       `json:"after,omitempty"`
	RequestID   string    `json:"requestId,omitempty"`
	PerformedBy string    `json:"performedBy"`
}

// RoutingKey returns the topic routing key for a change, e.g. "uom.created".
// A Status status change is reported as "uom_status.usability_changed".
func RoutingKey(change shared.Change) (string, error) {
	prefix, ok := routingPrefixes[change.Entity]
	if !ok {
		return "", fmt.Errorf("no routing key for entity %q", change.Entity)
	}

	action := string(change.Action)
	if change.Entity == uomstatus.EntityName && change.Action == shared.ActionStatusChanged {
		action = "usability_changed"
	}
	return prefix + "." + action, nil
}

// NewEvent builds the event for a change, carrying request metadata from ctx.
func NewEvent(ctx context.Context, change shared.Change) (*Event, error) {
	key, err := RoutingKey(change)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:          uuid.New().String(),
		Type:        key,
		Entity:      change.Entity,
		RecordID:    change.RecordID,
		OccurredAt:  time.Now().UTC(),
		Before:      change.Before,
		After:       change.After,
		RequestID:   audit.GetRequestID(ctx),
		PerformedBy: audit.GetPerformer(ctx),
	}, nil
}

type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends change events to a topic exchange.
type Publisher struct {
	conn     *amqp.Connection
	exchange string

	mu sync.Mutex
	ch publishChannel
}

var _ shared.ChangeListener = (*Publisher)(nil)

// NewPublisher connects to RabbitMQ and declares the event exchange.
func NewPublisher(cfg *config.RabbitMQConfig) (*Publisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	log.Info().Str("exchange", cfg.Exchange).Msg("RabbitMQ publisher ready")

	return &Publisher{conn: conn, exchange: cfg.Exchange, ch: ch}, nil
}

// OnChange publishes the change. Failures are logged; the write has already committed.
func (p *Publisher) OnChange(ctx context.Context, change shared.Change) {
	event, err := NewEvent(ctx, change)
	if err != nil {
		log.Warn().Err(err).Msg("Skipping change event")
		return
	}

	if err := p.Publish(ctx, event); err != nil {
		log.Error().Err(err).
			Str("event_type", event.Type).
			Int64("record_id", event.RecordID).
			Msg("Failed to publish change event")
	}
}

// Publish sends one event as a persistent JSON message.
func (p *Publisher) Publish(ctx context.Context, event *Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Timestamp:    event.OccurredAt,
		Type:         event.Type,
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx, p.exchange, event.Type, false, false, msg)
}

// Close closes the channel and connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close rabbitmq channel")
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
