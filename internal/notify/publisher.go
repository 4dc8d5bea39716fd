package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName = "bookings"
	ExchangeKind = "topic"

	RoutingBookingCreated   = "booking.created"
	RoutingBookingConfirmed = "booking.confirmed"
	RoutingBookingCancelled = "booking.cancelled"
)

// BookingMessage is the body published for every booking lifecycle change.
type BookingMessage struct {
	BookingID       uint      `json:"booking_id"`
	CustomerID      uint      `json:"customer_id"`
	EventID         uint      `json:"event_id"`
	TicketsReserved int       `json:"tickets_reserved"`
	Status          string    `json:"status"`
	ActorID         uint      `json:"actor_id"`
	OccurredAt      time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

type RabbitPublisher struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger
}

// NewRabbitPublisher dials the broker and declares the durable topic exchange.
func NewRabbitPublisher(url string, logger *slog.Logger) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeName, ExchangeKind, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	return &RabbitPublisher{conn: conn, channel: ch, logger: logger}, nil
}

// Publish is safe for concurrent use; an amqp channel is not, so publishes
// are serialized.
func (p *RabbitPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.channel.PublishWithContext(
		ctx,
		ExchangeName,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	); err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	p.logger.Debug("Published message", "exchange", ExchangeName, "routing_key", routingKey)
	return nil
}

func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NopPublisher drops every message. It stands in when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}

var _ Publisher = (*RabbitPublisher)(nil)
var _ Publisher = NopPublisher{}
