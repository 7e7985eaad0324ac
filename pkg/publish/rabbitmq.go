// Package publish delivers newly stored conflicts to other systems: a RabbitMQ
// exchange and websocket subscribers of the live map.
package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/go-pkgz/lgr"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/mappin-app/mappin/pkg/config"
	"github.com/mappin-app/mappin/pkg/domain"
)

//go:generate mockgen -source=rabbitmq.go -destination=mocks/channel.go -package=mocks

// ActionCreate is the only action emitted, records are never updated by ingestion
const ActionCreate = "create"

// Channel is the subset of amqp channel used by the publisher
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// ConflictMessage is the body of a published event
type ConflictMessage struct {
	Action    string          `json:"action"`
	Conflict  domain.Conflict `json:"conflict"`
	Timestamp time.Time       `json:"timestamp"`
}

// RabbitMQ publishes conflict events to a durable direct exchange
type RabbitMQ struct {
	conn       *amqp.Connection
	channel    Channel
	exchange   string
	routingKey string
	now        func() time.Time
}

// Dial connects to the broker and declares the exchange
func Dial(cfg config.PublishConfig) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	pub, err := NewRabbitMQ(ch, cfg.Exchange, cfg.RoutingKey)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	pub.conn = conn
	return pub, nil
}

// NewRabbitMQ makes a publisher on an open channel, declaring the exchange
func NewRabbitMQ(ch Channel, exchange, routingKey string) (*RabbitMQ, error) {
	if exchange == "" {
		return nil, errors.New("exchange name is required")
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	log.Printf("[INFO] publishing conflicts to exchange %s, routing key %s", exchange, routingKey)
	return &RabbitMQ{channel: ch, exchange: exchange, routingKey: routingKey, now: time.Now}, nil
}

// Notify publishes a create event for the stored conflict
func (r *RabbitMQ) Notify(ctx context.Context, c domain.Conflict) error {
	ts := r.now().UTC()
	body, err := json.Marshal(ConflictMessage{Action: ActionCreate, Conflict: c, Timestamp: ts})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	msg := amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    fmt.Sprintf("conflict-%d", c.ID),
		Timestamp:    ts,
		Body:         body,
	}
	if err := r.channel.PublishWithContext(ctx, r.exchange, r.routingKey, false, false, msg); err != nil {
		return fmt.Errorf("publish conflict %d: %w", c.ID, err)
	}
	log.Printf("[DEBUG] published conflict %d to %s", c.ID, r.exchange)
	return nil
}

// Close closes the channel and the connection if the publisher owns it
func (r *RabbitMQ) Close() error {
	var errs []error
	if r.channel != nil {
		if err := r.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close channel: %w", err))
		}
	}
	if r.conn != nil {
		if err := r.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}
