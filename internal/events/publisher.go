// Package events announces family activity to a message broker so other
// services (push, email) can react to it.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Activity is the payload published for every fan-out.
type Activity struct {
	Kind       string   `json:"kind"`
	ActorID    string   `json:"actor_id"`
	FamilyID   string   `json:"family_id,omitempty"`
	RecipeID   string   `json:"recipe_id,omitempty"`
	Recipients []string `json:"recipients"`
	At         string   `json:"at"`
}

// Publisher sends activities to a broker.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, activity Activity) error
	Close() error
}

// Nop discards every activity. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, Activity) error { return nil }
func (Nop) Close() error                                    { return nil }

// AMQPPublisher publishes JSON activities to a topic exchange.
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// NewAMQPPublisher dials url and declares a durable topic exchange.
func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// Publish sends activity under routingKey.
func (p *AMQPPublisher) Publish(ctx context.Context, routingKey string, activity Activity) error {
	b, err := json.Marshal(activity)
	if err != nil {
		return fmt.Errorf("encode activity: %w", err)
	}
	return p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         b,
	})
}

// Close closes the channel and the connection.
func (p *AMQPPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
