package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName = "notifications"
	ExchangeKind = "topic"

	// Routing keys are notify.<kind>, one per notification kind, so a
	// future consumer can bind to a subset.
	RoutingKeyPrefix = "notify."
)

// Notification is the wire format carried on the notifications exchange.
// Kind doubles as the routing key suffix.
type Notification struct {
	RecipientEmail string `json:"recipient_email"`
	Kind           string `json:"kind"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	BookingID      *uint  `json:"booking_id,omitempty"`
}

// dial opens a connection and channel and declares the notifications
// exchange. Both publisher and consumer go through here so they agree on the
// exchange shape.
func dial(url string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeName, ExchangeKind, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	return conn, ch, nil
}

type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewPublisher(url string) (*Publisher, error) {
	conn, ch, err := dial(url)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, channel: ch}, nil
}

// PublishNotification routes the notification by its kind.
func (p *Publisher) PublishNotification(n Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	routingKey := RoutingKeyPrefix + n.Kind
	if err := p.channel.Publish(
		ExchangeName,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}

	log.Printf("[RabbitMQ] published %s for %s", routingKey, n.RecipientEmail)
	return nil
}

func (p *Publisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
