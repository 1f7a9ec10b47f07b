package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

const QueueName = "marketplace.notifications"

type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewConsumer(url string) (*Consumer, error) {
	conn, ch, err := dial(url)
	if err != nil {
		return nil, err
	}

	q, err := ch.QueueDeclare(QueueName, true, false, false, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	if err := ch.QueueBind(q.Name, RoutingKeyPrefix+"*", ExchangeName, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq queue bind: %w", err)
	}

	return &Consumer{conn: conn, channel: ch}, nil
}

// Consume starts delivery with manual acknowledgement: the caller acks only
// after the notification is durably handled.
func (c *Consumer) Consume() (<-chan amqp.Delivery, error) {
	msgs, err := c.channel.Consume(QueueName, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq consume: %w", err)
	}

	log.Printf("[RabbitMQ] consuming from queue: %s", QueueName)
	return msgs, nil
}

// DecodeNotification unpacks a delivery taken off the notifications queue.
func DecodeNotification(d amqp.Delivery) (Notification, error) {
	var n Notification
	if err := json.Unmarshal(d.Body, &n); err != nil {
		return Notification{}, fmt.Errorf("decode notification: %w", err)
	}
	return n, nil
}

func (c *Consumer) Close() {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
}
