package consumer

import (
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"

	"github.com/sawa-travel/marketplace/internal/models"
	"github.com/sawa-travel/marketplace/pkg/rabbitmq"
)

// NotificationConsumer drains the notifications exchange and persists one
// record per event. Delivery is at-least-once; a failed insert is requeued.
type NotificationConsumer struct {
	db *gorm.DB
}

func NewNotificationConsumer(db *gorm.DB) *NotificationConsumer {
	return &NotificationConsumer{db: db}
}

func (nc *NotificationConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			nc.handleMessage(msg)
		}
		log.Println("[NotificationConsumer] channel closed, stopping consumer")
	}()
}

func (nc *NotificationConsumer) handleMessage(msg amqp.Delivery) {
	n, err := rabbitmq.DecodeNotification(msg)
	if err != nil {
		log.Printf("[NotificationConsumer] %v", err)
		msg.Nack(false, false)
		return
	}

	record := models.Notification{
		RecipientEmail: n.RecipientEmail,
		Kind:           models.NotificationKind(n.Kind),
		Title:          n.Title,
		Body:           n.Body,
		BookingID:      n.BookingID,
	}
	if err := nc.db.Create(&record).Error; err != nil {
		log.Printf("[NotificationConsumer] failed to store notification for %s: %v", n.RecipientEmail, err)
		msg.Nack(false, true) // requeue
		return
	}

	log.Printf("[NotificationConsumer] stored %s notification for %s", n.Kind, n.RecipientEmail)
	msg.Ack(false)
}
