package service

import (
	"context"
	"log"

	"github.com/sawa-travel/marketplace/internal/models"
	"github.com/sawa-travel/marketplace/internal/repository"
	"github.com/sawa-travel/marketplace/pkg/rabbitmq"
)

// NotificationEvent is the payload published to the notifications exchange.
// The in-process consumer persists it as a notification record.
type NotificationEvent struct {
	RecipientEmail string                  `json:"recipient_email"`
	Kind           models.NotificationKind `json:"kind"`
	Title          string                  `json:"title"`
	Body           string                  `json:"body"`
	BookingID      *uint                   `json:"booking_id,omitempty"`
}

// Publisher is the slice of the message broker the notification service
// needs. Fire-and-forget: there is no acknowledgement contract.
type Publisher interface {
	PublishNotification(n rabbitmq.Notification) error
}

type NotificationService interface {
	Notify(event NotificationEvent)
	List(ctx context.Context, recipientEmail string, unreadOnly bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID uint, recipientEmail string) error
}

type notificationService struct {
	repo      repository.NotificationRepository
	publisher Publisher
}

func NewNotificationService(repo repository.NotificationRepository, publisher Publisher) NotificationService {
	return &notificationService{repo: repo, publisher: publisher}
}

// Notify publishes the event and swallows any failure: a lost notification
// must never fail the mutation that produced it.
func (s *notificationService) Notify(event NotificationEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishNotification(rabbitmq.Notification{
		RecipientEmail: event.RecipientEmail,
		Kind:           string(event.Kind),
		Title:          event.Title,
		Body:           event.Body,
		BookingID:      event.BookingID,
	}); err != nil {
		log.Printf("[Notifications] publish failed for %s: %v", event.RecipientEmail, err)
	}
}

func (s *notificationService) List(ctx context.Context, recipientEmail string, unreadOnly bool) ([]models.Notification, error) {
	return s.repo.FindByRecipient(ctx, recipientEmail, unreadOnly)
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID uint, recipientEmail string) error {
	return s.repo.MarkRead(ctx, notificationID, recipientEmail)
}
