package repository

import (
	"context"

	"github.com/sawa-travel/marketplace/internal/models"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindByRecipient(ctx context.Context, recipientEmail string, unreadOnly bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID uint, recipientEmail string) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) FindByRecipient(ctx context.Context, recipientEmail string, unreadOnly bool) ([]models.Notification, error) {
	var notifications []models.Notification
	q := r.db.WithContext(ctx).Where("recipient_email = ?", recipientEmail)
	if unreadOnly {
		q = q.Where("read = false")
	}
	if err := q.Order("id DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, notificationID uint, recipientEmail string) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND recipient_email = ?", notificationID, recipientEmail).
		Update("read", true).Error
}
