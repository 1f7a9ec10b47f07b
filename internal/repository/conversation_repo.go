package repository

import (
	"context"

	"github.com/sawa-travel/marketplace/internal/models"
	"gorm.io/gorm"
)

type ConversationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, conversation *models.Conversation) error
	FindByID(ctx context.Context, id uint) (*models.Conversation, error)
	FindByBookingID(ctx context.Context, bookingID uint) ([]models.Conversation, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, conversationID uint, status models.ConversationStatus) error
	DeleteExcludingHost(ctx context.Context, tx *gorm.DB, bookingID uint, hostEmail string) error
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) Create(ctx context.Context, tx *gorm.DB, conversation *models.Conversation) error {
	return tx.WithContext(ctx).Create(conversation).Error
}

func (r *conversationRepository) FindByID(ctx context.Context, id uint) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := r.db.WithContext(ctx).First(&conversation, id).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepository) FindByBookingID(ctx context.Context, bookingID uint) ([]models.Conversation, error) {
	var conversations []models.Conversation
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("id ASC").
		Find(&conversations).Error; err != nil {
		return nil, err
	}
	return conversations, nil
}

func (r *conversationRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, conversationID uint, status models.ConversationStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("id = ?", conversationID).
		Update("status", status).Error
}

// DeleteExcludingHost removes every conversation for the booking whose host
// set does not include the winning host. Deleted, not closed: losing hosts
// must not be able to keep negotiating a taken booking.
func (r *conversationRepository) DeleteExcludingHost(ctx context.Context, tx *gorm.DB, bookingID uint, hostEmail string) error {
	return tx.WithContext(ctx).
		Where("booking_id = ? AND NOT (? = ANY(host_emails))", bookingID, hostEmail).
		Delete(&models.Conversation{}).Error
}
