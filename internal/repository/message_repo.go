package repository

import (
	"context"

	"github.com/sawa-travel/marketplace/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MessageRepository interface {
	CreateIdempotent(ctx context.Context, message *models.Message) (*models.Message, error)
	FindByConversationID(ctx context.Context, conversationID uint) ([]models.Message, error)
	MarkRead(ctx context.Context, conversationID uint, readerEmail string) error
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// CreateIdempotent inserts the message unless a row with the same
// (conversation, client key) already exists, in which case that row is
// returned. A retried send therefore maps onto the original message instead
// of duplicating it.
func (r *messageRepository) CreateIdempotent(ctx context.Context, message *models.Message) (*models.Message, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "conversation_id"}, {Name: "client_key"}},
		DoNothing: true,
	}).Create(message)
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		var existing models.Message
		err := r.db.WithContext(ctx).
			Where("conversation_id = ? AND client_key = ?", message.ConversationID, message.ClientKey).
			First(&existing).Error
		if err != nil {
			return nil, err
		}
		return &existing, nil
	}
	return message, nil
}

func (r *messageRepository) FindByConversationID(ctx context.Context, conversationID uint) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("id ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkRead appends the reader to the read set of every message they have not
// read yet. Messages are otherwise append-only.
func (r *messageRepository) MarkRead(ctx context.Context, conversationID uint, readerEmail string) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE messages
		SET read_by = array_append(read_by, ?)
		WHERE conversation_id = ?
		  AND sender_email <> ?
		  AND NOT (? = ANY(read_by))
	`, readerEmail, conversationID, readerEmail, readerEmail).Error
}
