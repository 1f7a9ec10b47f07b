package models

import (
	"time"

	"github.com/lib/pq"
)

// Message is append-only: rows are never updated except to extend the
// delivered/read receipt sets. ClientKey is a client-generated idempotency
// key echoed back on create, so a retried send maps onto the same row.
type Message struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ConversationID uint           `gorm:"not null;index" json:"conversation_id"`
	ClientKey      string         `gorm:"type:uuid;not null" json:"client_key"`
	SenderEmail    string         `gorm:"not null" json:"sender_email"`
	Body           string         `gorm:"not null" json:"body"`
	SourceLang     string         `gorm:"type:varchar(8);default:'en'" json:"source_lang"`
	Attachments    pq.StringArray `gorm:"type:text[]" json:"attachments,omitempty"`
	DeliveredTo    pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"delivered_to"`
	ReadBy         pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"read_by"`
	CreatedAt      time.Time      `json:"created_at"`
}
