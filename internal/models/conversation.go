package models

import (
	"time"

	"github.com/lib/pq"
)

type ConversationStatus string

const (
	ConversationOpen   ConversationStatus = "open"
	ConversationClosed ConversationStatus = "closed"
)

type Conversation struct {
	ID            uint               `gorm:"primaryKey" json:"id"`
	BookingID     uint               `gorm:"not null;index" json:"booking_id"`
	TravelerEmail string             `gorm:"not null" json:"traveler_email"`
	HostEmails    pq.StringArray     `gorm:"type:text[];not null" json:"host_emails"`
	Status        ConversationStatus `gorm:"type:varchar(10);not null;default:'open'" json:"conversation_status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

func (c *Conversation) HasHost(email string) bool {
	for _, h := range c.HostEmails {
		if h == email {
			return true
		}
	}
	return false
}

// Participant reports whether the given user may read or write this conversation.
func (c *Conversation) Participant(email string) bool {
	return email == c.TravelerEmail || c.HasHost(email)
}
