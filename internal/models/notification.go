package models

import "time"

type NotificationKind string

const (
	NotifyOfferReceived    NotificationKind = "offer_received"
	NotifyOfferAccepted    NotificationKind = "offer_accepted"
	NotifyOfferDeclined    NotificationKind = "offer_declined"
	NotifyBookingTaken     NotificationKind = "booking_taken"
	NotifyBookingCancelled NotificationKind = "booking_cancelled"
	NotifyNewMessage       NotificationKind = "new_message"
)

type Notification struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	RecipientEmail string           `gorm:"not null;index" json:"recipient_email"`
	Kind           NotificationKind `gorm:"type:varchar(24);not null" json:"kind"`
	Title          string           `gorm:"not null" json:"title"`
	Body           string           `json:"body"`
	BookingID      *uint            `json:"booking_id,omitempty"`
	Read           bool             `gorm:"not null;default:false" json:"read"`
	CreatedAt      time.Time        `json:"created_at"`
}
