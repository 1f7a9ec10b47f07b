package models

import (
	"time"

	"github.com/lib/pq"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Active reports whether the booking can still receive offers and messages.
func (s BookingStatus) Active() bool {
	return s == BookingPending || s == BookingConfirmed
}

type Booking struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	TravelerEmail string         `gorm:"not null;index" json:"traveler_email"`
	CityID        uint           `gorm:"not null" json:"city_id"`
	StartDate     time.Time      `json:"start_date"`
	EndDate       time.Time      `json:"end_date"`
	Adults        int            `gorm:"not null;default:1" json:"adults"`
	Children      int            `gorm:"not null;default:0" json:"children"`
	ServiceIDs    pq.StringArray `gorm:"type:text[]" json:"service_ids"`
	Notes         string         `json:"notes"`
	Status        BookingStatus  `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	// Set only by offer acceptance, inside the same transaction.
	AcceptedOfferID *uint    `json:"accepted_offer_id,omitempty"`
	HostEmail       *string  `json:"host_email,omitempty"`
	HostName        *string  `json:"host_name,omitempty"`
	TotalPrice      *float64 `json:"total_price,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	City *City `gorm:"foreignKey:CityID" json:"city,omitempty"`
}
