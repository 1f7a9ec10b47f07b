package models

import "time"

// HostResponseStatus classifies a host relative to one booking. One row per
// (booking, host) pair is the single source of truth for the "who has
// responded" view; it is written in the same transaction as the offer and
// conversation mutations that change it.
type HostResponseStatus string

const (
	HostPendingResponse    HostResponseStatus = "pending_response"
	HostHasPendingOffer    HostResponseStatus = "has_pending_offer"
	HostAccepted           HostResponseStatus = "accepted"
	HostDeclinedByHost     HostResponseStatus = "declined_by_host"
	HostDeclinedByTraveler HostResponseStatus = "declined_by_traveler"
	HostNotSelected        HostResponseStatus = "not_selected"
	HostNoResponse         HostResponseStatus = "no_response"
)

type HostResponse struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	BookingID uint               `gorm:"not null;uniqueIndex:idx_host_response_pair" json:"booking_id"`
	HostEmail string             `gorm:"not null;uniqueIndex:idx_host_response_pair" json:"host_email"`
	Status    HostResponseStatus `gorm:"type:varchar(24);not null;default:'pending_response'" json:"status"`
	OfferID   *uint              `json:"offer_id,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}
