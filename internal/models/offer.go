package models

import "time"

type OfferStatus string

const (
	OfferPending     OfferStatus = "pending"
	OfferAccepted    OfferStatus = "accepted"
	OfferDeclined    OfferStatus = "declined"
	OfferNotSelected OfferStatus = "not_selected"
	OfferExpired     OfferStatus = "expired"
)

// Terminal reports whether the status can never change again.
// Every status except pending is terminal.
func (s OfferStatus) Terminal() bool {
	return s != OfferPending
}

type OfferType string

const (
	OfferTypeService OfferType = "service"
	OfferTypeRental  OfferType = "rental"
)

type Offer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookingID uint      `gorm:"not null;index" json:"booking_id"`
	HostEmail string    `gorm:"not null" json:"host_email"`
	HostName  string    `json:"host_name"`
	OfferType OfferType `gorm:"type:varchar(10);not null" json:"offer_type"`

	// Price breakdown. For rental offers only PriceBase/PriceTotal are set.
	PriceBase     float64 `gorm:"not null" json:"price_base"`
	SawaPercent   float64 `json:"sawa_percent"`
	SawaFee       float64 `json:"sawa_fee"`
	OfficePercent float64 `json:"office_percent"`
	OfficeFee     float64 `json:"office_fee"`
	PriceTotal    float64 `gorm:"not null" json:"price_total"`

	Inclusions    string `json:"inclusions"`
	RentalDetails string `json:"rental_details"`

	Status     OfferStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ExpiryDate *time.Time  `json:"expiry_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExpiredAt reports whether a still-pending offer has passed its expiry date.
// Expiry is evaluated lazily at read time; there is no background sweep.
func (o *Offer) ExpiredAt(now time.Time) bool {
	return o.Status == OfferPending && o.ExpiryDate != nil && now.After(*o.ExpiryDate)
}
