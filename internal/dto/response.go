package dto

import (
	"time"

	"github.com/sawa-travel/marketplace/internal/models"
)

type BookingResponse struct {
	ID              uint                 `json:"id"`
	TravelerEmail   string               `json:"traveler_email"`
	CityID          uint                 `json:"city_id"`
	StartDate       time.Time            `json:"start_date"`
	EndDate         time.Time            `json:"end_date"`
	Adults          int                  `json:"adults"`
	Children        int                  `json:"children"`
	ServiceIDs      []string             `json:"service_ids"`
	Notes           string               `json:"notes,omitempty"`
	Status          models.BookingStatus `json:"status"`
	AcceptedOfferID *uint                `json:"accepted_offer_id,omitempty"`
	HostEmail       *string              `json:"host_email,omitempty"`
	HostName        *string              `json:"host_name,omitempty"`
	TotalPrice      *float64             `json:"total_price,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

type PriceBreakdown struct {
	PriceBase     float64 `json:"price_base"`
	SawaPercent   float64 `json:"sawa_percent"`
	SawaFee       float64 `json:"sawa_fee"`
	OfficePercent float64 `json:"office_percent,omitempty"`
	OfficeFee     float64 `json:"office_fee,omitempty"`
	Total         float64 `json:"total"`
}

type OfferResponse struct {
	ID             uint               `json:"id"`
	BookingID      uint               `json:"booking_id"`
	HostEmail      string             `json:"host_email"`
	HostName       string             `json:"host_name"`
	OfferType      models.OfferType   `json:"offer_type"`
	PriceBase      float64            `json:"price_base"`
	PriceBreakdown *PriceBreakdown    `json:"price_breakdown,omitempty"`
	Inclusions     string             `json:"inclusions,omitempty"`
	RentalDetails  string             `json:"rental_details,omitempty"`
	Status         models.OfferStatus `json:"status"`
	ExpiryDate     *time.Time         `json:"expiry_date,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		TravelerEmail:   b.TravelerEmail,
		CityID:          b.CityID,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		Adults:          b.Adults,
		Children:        b.Children,
		ServiceIDs:      b.ServiceIDs,
		Notes:           b.Notes,
		Status:          b.Status,
		AcceptedOfferID: b.AcceptedOfferID,
		HostEmail:       b.HostEmail,
		HostName:        b.HostName,
		TotalPrice:      b.TotalPrice,
		CreatedAt:       b.CreatedAt,
	}
}

func ToOfferResponse(o *models.Offer) OfferResponse {
	resp := OfferResponse{
		ID:            o.ID,
		BookingID:     o.BookingID,
		HostEmail:     o.HostEmail,
		HostName:      o.HostName,
		OfferType:     o.OfferType,
		PriceBase:     o.PriceBase,
		Inclusions:    o.Inclusions,
		RentalDetails: o.RentalDetails,
		Status:        o.Status,
		ExpiryDate:    o.ExpiryDate,
		CreatedAt:     o.CreatedAt,
	}
	// Only service offers carry a commission breakdown.
	if o.OfferType == models.OfferTypeService {
		resp.PriceBreakdown = &PriceBreakdown{
			PriceBase:     o.PriceBase,
			SawaPercent:   o.SawaPercent,
			SawaFee:       o.SawaFee,
			OfficePercent: o.OfficePercent,
			OfficeFee:     o.OfficeFee,
			Total:         o.PriceTotal,
		}
	}
	return resp
}
