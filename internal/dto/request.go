package dto

import "time"

type CreateBookingRequest struct {
	CityID     uint      `json:"city_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Adults     int       `json:"adults"`
	Children   int       `json:"children"`
	ServiceIDs []string  `json:"service_ids"`
	Notes      string    `json:"notes"`
}

type CreateConversationRequest struct {
	HostEmails []string `json:"host_emails"`
}

type SendMessageRequest struct {
	ClientKey   string   `json:"client_key"`
	Body        string   `json:"body"`
	SourceLang  string   `json:"source_lang"`
	Attachments []string `json:"attachments"`
}

type SubmitOfferRequest struct {
	OfferType     string     `json:"offer_type"`
	PriceBase     float64    `json:"price_base"`
	Inclusions    string     `json:"inclusions"`
	RentalDetails string     `json:"rental_details"`
	ExpiryDate    *time.Time `json:"expiry_date"`
}

type PlanItineraryRequest struct {
	CityName  string    `json:"city_name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Adults    int       `json:"adults"`
	Children  int       `json:"children"`
	Interests []string  `json:"interests"`
}
