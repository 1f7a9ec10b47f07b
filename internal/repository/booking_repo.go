package repository

import (
	"context"

	"github.com/sawa-travel/marketplace/internal/models"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error)
	FindByTraveler(ctx context.Context, travelerEmail string, status *models.BookingStatus) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error
	Confirm(ctx context.Context, tx *gorm.DB, bookingID uint, offer *models.Offer) error
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

// Transaction runs fn inside one database transaction. The booking table
// owns the connection, so every multi-table mutation goes through here.
func (r *bookingRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).Preload("City").First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByIDForUpdate acquires a row-level lock on the booking within the given
// transaction. The booking row is the serialization point for every offer
// mutation against it.
func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByTraveler(ctx context.Context, travelerEmail string, status *models.BookingStatus) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx).Where("traveler_email = ?", travelerEmail)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("id DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("status", status).Error
}

// Confirm sets the acceptance fields from the winning offer in one update.
func (r *bookingRepository) Confirm(ctx context.Context, tx *gorm.DB, bookingID uint, offer *models.Offer) error {
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Updates(map[string]any{
			"status":            models.BookingConfirmed,
			"accepted_offer_id": offer.ID,
			"host_email":        offer.HostEmail,
			"host_name":         offer.HostName,
			"total_price":       offer.PriceTotal,
		}).Error
}
