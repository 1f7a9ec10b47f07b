package repository

import (
	"context"

	"github.com/sawa-travel/marketplace/internal/models"
	"gorm.io/gorm"
)

type OfferRepository interface {
	Create(ctx context.Context, tx *gorm.DB, offer *models.Offer) error
	FindByID(ctx context.Context, id uint) (*models.Offer, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Offer, error)
	FindByBookingID(ctx context.Context, bookingID uint) ([]models.Offer, error)
	FindPendingExcept(ctx context.Context, tx *gorm.DB, bookingID, exceptOfferID uint) ([]models.Offer, error)
	HasPending(ctx context.Context, tx *gorm.DB, bookingID uint, hostEmail string) (bool, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, offerID uint, status models.OfferStatus) error
	ExpireIfPending(ctx context.Context, tx *gorm.DB, offerID uint) (bool, error)
}

type offerRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &offerRepository{db: db}
}

func (r *offerRepository) Create(ctx context.Context, tx *gorm.DB, offer *models.Offer) error {
	return tx.WithContext(ctx).Create(offer).Error
}

func (r *offerRepository) FindByID(ctx context.Context, id uint) (*models.Offer, error) {
	var offer models.Offer
	if err := r.db.WithContext(ctx).First(&offer, id).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *offerRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Offer, error) {
	var offer models.Offer
	if err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		First(&offer, id).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *offerRepository) FindByBookingID(ctx context.Context, bookingID uint) ([]models.Offer, error) {
	var offers []models.Offer
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("id ASC").
		Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

// FindPendingExcept returns the competing pending offers that lose when
// exceptOfferID is accepted.
func (r *offerRepository) FindPendingExcept(ctx context.Context, tx *gorm.DB, bookingID, exceptOfferID uint) ([]models.Offer, error) {
	var offers []models.Offer
	if err := tx.WithContext(ctx).
		Where("booking_id = ? AND id <> ? AND status = ?", bookingID, exceptOfferID, models.OfferPending).
		Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

// HasPending reports whether the host already has a live offer on the
// booking. Callers hold the booking row lock, so the answer cannot change
// before their own insert commits.
func (r *offerRepository) HasPending(ctx context.Context, tx *gorm.DB, bookingID uint, hostEmail string) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Offer{}).
		Where("booking_id = ? AND host_email = ? AND status = ?", bookingID, hostEmail, models.OfferPending).
		Count(&count).Error
	return count > 0, err
}

func (r *offerRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, offerID uint, status models.OfferStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Offer{}).
		Where("id = ?", offerID).
		Update("status", status).Error
}

// ExpireIfPending flips the offer to expired only while it is still pending,
// so a lazy-expiry read can never overwrite a state a concurrent transaction
// has already settled. Reports whether this call flipped the row.
func (r *offerRepository) ExpireIfPending(ctx context.Context, tx *gorm.DB, offerID uint) (bool, error) {
	res := tx.WithContext(ctx).
		Model(&models.Offer{}).
		Where("id = ? AND status = ?", offerID, models.OfferPending).
		Update("status", models.OfferExpired)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
