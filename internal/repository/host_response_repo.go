package repository

import (
	"context"

	"github.com/sawa-travel/marketplace/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HostResponseRepository interface {
	Upsert(ctx context.Context, tx *gorm.DB, response *models.HostResponse) error
	FindByBookingID(ctx context.Context, bookingID uint) ([]models.HostResponse, error)
	ReclassifyOnAccept(ctx context.Context, tx *gorm.DB, bookingID uint, winnerEmail string) error
}

type hostResponseRepository struct {
	db *gorm.DB
}

func NewHostResponseRepository(db *gorm.DB) HostResponseRepository {
	return &hostResponseRepository{db: db}
}

// Upsert writes the one row per (booking, host) pair that classification
// reads from. Insert or overwrite on conflict.
func (r *hostResponseRepository) Upsert(ctx context.Context, tx *gorm.DB, response *models.HostResponse) error {
	return tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "booking_id"}, {Name: "host_email"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "offer_id", "updated_at"}),
	}).Create(response).Error
}

func (r *hostResponseRepository) FindByBookingID(ctx context.Context, bookingID uint) ([]models.HostResponse, error) {
	var responses []models.HostResponse
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("host_email ASC").
		Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}

// ReclassifyOnAccept settles every non-winning row once the booking is
// confirmed: hosts with a live offer become not_selected, hosts who never
// offered become no_response.
func (r *hostResponseRepository) ReclassifyOnAccept(ctx context.Context, tx *gorm.DB, bookingID uint, winnerEmail string) error {
	err := tx.WithContext(ctx).
		Model(&models.HostResponse{}).
		Where("booking_id = ? AND host_email <> ? AND status = ?",
			bookingID, winnerEmail, models.HostHasPendingOffer).
		Update("status", models.HostNotSelected).Error
	if err != nil {
		return err
	}

	return tx.WithContext(ctx).
		Model(&models.HostResponse{}).
		Where("booking_id = ? AND host_email <> ? AND status = ?",
			bookingID, winnerEmail, models.HostPendingResponse).
		Update("status", models.HostNoResponse).Error
}
