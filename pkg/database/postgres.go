package database

import (
	"log"

	"github.com/sawa-travel/marketplace/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.City{},
		&models.User{},
		&models.Booking{},
		&models.Offer{},
		&models.Conversation{},
		&models.Message{},
		&models.HostResponse{},
		&models.Notification{},
		&models.AICache{},
		&models.AILog{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Partial unique index: at most one accepted offer per booking
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_offer_accepted
		ON offers (booking_id)
		WHERE status = 'accepted'
	`)

	// Partial unique index: one live offer per (booking, host) pair
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_offer_pending
		ON offers (booking_id, host_email)
		WHERE status = 'pending'
	`)

	// Idempotent message sends: a retried client key maps onto the same row
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_message_client_key
		ON messages (conversation_id, client_key)
	`)

	return db
}
