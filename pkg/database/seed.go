package database

import (
	"log"

	"github.com/sawa-travel/marketplace/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var defaultCities = []models.City{
	{Name: "Amman", Country: "Jordan"},
	{Name: "Petra", Country: "Jordan"},
	{Name: "Wadi Rum", Country: "Jordan"},
	{Name: "Aqaba", Country: "Jordan"},
	{Name: "Jerash", Country: "Jordan"},
	{Name: "Madaba", Country: "Jordan"},
	{Name: "Dead Sea", Country: "Jordan"},
	{Name: "Salt", Country: "Jordan"},
}

// SeedCities inserts the destination catalog, skipping names already
// present. Safe to run on every startup.
func SeedCities(db *gorm.DB) {
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&defaultCities).Error
	if err != nil {
		log.Printf("[Database] city seed failed: %v", err)
	}
}
