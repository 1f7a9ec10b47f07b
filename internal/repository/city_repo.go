package repository

import (
	"context"

	"github.com/sawa-travel/marketplace/internal/models"
	"gorm.io/gorm"
)

type CityRepository interface {
	FindByID(ctx context.Context, id uint) (*models.City, error)
	FindAll(ctx context.Context) ([]models.City, error)
	SearchByName(ctx context.Context, prefix string) ([]models.City, error)
}

type cityRepository struct {
	db *gorm.DB
}

func NewCityRepository(db *gorm.DB) CityRepository {
	return &cityRepository{db: db}
}

func (r *cityRepository) FindByID(ctx context.Context, id uint) (*models.City, error) {
	var city models.City
	if err := r.db.WithContext(ctx).First(&city, id).Error; err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *cityRepository) FindAll(ctx context.Context) ([]models.City, error) {
	var cities []models.City
	if err := r.db.WithContext(ctx).
		Where("active = true").
		Order("name ASC").
		Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *cityRepository) SearchByName(ctx context.Context, prefix string) ([]models.City, error) {
	var cities []models.City
	if err := r.db.WithContext(ctx).
		Where("active = true AND name ILIKE ?", prefix+"%").
		Order("name ASC").
		Limit(20).
		Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}
