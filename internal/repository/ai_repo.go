package repository

import (
	"context"

	"github.com/sawa-travel/marketplace/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AIRepository interface {
	GetCached(ctx context.Context, promptHash string) (*models.AICache, error)
	PutCached(ctx context.Context, cache *models.AICache) error
	Log(ctx context.Context, entry *models.AILog) error
}

type aiRepository struct {
	db *gorm.DB
}

func NewAIRepository(db *gorm.DB) AIRepository {
	return &aiRepository{db: db}
}

func (r *aiRepository) GetCached(ctx context.Context, promptHash string) (*models.AICache, error) {
	var cache models.AICache
	if err := r.db.WithContext(ctx).Where("prompt_hash = ?", promptHash).First(&cache).Error; err != nil {
		return nil, err
	}
	return &cache, nil
}

func (r *aiRepository) PutCached(ctx context.Context, cache *models.AICache) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "prompt_hash"}},
		DoUpdates: clause.AssignmentColumns([]string{"response"}),
	}).Create(cache).Error
}

func (r *aiRepository) Log(ctx context.Context, entry *models.AILog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
