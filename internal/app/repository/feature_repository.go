package repository

import (
	"github.com/livreacesso/livre-acesso-backend/internal/app/model"
	"github.com/livreacesso/livre-acesso-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FeatureRepository interface {
	// ResolveOrCreate returns the feature registered under key, inserting it
	// first when absent. The created flag reports whether this call inserted
	// the row.
	ResolveOrCreate(key string) (*model.Feature, bool, error)
	FindByKeys(keys []string) ([]model.Feature, error)
	ListAll() ([]model.Feature, error)
}

type featureRepository struct {
	db *gorm.DB
}

func NewFeatureRepository(db *gorm.DB) FeatureRepository {
	return &featureRepository{db: db}
}

// ResolveOrCreate is an atomic insert-if-absent on the unique key column.
// Two concurrent calls for the same fresh key both succeed and resolve to
// the single row the storage layer kept; the label set by the winning
// insert is never overwritten.
func (r *featureRepository) ResolveOrCreate(key string) (*model.Feature, bool, error) {
	candidate := model.Feature{
		Key:   key,
		Label: model.FeatureLabel(key),
	}

	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}).Create(&candidate)
	if res.Error != nil {
		logger.Error("Failed to upsert feature", res.Error, map[string]interface{}{
			"key": key,
		})
		return nil, false, res.Error
	}
	created := res.RowsAffected > 0

	var feature model.Feature
	if err := r.db.Where("key = ?", key).First(&feature).Error; err != nil {
		logger.Error("Failed to fetch feature after upsert", err, map[string]interface{}{
			"key": key,
		})
		return nil, false, err
	}

	if created {
		logger.Info("Feature key registered", map[string]interface{}{
			"key":   feature.Key,
			"label": feature.Label,
		})
	}
	return &feature, created, nil
}

func (r *featureRepository) FindByKeys(keys []string) ([]model.Feature, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	var features []model.Feature
	if err := r.db.Where("key IN ?", keys).Find(&features).Error; err != nil {
		logger.Error("Failed to find features by keys", err, map[string]interface{}{
			"keys": keys,
		})
		return nil, err
	}
	return features, nil
}

func (r *featureRepository) ListAll() ([]model.Feature, error) {
	var features []model.Feature
	if err := r.db.Order("id ASC").Find(&features).Error; err != nil {
		logger.Error("Failed to list features", err)
		return nil, err
	}
	return features, nil
}
