package db

import (
	"github.com/livreacesso/livre-acesso-backend/internal/app/model"
	"github.com/livreacesso/livre-acesso-backend/pkg/logger"
	"gorm.io/gorm/clause"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Feature{},
		&model.Place{},
		&model.PlaceFeature{},
		&model.Photo{},
		&model.Review{},
		&model.Favorite{},
		&model.QuestionnaireResponse{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedCanonicalFeatures(); err != nil {
		logger.Error("Failed to seed canonical features", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// seedCanonicalFeatures inserts the canonical feature registry entries.
// Existing rows keep their labels: keys already present are skipped so a
// label introduced lazily by a client submission is never overwritten back.
func seedCanonicalFeatures() error {
	features := make([]model.Feature, 0, len(model.FeatureKeys()))
	for _, key := range model.FeatureKeys() {
		features = append(features, model.Feature{
			Key:   key,
			Label: model.FeatureLabel(key),
		})
	}

	if err := DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}).Create(&features).Error; err != nil {
		return err
	}

	logger.Info("Canonical features seeded", map[string]interface{}{
		"count": len(features),
	})
	return nil
}
