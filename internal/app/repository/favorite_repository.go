package repository

import (
	"github.com/livreacesso/livre-acesso-backend/internal/app/model"
	"github.com/livreacesso/livre-acesso-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository interface {
	// Add marks the place as a favorite of the user. Adding an existing
	// favorite is a no-op; the returned flag reports whether a row was
	// actually inserted.
	Add(userID, placeID uint) (bool, error)
	Remove(userID, placeID uint) (bool, error)
	Exists(userID, placeID uint) (bool, error)
	FindRecentByUser(userID uint, limit int) ([]model.Favorite, error)
	CountByUser(userID uint) (int64, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Add(userID, placeID uint) (bool, error) {
	logger.Debug("Adding favorite", map[string]interface{}{
		"user_id":  userID,
		"place_id": placeID,
	})

	favorite := model.Favorite{UserID: userID, PlaceID: placeID}
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "place_id"}},
		DoNothing: true,
	}).Create(&favorite)
	if res.Error != nil {
		logger.Error("Failed to add favorite", res.Error, map[string]interface{}{
			"user_id":  userID,
			"place_id": placeID,
		})
		return false, res.Error
	}

	inserted := res.RowsAffected > 0
	logger.Debug("Favorite added", map[string]interface{}{
		"user_id":  userID,
		"place_id": placeID,
		"inserted": inserted,
	})
	return inserted, nil
}

func (r *favoriteRepository) Remove(userID, placeID uint) (bool, error) {
	logger.Debug("Removing favorite", map[string]interface{}{
		"user_id":  userID,
		"place_id": placeID,
	})

	res := r.db.Where("user_id = ? AND place_id = ?", userID, placeID).Delete(&model.Favorite{})
	if res.Error != nil {
		logger.Error("Failed to remove favorite", res.Error, map[string]interface{}{
			"user_id":  userID,
			"place_id": placeID,
		})
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *favoriteRepository) Exists(userID, placeID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Favorite{}).
		Where("user_id = ? AND place_id = ?", userID, placeID).
		Count(&count).Error; err != nil {
		logger.Error("Failed to check favorite", err, map[string]interface{}{
			"user_id":  userID,
			"place_id": placeID,
		})
		return false, err
	}
	return count > 0, nil
}

func (r *favoriteRepository) FindRecentByUser(userID uint, limit int) ([]model.Favorite, error) {
	var favorites []model.Favorite
	err := r.db.Where("user_id = ?", userID).
		Preload("Place", func(db *gorm.DB) *gorm.DB {
			return db.Preload("Photos", func(db *gorm.DB) *gorm.DB {
				return db.Order("photos.created_at ASC, photos.id ASC")
			}).Preload("Reviews")
		}).
		Order("created_at DESC").
		Limit(limit).
		Find(&favorites).Error
	if err != nil {
		logger.Error("Failed to find recent favorites by user", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return favorites, nil
}

func (r *favoriteRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Favorite{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		logger.Error("Failed to count favorites by user", err, map[string]interface{}{
			"user_id": userID,
		})
		return 0, err
	}
	return count, nil
}
