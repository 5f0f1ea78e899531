package repository

import (
	"github.com/livreacesso/livre-acesso-backend/internal/app/model"
	"github.com/livreacesso/livre-acesso-backend/pkg/logger"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *model.Review) error
	ListByPlace(placeID uint) ([]model.Review, error)
	FindRecentByUser(userID uint, limit int) ([]model.Review, error)
	CountByUser(userID uint) (int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *model.Review) error {
	logger.Debug("Creating review in database", map[string]interface{}{
		"place_id": review.PlaceID,
		"user_id":  review.UserID,
		"rating":   review.Rating,
	})

	if err := r.db.Create(review).Error; err != nil {
		logger.Error("Failed to create review in database", err, map[string]interface{}{
			"place_id": review.PlaceID,
			"user_id":  review.UserID,
		})
		return err
	}

	if err := r.db.Preload("User").First(review, review.ID).Error; err != nil {
		logger.Error("Failed to reload review with author", err, map[string]interface{}{
			"review_id": review.ID,
		})
		return err
	}

	logger.Debug("Review created in database", map[string]interface{}{
		"review_id": review.ID,
		"place_id":  review.PlaceID,
	})
	return nil
}

func (r *reviewRepository) ListByPlace(placeID uint) ([]model.Review, error) {
	logger.Debug("Listing reviews by place", map[string]interface{}{
		"place_id": placeID,
	})

	var reviews []model.Review
	err := r.db.Where("place_id = ?", placeID).
		Preload("User").
		Order("created_at DESC, id DESC").
		Find(&reviews).Error
	if err != nil {
		logger.Error("Failed to list reviews by place", err, map[string]interface{}{
			"place_id": placeID,
		})
		return nil, err
	}

	logger.Debug("Reviews listed by place", map[string]interface{}{
		"place_id": placeID,
		"count":    len(reviews),
	})
	return reviews, nil
}

func (r *reviewRepository) FindRecentByUser(userID uint, limit int) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.Where("user_id = ?", userID).
		Preload("Place", func(db *gorm.DB) *gorm.DB {
			return db.Preload("Photos", func(db *gorm.DB) *gorm.DB {
				return db.Order("photos.created_at ASC, photos.id ASC")
			}).Preload("Reviews")
		}).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		logger.Error("Failed to find recent reviews by user", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Review{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		logger.Error("Failed to count reviews by user", err, map[string]interface{}{
			"user_id": userID,
		})
		return 0, err
	}
	return count, nil
}
