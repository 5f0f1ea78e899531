package service

import (
	"errors"
	"strings"

	"github.com/livreacesso/livre-acesso-backend/internal/app/model"
	"github.com/livreacesso/livre-acesso-backend/internal/app/repository"
	"github.com/livreacesso/livre-acesso-backend/pkg/logger"
)

var ErrInvalidRating = errors.New("nota deve ser um número entre 1 e 5")

type ReviewInput struct {
	PlaceID uint
	UserID  uint
	Rating  float64
	Comment string
}

type ReviewService interface {
	CreateReview(input ReviewInput) (*ReviewView, error)
	ListReviews(placeID uint) ([]ReviewView, error)
}

type reviewService struct {
	reviewRepo   repository.ReviewRepository
	placeService PlaceService
}

func NewReviewService(reviewRepo repository.ReviewRepository, placeService PlaceService) ReviewService {
	return &reviewService{
		reviewRepo:   reviewRepo,
		placeService: placeService,
	}
}

func (s *reviewService) CreateReview(input ReviewInput) (*ReviewView, error) {
	logger.Info("Creating review", map[string]interface{}{
		"place_id": input.PlaceID,
		"user_id":  input.UserID,
		"rating":   input.Rating,
	})

	if err := s.placeService.PlaceExists(input.PlaceID); err != nil {
		return nil, err
	}

	// Fractional ratings are truncated, not rounded: 4.9 stores as 4.
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}
	rating := int(input.Rating)

	var comment *string
	if trimmed := strings.TrimSpace(input.Comment); trimmed != "" {
		comment = &trimmed
	}

	review := &model.Review{
		PlaceID: input.PlaceID,
		UserID:  input.UserID,
		Rating:  rating,
		Comment: comment,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		logger.Error("Failed to create review", err, map[string]interface{}{
			"place_id": input.PlaceID,
			"user_id":  input.UserID,
		})
		return nil, err
	}

	logger.Info("Review created", map[string]interface{}{
		"review_id": review.ID,
		"place_id":  review.PlaceID,
	})

	view := ProjectReview(review)
	return &view, nil
}

func (s *reviewService) ListReviews(placeID uint) ([]ReviewView, error) {
	reviews, err := s.reviewRepo.ListByPlace(placeID)
	if err != nil {
		logger.Error("Failed to list reviews", err, map[string]interface{}{
			"place_id": placeID,
		})
		return nil, err
	}

	views := make([]ReviewView, 0, len(reviews))
	for i := range reviews {
		views = append(views, ProjectReview(&reviews[i]))
	}
	return views, nil
}
