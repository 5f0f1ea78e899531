package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/livreacesso/livre-acesso-backend/internal/app/service"
	apperrors "github.com/livreacesso/livre-acesso-backend/internal/errors"
	"github.com/livreacesso/livre-acesso-backend/internal/middleware"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

type ReviewRequest struct {
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}

func (ctrl *ReviewController) ListReviews(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	placeID, ok := parsePlaceID(c)
	if !ok {
		return
	}

	reviews, err := ctrl.reviewService.ListReviews(placeID)
	if err != nil {
		log.Error("Failed to list reviews", err, map[string]interface{}{
			"place_id": placeID,
		})
		apperrors.InternalError(c, "Erro ao listar avaliações.")
		return
	}

	c.JSON(http.StatusOK, reviews)
}

func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("User ID not found in context for review creation", nil)
		apperrors.Unauthorized(c, "")
		return
	}

	placeID, ok := parsePlaceID(c)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid review request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ReviewInvalidRating, "Nota deve ser um número entre 1 e 5.")
		return
	}

	view, err := ctrl.reviewService.CreateReview(service.ReviewInput{
		PlaceID: placeID,
		UserID:  userID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlaceNotFound):
			apperrors.NotFound(c, apperrors.PlaceNotFound, "Local não encontrado.")
		case errors.Is(err, service.ErrInvalidRating):
			apperrors.BadRequest(c, apperrors.ReviewInvalidRating, "Nota deve ser um número entre 1 e 5.")
		default:
			log.Error("Failed to create review", err, map[string]interface{}{
				"place_id": placeID,
				"user_id":  userID,
			})
			apperrors.InternalError(c, "Erro ao registrar avaliação.")
		}
		return
	}

	log.Info("Review created", map[string]interface{}{
		"review_id": view.ID,
		"place_id":  placeID,
		"user_id":   userID,
	})
	c.JSON(http.StatusCreated, view)
}
