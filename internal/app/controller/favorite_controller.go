package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/livreacesso/livre-acesso-backend/internal/app/service"
	apperrors "github.com/livreacesso/livre-acesso-backend/internal/errors"
	"github.com/livreacesso/livre-acesso-backend/internal/middleware"
)

type FavoriteController struct {
	favoriteService service.FavoriteService
}

func NewFavoriteController(favoriteService service.FavoriteService) *FavoriteController {
	return &FavoriteController{favoriteService: favoriteService}
}

func (ctrl *FavoriteController) AddFavorite(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("User ID not found in context for favorite", nil)
		apperrors.Unauthorized(c, "")
		return
	}

	placeID, ok := parsePlaceID(c)
	if !ok {
		return
	}

	if err := ctrl.favoriteService.AddFavorite(userID, placeID); err != nil {
		if errors.Is(err, service.ErrPlaceNotFound) {
			apperrors.NotFound(c, apperrors.PlaceNotFound, "Local não encontrado.")
			return
		}
		log.Error("Failed to add favorite", err, map[string]interface{}{
			"place_id": placeID,
			"user_id":  userID,
		})
		apperrors.InternalError(c, "Erro ao favoritar local.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

func (ctrl *FavoriteController) RemoveFavorite(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("User ID not found in context for unfavorite", nil)
		apperrors.Unauthorized(c, "")
		return
	}

	placeID, ok := parsePlaceID(c)
	if !ok {
		return
	}

	// Removing an absent favorite still answers 204.
	if err := ctrl.favoriteService.RemoveFavorite(userID, placeID); err != nil {
		log.Error("Failed to remove favorite", err, map[string]interface{}{
			"place_id": placeID,
			"user_id":  userID,
		})
		apperrors.InternalError(c, "Erro ao desfavoritar local.")
		return
	}

	c.Status(http.StatusNoContent)
}
