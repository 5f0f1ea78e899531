package service

import (
	"github.com/livreacesso/livre-acesso-backend/internal/app/repository"
	"github.com/livreacesso/livre-acesso-backend/pkg/logger"
)

type FavoriteService interface {
	// AddFavorite marks a place as favorite of the user; repeating the call
	// is a no-op, not an error.
	AddFavorite(userID, placeID uint) error
	// RemoveFavorite unmarks the place. Removing an absent favorite
	// succeeds silently.
	RemoveFavorite(userID, placeID uint) error
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	placeService PlaceService
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, placeService PlaceService) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		placeService: placeService,
	}
}

func (s *favoriteService) AddFavorite(userID, placeID uint) error {
	logger.Info("Adding favorite", map[string]interface{}{
		"user_id":  userID,
		"place_id": placeID,
	})

	if err := s.placeService.PlaceExists(placeID); err != nil {
		return err
	}

	inserted, err := s.favoriteRepo.Add(userID, placeID)
	if err != nil {
		logger.Error("Failed to add favorite", err, map[string]interface{}{
			"user_id":  userID,
			"place_id": placeID,
		})
		return err
	}

	logger.Info("Favorite added", map[string]interface{}{
		"user_id":  userID,
		"place_id": placeID,
		"inserted": inserted,
	})
	return nil
}

func (s *favoriteService) RemoveFavorite(userID, placeID uint) error {
	logger.Info("Removing favorite", map[string]interface{}{
		"user_id":  userID,
		"place_id": placeID,
	})

	if _, err := s.favoriteRepo.Remove(userID, placeID); err != nil {
		logger.Error("Failed to remove favorite", err, map[string]interface{}{
			"user_id":  userID,
			"place_id": placeID,
		})
		return err
	}
	return nil
}
