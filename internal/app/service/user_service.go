package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/livreacesso/livre-acesso-backend/internal/app/model"
	"github.com/livreacesso/livre-acesso-backend/internal/app/repository"
	"github.com/livreacesso/livre-acesso-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("usuário não encontrado")

const profileRecentLimit = 5

type ProfileStats struct {
	Places    int64 `json:"places"`
	Reviews   int64 `json:"reviews"`
	Favorites int64 `json:"favorites"`
}

type ProfileFavorite struct {
	ID      string    `json:"id"`
	AddedAt time.Time `json:"addedAt"`
	Place   PlaceView `json:"place"`
}

type ProfileReview struct {
	ID        uint      `json:"id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	Place     PlaceView `json:"place"`
}

// ProfileView is the /users/me payload: identity, activity totals and the
// five most recent entries of each activity kind.
type ProfileView struct {
	ID        uint              `json:"id"`
	Email     string            `json:"email"`
	Name      string            `json:"name"`
	Surname   string            `json:"surname"`
	CreatedAt time.Time         `json:"createdAt"`
	Stats     ProfileStats      `json:"stats"`
	Places    []PlaceView       `json:"places"`
	Favorites []ProfileFavorite `json:"favorites"`
	Reviews   []ProfileReview   `json:"reviews"`
}

type UserService interface {
	GetProfile(userID uint) (*ProfileView, error)
}

type userService struct {
	userRepo     repository.UserRepository
	placeRepo    repository.PlaceRepository
	reviewRepo   repository.ReviewRepository
	favoriteRepo repository.FavoriteRepository
}

func NewUserService(
	userRepo repository.UserRepository,
	placeRepo repository.PlaceRepository,
	reviewRepo repository.ReviewRepository,
	favoriteRepo repository.FavoriteRepository,
) UserService {
	return &userService{
		userRepo:     userRepo,
		placeRepo:    placeRepo,
		reviewRepo:   reviewRepo,
		favoriteRepo: favoriteRepo,
	}
}

func (s *userService) GetProfile(userID uint) (*ProfileView, error) {
	logger.Debug("Fetching user profile", map[string]interface{}{
		"user_id": userID,
	})

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	placeCount, err := s.placeRepo.CountByOwner(userID)
	if err != nil {
		return nil, err
	}
	reviewCount, err := s.reviewRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	favoriteCount, err := s.favoriteRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	ownPlaces, err := s.placeRepo.FindRecentByOwner(userID, profileRecentLimit)
	if err != nil {
		return nil, err
	}
	favorites, err := s.favoriteRepo.FindRecentByUser(userID, profileRecentLimit)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.FindRecentByUser(userID, profileRecentLimit)
	if err != nil {
		return nil, err
	}

	placeViews := make([]PlaceView, 0, len(ownPlaces))
	for i := range ownPlaces {
		placeViews = append(placeViews, ToListView(&ownPlaces[i], &userID))
	}

	favoriteViews := make([]ProfileFavorite, 0, len(favorites))
	if len(favorites) > 0 {
		places := make([]model.Place, len(favorites))
		for i, favorite := range favorites {
			places[i] = favorite.Place
		}
		if err := s.placeRepo.PopulateCounts(&places); err != nil {
			return nil, err
		}
		for i, favorite := range favorites {
			favoriteViews = append(favoriteViews, ProfileFavorite{
				ID:      fmt.Sprintf("%d-%d", favorite.UserID, favorite.PlaceID),
				AddedAt: favorite.CreatedAt,
				Place:   ToListView(&places[i], &userID),
			})
		}
	}

	reviewViews := make([]ProfileReview, 0, len(reviews))
	if len(reviews) > 0 {
		places := make([]model.Place, len(reviews))
		for i, review := range reviews {
			places[i] = review.Place
		}
		if err := s.placeRepo.PopulateCounts(&places); err != nil {
			return nil, err
		}
		for i, review := range reviews {
			reviewViews = append(reviewViews, ProfileReview{
				ID:        review.ID,
				Rating:    review.Rating,
				Comment:   review.Comment,
				CreatedAt: review.CreatedAt,
				Place:     ToListView(&places[i], &userID),
			})
		}
	}

	logger.Debug("User profile fetched", map[string]interface{}{
		"user_id":   userID,
		"places":    len(placeViews),
		"favorites": len(favoriteViews),
		"reviews":   len(reviewViews),
	})

	return &ProfileView{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Surname:   user.Surname,
		CreatedAt: user.CreatedAt,
		Stats: ProfileStats{
			Places:    placeCount,
			Reviews:   reviewCount,
			Favorites: favoriteCount,
		},
		Places:    placeViews,
		Favorites: favoriteViews,
		Reviews:   reviewViews,
	}, nil
}
