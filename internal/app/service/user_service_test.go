package service

import (
	"fmt"
	"testing"

	"github.com/livreacesso/livre-acesso-backend/internal/app/repository"
	"github.com/livreacesso/livre-acesso-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserServiceTest(t *testing.T) (*placeServiceEnv, UserService, ReviewService, FavoriteService) {
	env := setupPlaceServiceTest(t)

	userRepo := repository.NewUserRepository(env.db)
	placeRepo := repository.NewPlaceRepository(env.db)
	reviewRepo := repository.NewReviewRepository(env.db)
	favoriteRepo := repository.NewFavoriteRepository(env.db)

	userService := NewUserService(userRepo, placeRepo, reviewRepo, favoriteRepo)
	reviewService := NewReviewService(reviewRepo, env.service)
	favoriteService := NewFavoriteService(favoriteRepo, env.service)
	return env, userService, reviewService, favoriteService
}

func TestUserService_GetProfile(t *testing.T) {
	env, userService, reviewService, favoriteService := setupUserServiceTest(t)
	defer db.CleanupTestDB(env.db)

	owner := env.createUser(t, "owner@example.com")
	visitor := env.createUser(t, "visitor@example.com")

	place, err := env.service.CreatePlace(validPlaceInput(owner.ID))
	require.NoError(t, err)

	_, err = reviewService.CreateReview(ReviewInput{
		PlaceID: place.ID,
		UserID:  visitor.ID,
		Rating:  4,
		Comment: "Boa estrutura",
	})
	require.NoError(t, err)
	require.NoError(t, favoriteService.AddFavorite(visitor.ID, place.ID))

	profile, err := userService.GetProfile(visitor.ID)
	require.NoError(t, err)

	assert.Equal(t, visitor.ID, profile.ID)
	assert.Equal(t, "visitor@example.com", profile.Email)
	assert.Equal(t, int64(0), profile.Stats.Places)
	assert.Equal(t, int64(1), profile.Stats.Reviews)
	assert.Equal(t, int64(1), profile.Stats.Favorites)
	assert.Empty(t, profile.Places)

	require.Len(t, profile.Favorites, 1)
	favorite := profile.Favorites[0]
	assert.Equal(t, fmt.Sprintf("%d-%d", visitor.ID, place.ID), favorite.ID)
	assert.Equal(t, place.ID, favorite.Place.ID)
	// The embedded place carries its own aggregates
	assert.Equal(t, int64(1), favorite.Place.Stats.ReviewCount)
	assert.Equal(t, int64(1), favorite.Place.Stats.FavoriteCount)
	require.NotNil(t, favorite.Place.Stats.AverageRating)
	assert.InDelta(t, 4.0, *favorite.Place.Stats.AverageRating, 0.0001)

	require.Len(t, profile.Reviews, 1)
	review := profile.Reviews[0]
	assert.Equal(t, 4, review.Rating)
	require.NotNil(t, review.Comment)
	assert.Equal(t, "Boa estrutura", *review.Comment)
	assert.Equal(t, place.ID, review.Place.ID)
}

func TestUserService_GetProfile_OwnPlaces(t *testing.T) {
	env, userService, _, _ := setupUserServiceTest(t)
	defer db.CleanupTestDB(env.db)

	owner := env.createUser(t, "owner@example.com")

	// One more than the recent window
	for i := 0; i < profileRecentLimit+1; i++ {
		input := validPlaceInput(owner.ID)
		input.Name = fmt.Sprintf("Local %d", i)
		_, err := env.service.CreatePlace(input)
		require.NoError(t, err)
	}

	profile, err := userService.GetProfile(owner.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(profileRecentLimit+1), profile.Stats.Places)
	require.Len(t, profile.Places, profileRecentLimit)
	// Newest first
	assert.Equal(t, fmt.Sprintf("Local %d", profileRecentLimit), profile.Places[0].Name)
}

func TestUserService_GetProfile_OwnPlaceFavorited(t *testing.T) {
	env, userService, _, favoriteService := setupUserServiceTest(t)
	defer db.CleanupTestDB(env.db)

	owner := env.createUser(t, "owner@example.com")

	favorited, err := env.service.CreatePlace(validPlaceInput(owner.ID))
	require.NoError(t, err)

	other := validPlaceInput(owner.ID)
	other.Name = "Teatro Municipal"
	_, err = env.service.CreatePlace(other)
	require.NoError(t, err)

	require.NoError(t, favoriteService.AddFavorite(owner.ID, favorited.ID))

	profile, err := userService.GetProfile(owner.ID)
	require.NoError(t, err)
	require.Len(t, profile.Places, 2)

	// The owner is the viewer of their own profile
	for _, place := range profile.Places {
		if place.ID == favorited.ID {
			assert.True(t, place.IsFavorite)
		} else {
			assert.False(t, place.IsFavorite)
		}
	}
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	env, userService, _, _ := setupUserServiceTest(t)
	defer db.CleanupTestDB(env.db)

	profile, err := userService.GetProfile(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, profile)
}
