package repository

import (
	"testing"

	"github.com/livreacesso/livre-acesso-backend/internal/app/model"
	"github.com/livreacesso/livre-acesso-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupReviewTest(t *testing.T) (*gorm.DB, ReviewRepository, *model.User, *model.Place) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	user := createTestUser(t, testDB, "reviewer@example.com")

	place := testPlace("Café Inclusivo")
	require.NoError(t, NewPlaceRepository(testDB).Create(&place, nil, nil))

	return testDB, NewReviewRepository(testDB), user, &place
}

func TestReviewRepository_Create(t *testing.T) {
	testDB, repo, user, place := setupReviewTest(t)
	defer db.CleanupTestDB(testDB)

	comment := "Atendimento excelente"
	review := &model.Review{
		PlaceID: place.ID,
		UserID:  user.ID,
		Rating:  5,
		Comment: &comment,
	}

	err := repo.Create(review)
	require.NoError(t, err)
	assert.NotZero(t, review.ID)
	// Create reloads the row with its author
	assert.Equal(t, user.Email, review.User.Email)
}

func TestReviewRepository_ListByPlace(t *testing.T) {
	testDB, repo, user, place := setupReviewTest(t)
	defer db.CleanupTestDB(testDB)

	for _, rating := range []int{3, 4, 5} {
		require.NoError(t, repo.Create(&model.Review{
			PlaceID: place.ID,
			UserID:  user.ID,
			Rating:  rating,
		}))
	}

	reviews, err := repo.ListByPlace(place.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	// Newest first
	assert.Equal(t, 5, reviews[0].Rating)
	assert.Equal(t, 3, reviews[2].Rating)
	assert.Equal(t, user.Name, reviews[0].User.Name)

	reviews, err = repo.ListByPlace(9999)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestReviewRepository_FindRecentByUser(t *testing.T) {
	testDB, repo, user, place := setupReviewTest(t)
	defer db.CleanupTestDB(testDB)

	for _, rating := range []int{2, 3, 4} {
		require.NoError(t, repo.Create(&model.Review{
			PlaceID: place.ID,
			UserID:  user.ID,
			Rating:  rating,
		}))
	}

	reviews, err := repo.FindRecentByUser(user.ID, 2)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, 4, reviews[0].Rating)
	// Place comes preloaded for the profile projection
	assert.Equal(t, place.Name, reviews[0].Place.Name)

	count, err := repo.CountByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
