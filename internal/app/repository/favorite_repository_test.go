package repository

import (
	"testing"

	"github.com/livreacesso/livre-acesso-backend/internal/app/model"
	"github.com/livreacesso/livre-acesso-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupFavoriteTest(t *testing.T) (*gorm.DB, FavoriteRepository, *model.User, *model.Place) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	user := createTestUser(t, testDB, "favorites@example.com")

	place := testPlace("Praça Acessível")
	require.NoError(t, NewPlaceRepository(testDB).Create(&place, nil, nil))

	return testDB, NewFavoriteRepository(testDB), user, &place
}

func TestFavoriteRepository_Add(t *testing.T) {
	testDB, repo, user, place := setupFavoriteTest(t)
	defer db.CleanupTestDB(testDB)

	inserted, err := repo.Add(user.ID, place.ID)
	require.NoError(t, err)
	assert.True(t, inserted)

	// Adding again is a no-op, not an error
	inserted, err = repo.Add(user.ID, place.ID)
	require.NoError(t, err)
	assert.False(t, inserted)

	exists, err := repo.Exists(user.ID, place.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFavoriteRepository_Remove(t *testing.T) {
	testDB, repo, user, place := setupFavoriteTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := repo.Add(user.ID, place.ID)
	require.NoError(t, err)

	removed, err := repo.Remove(user.ID, place.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	// Removing an absent favorite succeeds but reports no row
	removed, err = repo.Remove(user.ID, place.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	exists, err := repo.Exists(user.ID, place.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFavoriteRepository_FindRecentByUser(t *testing.T) {
	testDB, repo, user, place := setupFavoriteTest(t)
	defer db.CleanupTestDB(testDB)

	second := testPlace("Mercado Central")
	require.NoError(t, NewPlaceRepository(testDB).Create(&second, nil, nil))

	_, err := repo.Add(user.ID, place.ID)
	require.NoError(t, err)
	_, err = repo.Add(user.ID, second.ID)
	require.NoError(t, err)

	favorites, err := repo.FindRecentByUser(user.ID, 5)
	require.NoError(t, err)
	require.Len(t, favorites, 2)
	// Place comes preloaded for the profile projection
	assert.NotZero(t, favorites[0].Place.ID)

	count, err := repo.CountByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
