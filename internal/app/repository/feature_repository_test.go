package repository

import (
	"testing"

	"github.com/livreacesso/livre-acesso-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupFeatureTest(t *testing.T) (*gorm.DB, FeatureRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewFeatureRepository(testDB)
	return testDB, repo
}

func TestFeatureRepository_ResolveOrCreate(t *testing.T) {
	testDB, repo := setupFeatureTest(t)
	defer db.CleanupTestDB(testDB)

	feature, created, err := repo.ResolveOrCreate("ramp_access")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, feature.ID)
	assert.Equal(t, "ramp_access", feature.Key)
	assert.Equal(t, "Rampa de acesso", feature.Label)

	// Second resolve returns the same row without inserting
	again, created, err := repo.ResolveOrCreate("ramp_access")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, feature.ID, again.ID)
}

func TestFeatureRepository_ResolveOrCreate_UnknownKey(t *testing.T) {
	testDB, repo := setupFeatureTest(t)
	defer db.CleanupTestDB(testDB)

	// An unlisted key gets the key itself as label
	feature, created, err := repo.ResolveOrCreate("sensory_room")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "sensory_room", feature.Key)
	assert.Equal(t, "sensory_room", feature.Label)
}

func TestFeatureRepository_FindByKeys(t *testing.T) {
	testDB, repo := setupFeatureTest(t)
	defer db.CleanupTestDB(testDB)

	for _, key := range []string{"ramp_access", "elevator", "tactile_floor"} {
		_, _, err := repo.ResolveOrCreate(key)
		require.NoError(t, err)
	}

	features, err := repo.FindByKeys([]string{"ramp_access", "elevator", "unknown"})
	require.NoError(t, err)
	assert.Len(t, features, 2)

	// Empty input returns no rows and no query
	features, err = repo.FindByKeys(nil)
	require.NoError(t, err)
	assert.Empty(t, features)
}

func TestFeatureRepository_ListAll(t *testing.T) {
	testDB, repo := setupFeatureTest(t)
	defer db.CleanupTestDB(testDB)

	for _, key := range []string{"elevator", "ramp_access"} {
		_, _, err := repo.ResolveOrCreate(key)
		require.NoError(t, err)
	}

	features, err := repo.ListAll()
	require.NoError(t, err)
	require.Len(t, features, 2)
	// Insertion order, not alphabetical
	assert.Equal(t, "elevator", features[0].Key)
	assert.Equal(t, "ramp_access", features[1].Key)
}
