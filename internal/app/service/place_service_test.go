package service

import (
	"testing"

	"github.com/livreacesso/livre-acesso-backend/internal/app/model"
	"github.com/livreacesso/livre-acesso-backend/internal/app/repository"
	"github.com/livreacesso/livre-acesso-backend/internal/cache"
	"github.com/livreacesso/livre-acesso-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type placeServiceEnv struct {
	db      *gorm.DB
	store   *memoryStore
	service PlaceService
}

func setupPlaceServiceTest(t *testing.T) *placeServiceEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	store := newMemoryStore()
	placeRepo := repository.NewPlaceRepository(testDB)
	featureRepo := repository.NewFeatureRepository(testDB)
	featureService := NewFeatureService(featureRepo, cache.NewFeatureCache(nil, 0))
	photoService := NewPhotoService(store)

	return &placeServiceEnv{
		db:      testDB,
		store:   store,
		service: NewPlaceService(placeRepo, featureService, photoService),
	}
}

func (env *placeServiceEnv) createUser(t *testing.T, email string) *model.User {
	user := &model.User{Email: email, PasswordHash: "hashed", Name: "Maria", Surname: "Silva"}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func validPlaceInput(ownerID uint) PlaceInput {
	return PlaceInput{
		Name:         "Museu de Arte",
		Category:     "cultura",
		Description:  "Museu com acesso adaptado em todos os andares",
		CEP:          "01310-100",
		Street:       "Avenida Paulista",
		Number:       "1578",
		Neighborhood: "Bela Vista",
		City:         "São Paulo",
		State:        "sp",
		FeatureKeys:  []string{"ramp_access", "elevator"},
		Photos:       []PhotoPayload{pngPayload("fachada")},
		OwnerID:      ownerID,
	}
}

func TestPlaceService_CreatePlace(t *testing.T) {
	env := setupPlaceServiceTest(t)
	defer db.CleanupTestDB(env.db)
	owner := env.createUser(t, "owner@example.com")

	view, err := env.service.CreatePlace(validPlaceInput(owner.ID))
	require.NoError(t, err)

	assert.NotZero(t, view.ID)
	assert.Equal(t, "Museu de Arte", view.Name)
	assert.Equal(t, "01310100", view.CEP)
	require.NotNil(t, view.FormattedCEP)
	assert.Equal(t, "01310-100", *view.FormattedCEP)
	assert.Equal(t, "SP", view.State)
	assert.Equal(t, "Avenida Paulista, 1578 | Bela Vista | São Paulo - SP | CEP 01310-100", view.Address)
	assert.Len(t, view.Features, 2)
	assert.Len(t, view.Photos, 1)
	assert.True(t, view.AccessibilityFlags["ramp_access"])
	assert.False(t, view.AccessibilityFlags["subtitles"])
	assert.Len(t, env.store.files, 1)
}

func TestPlaceService_CreatePlace_ProvidedAddressWins(t *testing.T) {
	env := setupPlaceServiceTest(t)
	defer db.CleanupTestDB(env.db)
	owner := env.createUser(t, "owner@example.com")

	input := validPlaceInput(owner.ID)
	input.Address = "Endereço livre informado pelo usuário"

	view, err := env.service.CreatePlace(input)
	require.NoError(t, err)
	assert.Equal(t, "Endereço livre informado pelo usuário", view.Address)
}

func TestPlaceService_CreatePlace_Validation(t *testing.T) {
	env := setupPlaceServiceTest(t)
	defer db.CleanupTestDB(env.db)
	owner := env.createUser(t, "owner@example.com")

	tests := []struct {
		name    string
		mutate  func(*PlaceInput)
		wantErr error
	}{
		{"Missing name", func(i *PlaceInput) { i.Name = "  " }, ErrMissingRequiredFields},
		{"Missing category", func(i *PlaceInput) { i.Category = "" }, ErrMissingRequiredFields},
		{"Missing description", func(i *PlaceInput) { i.Description = "" }, ErrMissingRequiredFields},
		{"Missing street", func(i *PlaceInput) { i.Street = "" }, ErrIncompleteAddress},
		{"Malformed CEP", func(i *PlaceInput) { i.CEP = "1234" }, ErrIncompleteAddress},
		{"State too long", func(i *PlaceInput) { i.State = "SPX" }, ErrInvalidState},
		{"No photos", func(i *PlaceInput) { i.Photos = nil }, ErrNoPhotos},
		{
			"Only empty photo strings",
			func(i *PlaceInput) { i.Photos = []PhotoPayload{{DataURL: ""}} },
			ErrNoPhotos,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validPlaceInput(owner.ID)
			tt.mutate(&input)

			view, err := env.service.CreatePlace(input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, view)
		})
	}

	// None of the rejected attempts may leave files behind
	assert.Empty(t, env.store.files)
}

func TestPlaceService_CreatePlace_RegistersNewFeatureKeys(t *testing.T) {
	env := setupPlaceServiceTest(t)
	defer db.CleanupTestDB(env.db)
	owner := env.createUser(t, "owner@example.com")

	input := validPlaceInput(owner.ID)
	input.FeatureKeys = []string{"Sala_Sensorial, ramp_access"}

	view, err := env.service.CreatePlace(input)
	require.NoError(t, err)
	require.Len(t, view.Features, 2)

	var feature model.Feature
	require.NoError(t, env.db.Where("key = ?", "sala_sensorial").First(&feature).Error)
	assert.Equal(t, "sala_sensorial", feature.Label)
}

func TestPlaceService_CreatePlace_RejectedPhotosRegisterNoFeatures(t *testing.T) {
	env := setupPlaceServiceTest(t)
	defer db.CleanupTestDB(env.db)
	owner := env.createUser(t, "owner@example.com")

	input := validPlaceInput(owner.ID)
	input.FeatureKeys = []string{"brand_new_key"}
	input.Photos = []PhotoPayload{{DataURL: "not-a-data-url"}}

	_, err := env.service.CreatePlace(input)
	require.Error(t, err)

	// A failed creation must not leave the new key in the registry.
	var count int64
	require.NoError(t, env.db.Model(&model.Feature{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, env.store.files)
}

func TestPlaceService_SearchPlaces_CarriesAverageRating(t *testing.T) {
	env := setupPlaceServiceTest(t)
	defer db.CleanupTestDB(env.db)
	owner := env.createUser(t, "owner@example.com")
	reviewer := env.createUser(t, "reviewer@example.com")

	view, err := env.service.CreatePlace(validPlaceInput(owner.ID))
	require.NoError(t, err)

	for _, rating := range []int{4, 5} {
		require.NoError(t, env.db.Create(&model.Review{
			PlaceID: view.ID,
			UserID:  reviewer.ID,
			Rating:  rating,
		}).Error)
	}

	results, err := env.service.SearchPlaces(SearchOptions{Term: "museu"})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, int64(2), results[0].Stats.ReviewCount)
	require.NotNil(t, results[0].Stats.AverageRating)
	assert.InDelta(t, 4.5, *results[0].Stats.AverageRating, 0.001)
}

func TestPlaceService_SearchPlaces(t *testing.T) {
	env := setupPlaceServiceTest(t)
	defer db.CleanupTestDB(env.db)
	owner := env.createUser(t, "owner@example.com")

	museum := validPlaceInput(owner.ID)
	_, err := env.service.CreatePlace(museum)
	require.NoError(t, err)

	park := validPlaceInput(owner.ID)
	park.Name = "Parque Ibirapuera"
	park.Category = "lazer"
	park.CEP = "04094-050"
	park.FeatureKeys = []string{"tactile_floor"}
	_, err = env.service.CreatePlace(park)
	require.NoError(t, err)

	t.Run("By term", func(t *testing.T) {
		views, err := env.service.SearchPlaces(SearchOptions{Term: "MUSEU"})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Museu de Arte", views[0].Name)
	})

	t.Run("Term with full CEP", func(t *testing.T) {
		views, err := env.service.SearchPlaces(SearchOptions{Term: "04094-050"})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Parque Ibirapuera", views[0].Name)
	})

	t.Run("Term with partial digits stays text", func(t *testing.T) {
		// Seven digits is not a CEP, so the term only probes the text
		// columns and finds nothing
		views, err := env.service.SearchPlaces(SearchOptions{Term: "0409405"})
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("By category", func(t *testing.T) {
		views, err := env.service.SearchPlaces(SearchOptions{Category: "lazer"})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Parque Ibirapuera", views[0].Name)
	})

	t.Run("By feature union", func(t *testing.T) {
		views, err := env.service.SearchPlaces(SearchOptions{Features: []string{"tactile_floor,elevator"}})
		require.NoError(t, err)
		assert.Len(t, views, 2)
	})

	t.Run("By formatted CEP", func(t *testing.T) {
		views, err := env.service.SearchPlaces(SearchOptions{CEP: "04.094-050"})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Parque Ibirapuera", views[0].Name)
	})

	t.Run("No criteria lists everything", func(t *testing.T) {
		views, err := env.service.SearchPlaces(SearchOptions{})
		require.NoError(t, err)
		assert.Len(t, views, 2)
	})
}

func TestPlaceService_SearchPlaces_LimitClamp(t *testing.T) {
	env := setupPlaceServiceTest(t)
	defer db.CleanupTestDB(env.db)
	owner := env.createUser(t, "owner@example.com")

	for i := 0; i < 3; i++ {
		input := validPlaceInput(owner.ID)
		_, err := env.service.CreatePlace(input)
		require.NoError(t, err)
	}

	for _, limit := range []int{0, -5, 1000} {
		views, err := env.service.SearchPlaces(SearchOptions{Limit: limit})
		require.NoError(t, err)
		assert.Len(t, views, 3)
	}

	views, err := env.service.SearchPlaces(SearchOptions{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

func TestPlaceService_GetPlaceDetail(t *testing.T) {
	env := setupPlaceServiceTest(t)
	defer db.CleanupTestDB(env.db)
	owner := env.createUser(t, "owner@example.com")

	created, err := env.service.CreatePlace(validPlaceInput(owner.ID))
	require.NoError(t, err)

	detail, err := env.service.GetPlaceDetail(created.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, created.ID, detail.ID)
	assert.False(t, detail.IsFavorite)
	assert.Empty(t, detail.Reviews)

	_, err = env.service.GetPlaceDetail(9999, nil)
	assert.ErrorIs(t, err, ErrPlaceNotFound)
}

func TestPlaceService_PlaceExists(t *testing.T) {
	env := setupPlaceServiceTest(t)
	defer db.CleanupTestDB(env.db)
	owner := env.createUser(t, "owner@example.com")

	created, err := env.service.CreatePlace(validPlaceInput(owner.ID))
	require.NoError(t, err)

	assert.NoError(t, env.service.PlaceExists(created.ID))
	assert.ErrorIs(t, env.service.PlaceExists(9999), ErrPlaceNotFound)
}

func TestBuildFullAddress(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			"Full address",
			BuildFullAddress("Rua A", "10", "Sala 2", "Centro", "São Paulo", "SP", "01001000"),
			"Rua A, 10 | Sala 2 | Centro | São Paulo - SP | CEP 01001-000",
		},
		{
			"No complement",
			BuildFullAddress("Rua A", "10", "", "Centro", "São Paulo", "SP", "01001000"),
			"Rua A, 10 | Centro | São Paulo - SP | CEP 01001-000",
		},
		{
			"Malformed CEP omitted",
			BuildFullAddress("Rua A", "10", "", "Centro", "São Paulo", "SP", "123"),
			"Rua A, 10 | Centro | São Paulo - SP",
		},
		{
			"City only",
			BuildFullAddress("", "", "", "", "Recife", "", ""),
			"Recife",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}
