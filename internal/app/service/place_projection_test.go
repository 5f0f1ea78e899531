package service

import (
	"testing"

	"github.com/livreacesso/livre-acesso-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    *float64
	}{
		{"No reviews", nil, nil},
		{"Single review", []int{4}, ptr(4.0)},
		{"Halfway", []int{4, 5}, ptr(4.5)},
		{"Rounded to two decimals", []int{1, 1, 2}, ptr(1.33)},
		{"Rounds half up", []int{1, 2}, ptr(1.5)},
		{"Repeating third", []int{5, 5, 4}, ptr(4.67)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews := make([]model.Review, len(tt.ratings))
			for i, rating := range tt.ratings {
				reviews[i] = model.Review{Rating: rating}
			}

			got := averageRating(reviews)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.InDelta(t, *tt.want, *got, 0.0001)
			}
		})
	}
}

func ptr(f float64) *float64 {
	return &f
}

func TestToListView_FeatureFallback(t *testing.T) {
	// Without relation rows the flag map drives the feature list, in
	// canonical order
	place := &model.Place{
		ID:   1,
		Name: "Mercado",
		AccessibilityFlags: model.BoolMap{
			"elevator":    true,
			"ramp_access": true,
			"subtitles":   false,
		},
	}

	view := ToListView(place, nil)
	require.Len(t, view.Features, 2)
	assert.Equal(t, "ramp_access", view.Features[0].Key)
	assert.Equal(t, "Rampa de acesso", view.Features[0].Label)
	assert.Equal(t, "elevator", view.Features[1].Key)
}

func TestToListView_FeaturesPreferRelation(t *testing.T) {
	place := &model.Place{
		ID: 1,
		Features: []model.PlaceFeature{
			{Feature: model.Feature{Key: "quiet_room", Label: "quiet_room"}},
		},
		AccessibilityFlags: model.BoolMap{"elevator": true},
	}

	view := ToListView(place, nil)
	require.Len(t, view.Features, 1)
	assert.Equal(t, "quiet_room", view.Features[0].Key)
}

func TestToListView_Stats(t *testing.T) {
	place := &model.Place{
		ID:            1,
		ReviewCount:   7,
		FavoriteCount: 3,
		Reviews:       []model.Review{{Rating: 4}, {Rating: 5}},
	}

	view := ToListView(place, nil)
	// The aggregate wins over the loaded slice length
	assert.Equal(t, int64(7), view.Stats.ReviewCount)
	assert.Equal(t, int64(3), view.Stats.FavoriteCount)
	require.NotNil(t, view.Stats.AverageRating)
	assert.InDelta(t, 4.5, *view.Stats.AverageRating, 0.0001)

	// Without the aggregate the loaded reviews stand in
	place.ReviewCount = 0
	view = ToListView(place, nil)
	assert.Equal(t, int64(2), view.Stats.ReviewCount)
}

func TestToListView_IsFavorite(t *testing.T) {
	viewer := uint(7)
	place := &model.Place{
		ID:        1,
		Favorites: []model.Favorite{{UserID: 7, PlaceID: 1}},
	}

	assert.False(t, ToListView(place, nil).IsFavorite)
	assert.True(t, ToListView(place, &viewer).IsFavorite)

	other := uint(8)
	assert.False(t, ToListView(place, &other).IsFavorite)
}

func TestToListView_FormattedCEP(t *testing.T) {
	place := &model.Place{ID: 1, CEP: "01001000"}
	view := ToListView(place, nil)
	require.NotNil(t, view.FormattedCEP)
	assert.Equal(t, "01001-000", *view.FormattedCEP)

	place.CEP = ""
	view = ToListView(place, nil)
	assert.Nil(t, view.FormattedCEP)
}

func TestProjectReview(t *testing.T) {
	comment := "Ótimo espaço"
	review := &model.Review{
		ID:      3,
		Rating:  5,
		Comment: &comment,
		User: model.User{
			ID:      2,
			Name:    "Ana",
			Surname: "Lima",
			Email:   "ana@example.com",
		},
	}

	view := ProjectReview(review)
	assert.Equal(t, 5, view.Rating)
	require.NotNil(t, view.User)
	assert.Equal(t, "Ana", view.User.Name)

	// Author not loaded: no user block instead of a zero-value one
	review.User = model.User{}
	view = ProjectReview(review)
	assert.Nil(t, view.User)
}
