package service

import (
	"math"
	"time"

	"github.com/livreacesso/livre-acesso-backend/internal/app/model"
	"github.com/livreacesso/livre-acesso-backend/pkg/util"
)

type FeatureView struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type PhotoView struct {
	ID  uint   `json:"id"`
	URL string `json:"url"`
}

// PlaceStats aggregates review and favorite information for one place.
// AverageRating is nil when the place has no ratings, never 0.
type PlaceStats struct {
	ReviewCount   int64    `json:"reviewCount"`
	FavoriteCount int64    `json:"favoriteCount"`
	AverageRating *float64 `json:"averageRating"`
}

type ReviewAuthor struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
}

type ReviewView struct {
	ID        uint          `json:"id"`
	Rating    int           `json:"rating"`
	Comment   *string       `json:"comment"`
	CreatedAt time.Time     `json:"createdAt"`
	User      *ReviewAuthor `json:"user"`
}

type PlaceView struct {
	ID                 uint          `json:"id"`
	Name               string        `json:"name"`
	Category           string        `json:"category"`
	Address            string        `json:"address"`
	CEP                string        `json:"cep"`
	FormattedCEP       *string       `json:"formattedCep"`
	Street             string        `json:"street"`
	Number             string        `json:"number"`
	Complement         string        `json:"complement"`
	Neighborhood       string        `json:"neighborhood"`
	City               string        `json:"city"`
	State              string        `json:"state"`
	AccessibilityFlags model.BoolMap `json:"accessibilityFlags"`
	Phone              string        `json:"phone"`
	Website            string        `json:"website"`
	Description        string        `json:"description"`
	Lat                *float64      `json:"lat"`
	Lng                *float64      `json:"lng"`
	CreatedAt          time.Time     `json:"createdAt"`
	Features           []FeatureView `json:"features"`
	Photos             []PhotoView   `json:"photos"`
	Stats              PlaceStats    `json:"stats"`
	IsFavorite         bool          `json:"isFavorite"`
}

type PlaceDetailView struct {
	PlaceView
	Reviews []ReviewView `json:"reviews"`
}

// ToListView projects a place with loaded relations into the list shape.
// viewerID only affects isFavorite; it is never required.
func ToListView(place *model.Place, viewerID *uint) PlaceView {
	var formattedCEP *string
	if place.CEP != "" {
		if formatted := util.FormatCEP(place.CEP); formatted != "" {
			formattedCEP = &formatted
		}
	}

	return PlaceView{
		ID:                 place.ID,
		Name:               place.Name,
		Category:           place.Category,
		Address:            place.Address,
		CEP:                place.CEP,
		FormattedCEP:       formattedCEP,
		Street:             place.Street,
		Number:             place.Number,
		Complement:         place.Complement,
		Neighborhood:       place.Neighborhood,
		City:               place.City,
		State:              place.State,
		AccessibilityFlags: place.AccessibilityFlags,
		Phone:              place.Phone,
		Website:            place.Website,
		Description:        place.Description,
		Lat:                place.Latitude,
		Lng:                place.Longitude,
		CreatedAt:          place.CreatedAt,
		Features:           projectFeatures(place),
		Photos:             projectPhotos(place.Photos),
		Stats: PlaceStats{
			ReviewCount:   projectReviewCount(place),
			FavoriteCount: place.FavoriteCount,
			AverageRating: averageRating(place.Reviews),
		},
		IsFavorite: isFavorite(place.Favorites, viewerID),
	}
}

// ToDetailView is the list shape plus the full review list, newest first,
// with redacted author projections.
func ToDetailView(place *model.Place, viewerID *uint) PlaceDetailView {
	reviews := make([]ReviewView, 0, len(place.Reviews))
	for _, review := range place.Reviews {
		reviews = append(reviews, ProjectReview(&review))
	}

	return PlaceDetailView{
		PlaceView: ToListView(place, viewerID),
		Reviews:   reviews,
	}
}

// ProjectReview redacts the author down to its public fields.
func ProjectReview(review *model.Review) ReviewView {
	view := ReviewView{
		ID:        review.ID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
	if review.User.ID != 0 {
		view.User = &ReviewAuthor{
			ID:      review.User.ID,
			Name:    review.User.Name,
			Surname: review.User.Surname,
			Email:   review.User.Email,
		}
	}
	return view
}

// projectFeatures prefers the relational rows and falls back to the
// denormalized flag map, in canonical order, for query shapes that skip
// the join.
func projectFeatures(place *model.Place) []FeatureView {
	if len(place.Features) > 0 {
		features := make([]FeatureView, 0, len(place.Features))
		for _, link := range place.Features {
			if link.Feature.Key == "" {
				continue
			}
			features = append(features, FeatureView{
				Key:   link.Feature.Key,
				Label: link.Feature.Label,
			})
		}
		return features
	}

	features := make([]FeatureView, 0, len(place.AccessibilityFlags))
	for _, key := range model.FeatureKeys() {
		if place.AccessibilityFlags[key] {
			features = append(features, FeatureView{
				Key:   key,
				Label: model.FeatureLabel(key),
			})
		}
	}
	return features
}

func projectPhotos(photos []model.Photo) []PhotoView {
	views := make([]PhotoView, 0, len(photos))
	for _, photo := range photos {
		views = append(views, PhotoView{ID: photo.ID, URL: photo.URL})
	}
	return views
}

// projectReviewCount prefers the precomputed aggregate; when the query did
// not populate it, the length of the loaded review slice stands in.
func projectReviewCount(place *model.Place) int64 {
	if place.ReviewCount > 0 {
		return place.ReviewCount
	}
	return int64(len(place.Reviews))
}

// averageRating is the arithmetic mean rounded half away from zero to two
// decimals, or nil when there are no ratings.
func averageRating(reviews []model.Review) *float64 {
	if len(reviews) == 0 {
		return nil
	}

	var total int
	for _, review := range reviews {
		total += review.Rating
	}
	avg := math.Round(float64(total)/float64(len(reviews))*100) / 100
	return &avg
}

func isFavorite(favorites []model.Favorite, viewerID *uint) bool {
	if viewerID == nil {
		return false
	}
	for _, favorite := range favorites {
		if favorite.UserID == *viewerID {
			return true
		}
	}
	return false
}
