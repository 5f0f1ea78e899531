package repository

import (
	"strings"

	"github.com/livreacesso/livre-acesso-backend/internal/app/model"
	"github.com/livreacesso/livre-acesso-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlaceFilter carries normalized search criteria. The service layer is
// responsible for lowercasing the term, validating the state code and
// clamping the limit before it reaches the repository.
type PlaceFilter struct {
	Term         string   // lowercased free text, substring match over the text columns
	TermCEP      string   // digit projection of the term, empty unless exactly 8 digits
	CEP          string   // digits only, truncated to 8, substring match
	Category     string   // exact match
	Street       string   // lowercased, substring match
	Number       string   // lowercased, substring match
	Complement   string   // lowercased, substring match
	Neighborhood string   // lowercased, substring match
	City         string   // lowercased, substring match
	State        string   // uppercase two-letter code, exact match
	Features     []string // lowercase keys, union semantics
	Limit        int
	ViewerID     *uint
}

type PlaceRepository interface {
	Create(place *model.Place, features []model.Feature, photos []model.Photo) error
	FindByID(id uint, viewerID *uint) (*model.Place, error)
	Exists(id uint) (bool, error)
	Search(filter PlaceFilter) ([]model.Place, error)
	FindRecentByOwner(ownerID uint, limit int) ([]model.Place, error)
	CountByOwner(ownerID uint) (int64, error)
	// PopulateCounts fills the aggregate review and favorite counts on
	// places loaded elsewhere (e.g. through a favorite or review preload).
	PopulateCounts(places *[]model.Place) error
}

type placeRepository struct {
	db *gorm.DB
}

func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &placeRepository{db: db}
}

// Create persists the place together with its feature links and photo rows
// in one transaction. Photo files are already on storage at this point; the
// sweeper reclaims them if the transaction fails and the rows never land.
func (r *placeRepository) Create(place *model.Place, features []model.Feature, photos []model.Photo) error {
	logger.Debug("Creating place in database", map[string]interface{}{
		"name":     place.Name,
		"city":     place.City,
		"features": len(features),
		"photos":   len(photos),
	})

	tx := r.db.Begin()
	if tx.Error != nil {
		logger.Error("Failed to begin transaction for place creation", tx.Error, map[string]interface{}{
			"name": place.Name,
		})
		return tx.Error
	}

	if err := tx.Omit(clause.Associations).Create(place).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create place in database", err, map[string]interface{}{
			"name": place.Name,
			"city": place.City,
		})
		return err
	}

	if len(features) > 0 {
		links := make([]model.PlaceFeature, len(features))
		for i, feature := range features {
			links[i] = model.PlaceFeature{PlaceID: place.ID, FeatureID: feature.ID}
		}
		if err := tx.Create(&links).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to link features to place", err, map[string]interface{}{
				"place_id": place.ID,
			})
			return err
		}
	}

	if len(photos) > 0 {
		for i := range photos {
			photos[i].PlaceID = place.ID
		}
		if err := tx.Create(&photos).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to create photo rows for place", err, map[string]interface{}{
				"place_id": place.ID,
			})
			return err
		}
		place.Photos = photos
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit place creation", err, map[string]interface{}{
			"name": place.Name,
		})
		return err
	}

	logger.Debug("Place created in database", map[string]interface{}{
		"place_id": place.ID,
		"name":     place.Name,
	})
	return nil
}

func (r *placeRepository) FindByID(id uint, viewerID *uint) (*model.Place, error) {
	logger.Debug("Finding place by ID", map[string]interface{}{
		"place_id": id,
	})

	query := r.db.Model(&model.Place{}).
		Preload("Features.Feature").
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("photos.created_at ASC, photos.id ASC")
		}).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("reviews.created_at DESC, reviews.id DESC")
		}).
		Preload("Reviews.User")
	query = preloadViewerFavorite(query, viewerID)

	var place model.Place
	if err := query.First(&place, id).Error; err != nil {
		logger.Error("Failed to find place", err, map[string]interface{}{
			"place_id": id,
		})
		return nil, err
	}

	places := []model.Place{place}
	if err := r.PopulateCounts(&places); err != nil {
		logger.Error("Failed to populate counts for place", err, map[string]interface{}{
			"place_id": id,
		})
		return nil, err
	}

	logger.Debug("Place found", map[string]interface{}{
		"place_id": places[0].ID,
		"name":     places[0].Name,
	})
	return &places[0], nil
}

func (r *placeRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Place{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		logger.Error("Failed to check place existence", err, map[string]interface{}{
			"place_id": id,
		})
		return false, err
	}
	return count > 0, nil
}

func (r *placeRepository) Search(filter PlaceFilter) ([]model.Place, error) {
	logger.Debug("Searching places", map[string]interface{}{
		"term":     filter.Term,
		"category": filter.Category,
		"city":     filter.City,
		"state":    filter.State,
		"features": filter.Features,
		"limit":    filter.Limit,
	})

	query := r.db.Model(&model.Place{}).
		Preload("Features.Feature").
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("photos.created_at ASC, photos.id ASC")
		}).
		// Ratings only; the list view needs them for the average but not the
		// comments or authors.
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "place_id", "rating")
		})
	query = preloadViewerFavorite(query, filter.ViewerID)

	if filter.Term != "" {
		like := "%" + filter.Term + "%"
		termClause := "LOWER(name) LIKE ? OR LOWER(address) LIKE ? OR LOWER(description) LIKE ? OR LOWER(street) LIKE ? OR LOWER(neighborhood) LIKE ? OR LOWER(city) LIKE ? OR LOWER(state) LIKE ?"
		args := []interface{}{like, like, like, like, like, like, like}
		if filter.TermCEP != "" {
			termClause += " OR cep LIKE ?"
			args = append(args, "%"+filter.TermCEP+"%")
		}
		query = query.Where(termClause, args...)
	}
	if filter.CEP != "" {
		query = query.Where("cep LIKE ?", "%"+filter.CEP+"%")
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Street != "" {
		query = query.Where("LOWER(street) LIKE ?", "%"+filter.Street+"%")
	}
	if filter.Number != "" {
		query = query.Where("LOWER(number) LIKE ?", "%"+filter.Number+"%")
	}
	if filter.Complement != "" {
		query = query.Where("LOWER(complement) LIKE ?", "%"+filter.Complement+"%")
	}
	if filter.Neighborhood != "" {
		query = query.Where("LOWER(neighborhood) LIKE ?", "%"+filter.Neighborhood+"%")
	}
	if filter.City != "" {
		query = query.Where("LOWER(city) LIKE ?", "%"+filter.City+"%")
	}
	if filter.State != "" {
		query = query.Where("state = ?", strings.ToUpper(filter.State))
	}
	if len(filter.Features) > 0 {
		// Union semantics: a place matches when it has at least one of the
		// requested features.
		query = query.Where(
			"EXISTS (SELECT 1 FROM place_features pf JOIN features f ON f.id = pf.feature_id WHERE pf.place_id = places.id AND f.key IN ?)",
			filter.Features,
		)
	}

	var places []model.Place
	if err := query.
		Order("created_at DESC, id DESC").
		Limit(filter.Limit).
		Find(&places).Error; err != nil {
		logger.Error("Failed to search places", err, map[string]interface{}{
			"term": filter.Term,
		})
		return nil, err
	}

	if err := r.PopulateCounts(&places); err != nil {
		logger.Error("Failed to populate counts for search results", err, nil)
		return nil, err
	}

	logger.Debug("Places found", map[string]interface{}{
		"count": len(places),
	})
	return places, nil
}

func (r *placeRepository) FindRecentByOwner(ownerID uint, limit int) ([]model.Place, error) {
	var places []model.Place
	// The owner is the viewer of their own profile, so their favorite rows
	// drive isFavorite on the projected places.
	query := preloadViewerFavorite(r.db.Model(&model.Place{}), &ownerID)
	if err := query.
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("photos.created_at ASC, photos.id ASC")
		}).
		Preload("Reviews").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&places).Error; err != nil {
		logger.Error("Failed to find places by owner", err, map[string]interface{}{
			"owner_id": ownerID,
		})
		return nil, err
	}

	if err := r.PopulateCounts(&places); err != nil {
		return nil, err
	}
	return places, nil
}

func (r *placeRepository) CountByOwner(ownerID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Place{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error; err != nil {
		logger.Error("Failed to count places by owner", err, map[string]interface{}{
			"owner_id": ownerID,
		})
		return 0, err
	}
	return count, nil
}

// preloadViewerFavorite loads only the viewer's own favorite row, so the
// projection can report is_favorite without pulling every favorite in.
func preloadViewerFavorite(query *gorm.DB, viewerID *uint) *gorm.DB {
	if viewerID == nil {
		return query
	}
	id := *viewerID
	return query.Preload("Favorites", func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", id)
	})
}

func (r *placeRepository) PopulateCounts(places *[]model.Place) error {
	if len(*places) == 0 {
		return nil
	}

	placeIDs := make([]uint, len(*places))
	placeIndex := make(map[uint]*model.Place, len(*places))
	for i := range *places {
		place := &(*places)[i]
		placeIDs[i] = place.ID
		placeIndex[place.ID] = place
	}

	type countRow struct {
		PlaceID uint
		Count   int64
	}

	var reviewRows []countRow
	if err := r.db.Model(&model.Review{}).
		Select("place_id, COUNT(*) as count").
		Where("place_id IN ?", placeIDs).
		Group("place_id").
		Scan(&reviewRows).Error; err != nil {
		return err
	}
	for _, row := range reviewRows {
		if place, ok := placeIndex[row.PlaceID]; ok {
			place.ReviewCount = row.Count
		}
	}

	var favoriteRows []countRow
	if err := r.db.Model(&model.Favorite{}).
		Select("place_id, COUNT(*) as count").
		Where("place_id IN ?", placeIDs).
		Group("place_id").
		Scan(&favoriteRows).Error; err != nil {
		return err
	}
	for _, row := range favoriteRows {
		if place, ok := placeIndex[row.PlaceID]; ok {
			place.FavoriteCount = row.Count
		}
	}
	return nil
}
