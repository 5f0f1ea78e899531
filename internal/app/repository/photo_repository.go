package repository

import (
	"github.com/livreacesso/livre-acesso-backend/internal/app/model"
	"github.com/livreacesso/livre-acesso-backend/pkg/logger"
	"gorm.io/gorm"
)

type PhotoRepository interface {
	// ExistsByURL reports whether any photo row references url. The sweeper
	// uses this to decide whether a file on storage is orphaned.
	ExistsByURL(url string) (bool, error)
	ListURLs() ([]string, error)
}

type photoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) ExistsByURL(url string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Photo{}).
		Where("url = ?", url).
		Count(&count).Error; err != nil {
		logger.Error("Failed to check photo by URL", err, map[string]interface{}{
			"url": url,
		})
		return false, err
	}
	return count > 0, nil
}

func (r *photoRepository) ListURLs() ([]string, error) {
	var urls []string
	if err := r.db.Model(&model.Photo{}).
		Pluck("url", &urls).Error; err != nil {
		logger.Error("Failed to list photo URLs", err)
		return nil, err
	}
	return urls, nil
}
