package scheduler

import (
	"os"
	"path/filepath"
	"time"

	"github.com/livreacesso/livre-acesso-backend/config"
	"github.com/livreacesso/livre-acesso-backend/internal/app/repository"
	"github.com/livreacesso/livre-acesso-backend/internal/storage"
	"github.com/livreacesso/livre-acesso-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// PhotoSweeper periodically removes upload files with no matching photo row.
// Photo files are written before the place transaction commits, so a failed
// or crashed creation can leave orphans behind; the sweeper is the cleanup
// side of that documented trade-off. Files younger than the grace period
// are skipped so in-flight creations are never swept.
type PhotoSweeper struct {
	cron        *cron.Cron
	photoRepo   repository.PhotoRepository
	cfg         *config.SweeperConfig
	uploadDir   string
	gracePeriod time.Duration
}

func NewPhotoSweeper(photoRepo repository.PhotoRepository, cfg *config.Config) *PhotoSweeper {
	return &PhotoSweeper{
		cron:        cron.New(),
		photoRepo:   photoRepo,
		cfg:         &cfg.Sweeper,
		uploadDir:   cfg.Storage.UploadDir,
		gracePeriod: cfg.Sweeper.GracePeriod,
	}
}

func (s *PhotoSweeper) Start() error {
	_, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		if err := s.Sweep(); err != nil {
			logger.Error("Scheduled photo sweep failed", err)
		}
	})
	if err != nil {
		logger.Error("Failed to add cron job for photo sweep", err)
		return err
	}

	s.cron.Start()
	logger.Info("Photo sweeper started", map[string]interface{}{
		"schedule":     s.cfg.Schedule,
		"grace_period": s.gracePeriod.String(),
		"upload_dir":   s.uploadDir,
	})
	return nil
}

func (s *PhotoSweeper) Stop() {
	logger.Info("Stopping photo sweeper...")
	s.cron.Stop()
	logger.Info("Photo sweeper stopped")
}

// Sweep runs one pass over the upload directory.
func (s *PhotoSweeper) Sweep() error {
	logger.Info("Starting photo sweep", map[string]interface{}{
		"upload_dir": s.uploadDir,
	})

	entries, err := os.ReadDir(s.uploadDir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("Upload directory does not exist yet, nothing to sweep")
			return nil
		}
		return err
	}

	cutoff := time.Now().Add(-s.gracePeriod)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		url := storage.PlacePublicPath + "/" + entry.Name()
		exists, err := s.photoRepo.ExistsByURL(url)
		if err != nil {
			logger.Error("Failed to check photo row during sweep", err, map[string]interface{}{
				"filename": entry.Name(),
			})
			continue
		}
		if exists {
			continue
		}

		path := filepath.Join(s.uploadDir, entry.Name())
		if err := os.Remove(path); err != nil {
			logger.Warn("Failed to remove orphan photo file", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			continue
		}
		removed++
		logger.Debug("Orphan photo file removed", map[string]interface{}{
			"filename": entry.Name(),
		})
	}

	logger.Info("Photo sweep completed", map[string]interface{}{
		"scanned": len(entries),
		"removed": removed,
	})
	return nil
}
