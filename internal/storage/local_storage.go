package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/livreacesso/livre-acesso-backend/pkg/logger"
)

// PlacePublicPath is where place photos are exposed by the static file
// collaborator, regardless of backend.
const PlacePublicPath = "/uploads/places"

// LocalStorage writes photo blobs to a directory on disk, served as static
// content under /uploads/places.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) *LocalStorage {
	return &LocalStorage{dir: dir}
}

// Dir returns the root directory photos are written to
func (s *LocalStorage) Dir() string {
	return s.dir
}

func (s *LocalStorage) Save(filename string, data []byte, contentType string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write photo file: %w", err)
	}

	logger.Debug("Photo file written", map[string]interface{}{
		"path": path,
		"size": len(data),
	})
	return PlacePublicPath + "/" + filename, nil
}

func (s *LocalStorage) Remove(filename string) error {
	path := filepath.Join(s.dir, filepath.Base(filename))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove photo file: %w", err)
	}
	return nil
}
