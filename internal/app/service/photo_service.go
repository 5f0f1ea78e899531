package service

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/livreacesso/livre-acesso-backend/internal/app/model"
	apperrors "github.com/livreacesso/livre-acesso-backend/internal/errors"
	"github.com/livreacesso/livre-acesso-backend/internal/storage"
	"github.com/livreacesso/livre-acesso-backend/pkg/logger"
)

const (
	// MaxPhotosPerPlace caps how many payloads of a batch are processed.
	// Items past the cap are silently dropped.
	MaxPhotosPerPlace = 5
	// MaxPhotoBytes caps the decoded size of a single photo.
	MaxPhotoBytes = 5 * 1024 * 1024
)

var dataURLPattern = regexp.MustCompile(`(?i)^data:([^;]+);base64,(.+)$`)

var mimeExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// PhotoPayload is one submitted photo. Clients send either a bare data URL
// string or an object carrying the data URL under one of a few field names.
// Empty strings and nulls are dropped from the batch without error; an
// object that carries no recognized field fails the batch.
type PhotoPayload struct {
	DataURL string
	object  bool
}

func (p *PhotoPayload) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err == nil {
		if raw != nil {
			p.DataURL = *raw
		}
		return nil
	}

	var alias struct {
		DataURL string `json:"dataUrl"`
		Base64  string `json:"base64"`
		URL     string `json:"url"`
	}
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	p.object = true

	switch {
	case alias.DataURL != "":
		p.DataURL = alias.DataURL
	case alias.Base64 != "":
		p.DataURL = alias.Base64
	default:
		p.DataURL = alias.URL
	}
	return nil
}

// PhotoError classifies a rejected photo payload with a stable reason code.
type PhotoError struct {
	Reason string
	Index  int
}

func (e *PhotoError) Error() string {
	return fmt.Sprintf("photo %d rejected: %s", e.Index, e.Reason)
}

// decodedPhoto is a validated payload not yet written to storage.
type decodedPhoto struct {
	data        []byte
	contentType string
	extension   string
}

type PhotoService interface {
	// Ingest validates and persists a photo batch. All payloads are decoded
	// and validated before the first byte is written; the first invalid item
	// rejects the whole batch with a *PhotoError and nothing is stored.
	Ingest(payloads []PhotoPayload) ([]model.Photo, error)
	// Discard removes previously ingested files, tolerating missing ones.
	Discard(photos []model.Photo)
}

type photoService struct {
	store storage.PhotoStore
}

func NewPhotoService(store storage.PhotoStore) PhotoService {
	return &photoService{store: store}
}

func (s *photoService) Ingest(payloads []PhotoPayload) ([]model.Photo, error) {
	limited := make([]PhotoPayload, 0, MaxPhotosPerPlace)
	for _, payload := range payloads {
		if payload.DataURL == "" && !payload.object {
			continue
		}
		limited = append(limited, payload)
		if len(limited) == MaxPhotosPerPlace {
			break
		}
	}

	logger.Debug("Ingesting photo batch", map[string]interface{}{
		"submitted": len(payloads),
		"processed": len(limited),
	})

	decoded := make([]decodedPhoto, 0, len(limited))
	for i, payload := range limited {
		photo, err := decodePayload(payload, i)
		if err != nil {
			logger.Warn("Photo payload rejected", map[string]interface{}{
				"index":  i,
				"reason": err.Reason,
			})
			return nil, err
		}
		decoded = append(decoded, *photo)
	}

	photos := make([]model.Photo, 0, len(decoded))
	for i, photo := range decoded {
		filename := fmt.Sprintf("%d-%s.%s", time.Now().UnixMilli(), uuid.NewString(), photo.extension)
		url, err := s.store.Save(filename, photo.data, photo.contentType)
		if err != nil {
			logger.Error("Failed to persist photo", err, map[string]interface{}{
				"index":    i,
				"filename": filename,
			})
			s.Discard(photos)
			return nil, err
		}
		photos = append(photos, model.Photo{URL: url})
	}

	logger.Info("Photo batch ingested", map[string]interface{}{
		"count": len(photos),
	})
	return photos, nil
}

func (s *photoService) Discard(photos []model.Photo) {
	for _, photo := range photos {
		filename := photo.URL
		if idx := strings.LastIndex(filename, "/"); idx >= 0 {
			filename = filename[idx+1:]
		}
		if filename == "" {
			continue
		}
		if err := s.store.Remove(filename); err != nil {
			logger.Warn("Failed to discard photo file", map[string]interface{}{
				"filename": filename,
				"error":    err.Error(),
			})
		}
	}
}

func decodePayload(payload PhotoPayload, index int) (*decodedPhoto, *PhotoError) {
	if payload.DataURL == "" {
		return nil, &PhotoError{Reason: apperrors.PhotoMissingData, Index: index}
	}

	match := dataURLPattern.FindStringSubmatch(payload.DataURL)
	if match == nil {
		return nil, &PhotoError{Reason: apperrors.PhotoInvalidURL, Index: index}
	}

	mime := strings.ToLower(match[1])
	extension, ok := mimeExtensions[mime]
	if !ok {
		return nil, &PhotoError{Reason: apperrors.PhotoBadMime, Index: index}
	}

	encoded := stripWhitespace(match[2])
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		// Retry without padding: some clients strip trailing '='.
		data, err = base64.RawStdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, &PhotoError{Reason: apperrors.PhotoInvalidURL, Index: index}
		}
	}
	if len(data) == 0 {
		return nil, &PhotoError{Reason: apperrors.PhotoEmpty, Index: index}
	}
	if len(data) > MaxPhotoBytes {
		return nil, &PhotoError{Reason: apperrors.PhotoTooLarge, Index: index}
	}

	return &decodedPhoto{data: data, contentType: mime, extension: extension}, nil
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			return -1
		}
		return r
	}, s)
}
