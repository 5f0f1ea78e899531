package service

import (
	"strings"

	"github.com/livreacesso/livre-acesso-backend/internal/app/model"
	"github.com/livreacesso/livre-acesso-backend/internal/app/repository"
	"github.com/livreacesso/livre-acesso-backend/internal/cache"
	"github.com/livreacesso/livre-acesso-backend/pkg/logger"
)

// ParseFeatureKeys normalizes raw feature inputs into a deduplicated list of
// lowercase keys. Each input value may itself be a comma-joined list.
func ParseFeatureKeys(raw []string) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, value := range raw {
		for _, part := range strings.Split(value, ",") {
			key := strings.ToLower(strings.TrimSpace(part))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys
}

type FeatureService interface {
	// ListFeatures returns every registered feature, cached between calls.
	ListFeatures() ([]model.Feature, error)
	// ResolveKeys maps keys to feature rows, registering unknown keys on the
	// fly. Canonical keys get their known label; anything else uses the key
	// itself as label.
	ResolveKeys(keys []string) ([]model.Feature, error)
}

type featureService struct {
	featureRepo repository.FeatureRepository
	cache       *cache.FeatureCache
}

func NewFeatureService(featureRepo repository.FeatureRepository, featureCache *cache.FeatureCache) FeatureService {
	return &featureService{
		featureRepo: featureRepo,
		cache:       featureCache,
	}
}

func (s *featureService) ListFeatures() ([]model.Feature, error) {
	if features, ok := s.cache.Get(); ok {
		logger.Debug("Features served from cache", map[string]interface{}{
			"count": len(features),
		})
		return features, nil
	}

	features, err := s.featureRepo.ListAll()
	if err != nil {
		logger.Error("Failed to list features", err)
		return nil, err
	}

	s.cache.Set(features)
	return features, nil
}

func (s *featureService) ResolveKeys(keys []string) ([]model.Feature, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	features := make([]model.Feature, 0, len(keys))
	anyCreated := false
	for _, key := range keys {
		feature, created, err := s.featureRepo.ResolveOrCreate(key)
		if err != nil {
			logger.Error("Failed to resolve feature key", err, map[string]interface{}{
				"key": key,
			})
			return nil, err
		}
		features = append(features, *feature)
		anyCreated = anyCreated || created
	}

	if anyCreated {
		s.cache.Invalidate()
	}

	logger.Debug("Feature keys resolved", map[string]interface{}{
		"count": len(features),
	})
	return features, nil
}
