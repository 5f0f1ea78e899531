package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/livreacesso/livre-acesso-backend/internal/app/model"
	"github.com/livreacesso/livre-acesso-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const (
	featureListKey = "features:list"
	cacheOpTimeout = 2 * time.Second
)

// FeatureCache caches the feature registry listing. The registry only grows
// (keys are created lazily, labels never change), so a short TTL plus
// invalidation on key creation is enough.
type FeatureCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFeatureCache returns a cache over client. A nil client produces a
// no-op cache so call sites never branch on Redis availability.
func NewFeatureCache(client *redis.Client, ttl time.Duration) *FeatureCache {
	return &FeatureCache{client: client, ttl: ttl}
}

// Get returns the cached feature list, or (nil, false) on miss
func (c *FeatureCache) Get() ([]model.Feature, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	payload, err := c.client.Get(ctx, featureListKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Warn("Feature cache read failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, false
	}

	var features []model.Feature
	if err := json.Unmarshal(payload, &features); err != nil {
		logger.Warn("Feature cache payload corrupted, dropping", map[string]interface{}{
			"error": err.Error(),
		})
		c.Invalidate()
		return nil, false
	}
	return features, true
}

// Set stores the feature list with the configured TTL
func (c *FeatureCache) Set(features []model.Feature) {
	if c == nil || c.client == nil {
		return
	}

	payload, err := json.Marshal(features)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()
	if err := c.client.Set(ctx, featureListKey, payload, c.ttl).Err(); err != nil {
		logger.Warn("Feature cache write failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// Invalidate drops the cached listing, called when a new key is registered
func (c *FeatureCache) Invalidate() {
	if c == nil || c.client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	if err := c.client.Del(ctx, featureListKey).Err(); err != nil {
		logger.Warn("Feature cache invalidation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
