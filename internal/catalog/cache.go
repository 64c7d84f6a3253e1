// internal/catalog/cache.go
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"community-assist/internal/common/logger"
	"community-assist/internal/common/metrics"
	"community-assist/internal/models"
)

const snapshotKey = "catalog:snapshot"

// SnapshotCache keeps the most recent catalog snapshot in Redis so
// repeated finder requests do not re-read the whole catalog. The cache
// holds catalog data only, never anything profile-derived.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewSnapshotCache builds a cache with the given TTL.
func NewSnapshotCache(client *redis.Client, ttl time.Duration, log logger.Logger) *SnapshotCache {
	return &SnapshotCache{
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "snapshot-cache"}),
	}
}

// Get returns the cached snapshot, or nil on a miss. A corrupt cached
// value is treated as a miss so the caller falls through to the store.
func (c *SnapshotCache) Get(ctx context.Context) (*models.Snapshot, error) {
	val, err := c.client.Get(ctx, snapshotKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		c.logger.Warn("discarding corrupt cached snapshot", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, nil
	}
	metrics.SnapshotLoads.WithLabelValues("cache").Inc()
	return &snap, nil
}

// Set stores the snapshot with the cache TTL.
func (c *SnapshotCache) Set(ctx context.Context, snap *models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, snapshotKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Loader produces a snapshot from the store through the cache: cache hit
// wins, otherwise the store is read and the result cached best-effort.
type Loader struct {
	store  *Store
	cache  *SnapshotCache
	logger logger.Logger
}

// NewLoader builds a Loader; cache may be nil to always hit the store.
func NewLoader(store *Store, cache *SnapshotCache, log logger.Logger) *Loader {
	return &Loader{store: store, cache: cache, logger: log}
}

// Load returns a catalog snapshot for one matching request.
func (l *Loader) Load(ctx context.Context, fplYear int) (*models.Snapshot, error) {
	if l.cache != nil {
		snap, err := l.cache.Get(ctx)
		if err != nil {
			l.logger.Warn("snapshot cache unavailable", map[string]interface{}{
				"error": err.Error(),
			})
		} else if snap != nil {
			return snap, nil
		}
	}

	snap, err := l.store.LoadSnapshot(ctx, fplYear)
	if err != nil {
		return nil, err
	}
	metrics.SnapshotLoads.WithLabelValues("store").Inc()

	if l.cache != nil {
		if err := l.cache.Set(ctx, snap); err != nil {
			l.logger.Warn("snapshot cache write failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return snap, nil
}
