// Package cache provides the shared in-memory entity cache.
package cache

import (
	"booktrader/config"
	"booktrader/internal/domain/service"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

const defaultMaxEntries = 512

// entityCache implements service.EntityCache on an LRU map keyed by the
// canonical (entityType, id) key. It is safe for concurrent use but does
// not order racing writes; fetch paths that can race on one key must
// collapse duplicates themselves.
type entityCache struct {
	entries *lru.Cache[string, any]
}

// New is the constructor for the shared entity cache.
func New(cfg *config.Config) (service.EntityCache, error) {
	size := cfg.Cache.MaxEntries
	if size <= 0 {
		size = defaultMaxEntries
	}

	entries, err := lru.New[string, any](size)
	if err != nil {
		return nil, errors.Wrap(err, "create entity cache")
	}

	return &entityCache{entries: entries}, nil
}

// Key computes the canonical cache key for (entityType, id).
func (c *entityCache) Key(entityType, id string) string {
	return entityType + ":" + id
}

// Resolve returns the cached entity for key, if present.
func (c *entityCache) Resolve(key string) (any, bool) {
	return c.entries.Get(key)
}

// Store writes the entity under key, replacing any previous value.
func (c *entityCache) Store(key string, value any) {
	c.entries.Add(key, value)
}

// Delete removes the entity under key.
func (c *entityCache) Delete(key string) {
	c.entries.Remove(key)
}
