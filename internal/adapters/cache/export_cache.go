package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

// RistrettoExportCache keeps rendered statistics exports for a short while so repeated
// requests for the same window skip the query and the rendering.
type RistrettoExportCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewExportCache(maxItems int64, ttl time.Duration) (*RistrettoExportCache, error) {
	if maxItems <= 0 {
		maxItems = 16
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create export cache failed: %w", err)
	}
	return &RistrettoExportCache{cache: c, ttl: ttl}, nil
}

func (c *RistrettoExportCache) Get(window time.Duration) ([]byte, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	if v, ok := c.cache.Get(toKey(window)); ok {
		data, ok := v.([]byte)
		return data, ok
	}
	return nil, false
}

func (c *RistrettoExportCache) Set(window time.Duration, data []byte) {
	if c.ttl <= 0 {
		return
	}
	c.cache.SetWithTTL(toKey(window), data, 1, c.ttl)
}

// Clear drops every cached export. Called after new rates are stored.
func (c *RistrettoExportCache) Clear() { c.cache.Clear() }

func (c *RistrettoExportCache) Close() { c.cache.Close() }

func toKey(window time.Duration) string { return "export:" + window.String() }
