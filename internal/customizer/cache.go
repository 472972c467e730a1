package customizer

import (
	"sync"
	"time"
)

// catalogCache holds one fetched service catalog for a short TTL.
type catalogCache struct {
	mu        sync.RWMutex
	ttl       time.Duration
	services  []CatalogService
	fetchedAt time.Time
}

func newCatalogCache(ttl time.Duration) *catalogCache {
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	return &catalogCache{ttl: ttl}
}

func (c *catalogCache) get() ([]CatalogService, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.services == nil || time.Since(c.fetchedAt) > c.ttl {
		return nil, false
	}

	return c.services, true
}

func (c *catalogCache) set(services []CatalogService) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.services = services
	c.fetchedAt = time.Now()
}

func (c *catalogCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.services = nil
}
