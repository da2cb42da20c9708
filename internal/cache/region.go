package cache

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/vibe-gaming/geodirectory/internal/config"
	"github.com/vibe-gaming/geodirectory/internal/domain"
	"github.com/vibe-gaming/geodirectory/internal/metrics"
)

const (
	defaultRegionCacheSize = 1000
	defaultRegionCacheTTL  = 180 * time.Second
)

// RegionCache is a size bounded, time expiring id -> region map.
// Regions are stored by value; pointer fields such as Geometry are shared and must not be mutated.
type RegionCache struct {
	lru *expirable.LRU[uuid.UUID, domain.Region]
}

func NewRegionCache(cfg config.RegionCache) *RegionCache {
	size, ttl := cfg.Size, cfg.TTL
	if size <= 0 {
		size = defaultRegionCacheSize
	}
	if ttl <= 0 {
		ttl = defaultRegionCacheTTL
	}
	return &RegionCache{
		lru: expirable.NewLRU[uuid.UUID, domain.Region](size, nil, ttl),
	}
}

func (c *RegionCache) Get(id uuid.UUID) (*domain.Region, bool) {
	r, ok := c.lru.Get(id)
	if !ok {
		metrics.RegionCacheMissesTotal.Inc()
		return nil, false
	}
	metrics.RegionCacheHitsTotal.Inc()
	return &r, true
}

func (c *RegionCache) Add(r *domain.Region) {
	c.lru.Add(r.ID, *r)
}

func (c *RegionCache) Remove(id uuid.UUID) {
	c.lru.Remove(id)
}

func (c *RegionCache) Purge() {
	c.lru.Purge()
}

func (c *RegionCache) Len() int {
	return c.lru.Len()
}
