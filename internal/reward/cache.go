package reward

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/gracepath/gracepath-api/internal/domain"
)

// catalogCache caches "active rewards up to level" catalog slices. The unlock
// cascade runs this query on every level-up, and the catalog changes rarely,
// so a small TTL cache removes most of the read load.
type catalogCache struct {
	lru *expirable.LRU[int, []domain.RewardDefinition]
}

func newCatalogCache(size int, ttl time.Duration) *catalogCache {
	return &catalogCache{
		lru: expirable.NewLRU[int, []domain.RewardDefinition](size, nil, ttl),
	}
}

func (c *catalogCache) Get(level int) ([]domain.RewardDefinition, bool) {
	return c.lru.Get(level)
}

func (c *catalogCache) Set(level int, defs []domain.RewardDefinition) {
	c.lru.Add(level, defs)
}

// Purge clears the cache. Called when the catalog is known to have changed.
func (c *catalogCache) Purge() {
	c.lru.Purge()
}
