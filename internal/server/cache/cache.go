// Package cache keeps recent research results in memory so repeated lookups
// of the same strain names do not hit the LLM again.
// It uses patrickmn/go-cache for TTL-based expiry.
package cache

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/agentstation/strainmap/pkg/strains"
)

// Cache wraps go-cache with typed accessors for research results.
type Cache struct {
	store *gocache.Cache
}

// New creates a new cache with the given TTL and cleanup interval.
func New(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// ResearchKey builds the cache key for a list of names. Order matters,
// case does not.
func ResearchKey(names []string) string {
	return "research:" + strings.ToLower(strings.Join(names, "\n"))
}

// Research returns cached profiles for names.
func (c *Cache) Research(names []string) ([]strains.Profile, bool) {
	v, found := c.store.Get(ResearchKey(names))
	if !found {
		return nil, false
	}
	profiles, ok := v.([]strains.Profile)
	return profiles, ok
}

// SetResearch stores profiles for names with the default TTL.
func (c *Cache) SetResearch(names []string, profiles []strains.Profile) {
	c.store.Set(ResearchKey(names), profiles, gocache.DefaultExpiration)
}

// Clear removes all items from the cache.
func (c *Cache) Clear() {
	c.store.Flush()
}

// ItemCount returns the number of items in the cache.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}
