package tmdb

import (
	"sync"
	"time"
)

// sweepAt is the entry count at which set first drops expired entries.
const sweepAt = 256

type cacheEntry struct {
	movie   *MovieDetails
	expires time.Time
}

// cache holds movie details by id. Trending and search pages are never
// cached; they go stale too quickly to be useful.
type cache struct {
	mu      sync.RWMutex
	entries map[int64]cacheEntry
	ttl     time.Duration
}

func newCache(ttl time.Duration) *cache {
	return &cache{
		entries: make(map[int64]cacheEntry),
		ttl:     ttl,
	}
}

func (c *cache) get(id int64) (*MovieDetails, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expires) {
		return nil, false
	}
	return entry.movie, true
}

func (c *cache) set(id int64, movie *MovieDetails) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= sweepAt {
		c.pruneLocked()
	}
	c.entries[id] = cacheEntry{
		movie:   movie,
		expires: time.Now().Add(c.ttl),
	}
}

// pruneLocked drops expired entries. Caller must hold c.mu.
func (c *cache) pruneLocked() {
	now := time.Now()
	for id, entry := range c.entries {
		if now.After(entry.expires) {
			delete(c.entries, id)
		}
	}
}
