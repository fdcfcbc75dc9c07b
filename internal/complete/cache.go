package complete

import (
	"sync"
	"time"
)

// DefaultCacheTTL is the validity window of a cached completion result.
const DefaultCacheTTL = 5 * time.Second

// cacheKey identifies one completion computation. Two requests with the
// same key are interchangeable within the TTL window.
type cacheKey struct {
	word    string
	command string
	slot    string
	workDir string
}

type cacheEntry struct {
	candidates []Candidate
	insertedAt time.Time
}

// resultCache is a TTL cache over ranked candidate lists. Expiry is
// checked lazily on read; there is no background eviction. Entries are
// replaced, never merged, on recomputation.
type resultCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[cacheKey]cacheEntry
	now     func() time.Time
}

func newResultCache(ttl time.Duration) *resultCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &resultCache{
		ttl:     ttl,
		entries: make(map[cacheKey]cacheEntry),
		now:     time.Now,
	}
}

func (c *resultCache) get(key cacheKey) ([]Candidate, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.insertedAt) >= c.ttl {
		// Expired; drop it so the map does not accumulate stale keys.
		c.mu.Lock()
		if e, still := c.entries[key]; still && e.insertedAt.Equal(entry.insertedAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return entry.candidates, true
}

func (c *resultCache) set(key cacheKey, candidates []Candidate) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{candidates: candidates, insertedAt: c.now()}
	c.mu.Unlock()
}

func (c *resultCache) clear() {
	c.mu.Lock()
	c.entries = make(map[cacheKey]cacheEntry)
	c.mu.Unlock()
}
