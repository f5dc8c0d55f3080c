package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// TTLCache keeps values for a fixed time-to-live. Expired entries are
// treated as misses and removed lazily or by EvictExpired.
type TTLCache[V any] struct {
	mu      sync.RWMutex
	items   map[string]entry[V]
	ttl     time.Duration
	hits    int64
	misses  int64
	evicted int64
	now     func() time.Time
}

func NewTTLCache[V any](ttl time.Duration) *TTLCache[V] {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &TTLCache[V]{
		items: make(map[string]entry[V]),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns the cached value if present and still fresh.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		delete(c.items, key)
		c.misses++
		c.evicted++
		var zero V
		return zero, false
	}
	c.hits++
	return e.value, true
}

// Set stores or replaces a value.
func (c *TTLCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry[V]{value: value, storedAt: c.now()}
}

func (c *TTLCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Purge clears the cache and returns how many entries were dropped.
func (c *TTLCache[V]) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.items)
	c.items = make(map[string]entry[V])
	return n
}

// EvictExpired drops every stale entry and returns how many were removed.
func (c *TTLCache[V]) EvictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.items {
		if now.Sub(e.storedAt) >= c.ttl {
			delete(c.items, key)
			removed++
		}
	}
	c.evicted += int64(removed)
	return removed
}

// GetCacheStats returns statistics about the current cache
func (c *TTLCache[V]) GetCacheStats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return map[string]interface{}{
		"entries":     len(c.items),
		"hits":        c.hits,
		"misses":      c.misses,
		"evicted":     c.evicted,
		"ttl_seconds": c.ttl.Seconds(),
	}
}
