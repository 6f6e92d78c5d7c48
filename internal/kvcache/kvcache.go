// Package kvcache provides an in-process key/value cache with per-entry
// TTLs. It is a convenience layer for read-mostly aggregation results,
// not a durability layer: nothing survives a process restart.
package kvcache

import (
	"sync"
	"time"
)

type entry struct {
	value   any
	expires time.Time
}

// Stats reports cumulative hit/miss counters and the current key count.
type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Keys   int    `json:"keys"`
}

// Cache is a mutex-guarded TTL map. Expiry is enforced on read; a
// background sweeper reclaims memory for entries nobody asks for again.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	hits    uint64
	misses  uint64

	done chan struct{}
	once sync.Once
}

// New returns a cache whose sweeper runs every sweepInterval. A zero or
// negative interval disables the sweeper (useful in tests).
func New(sweepInterval time.Duration) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		done:    make(chan struct{}),
	}
	if sweepInterval > 0 {
		go c.sweep(sweepInterval)
	}
	return c
}

// Get returns the value stored under key, or false when the key is
// absent or its TTL has elapsed.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(e.expires) {
		c.mu.Lock()
		c.misses++
		c.mu.Unlock()
		return nil, false
	}

	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
	return e.value, true
}

// Set stores value under key for ttl. A zero or negative ttl makes the
// entry immediately expired.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expires: time.Now().Add(ttl)}
}

// Delete removes key. Removing an absent key is a no-op.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Flush removes every entry. Counters are retained.
func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Keys returns the currently stored keys, including entries that have
// expired but not yet been swept.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{Hits: c.hits, Misses: c.misses, Keys: len(c.entries)}
}

// Close stops the sweeper goroutine. Safe to call more than once.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.done) })
}

func (c *Cache) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case now := <-ticker.C:
			c.mu.Lock()
			for k, e := range c.entries {
				if now.After(e.expires) {
					delete(c.entries, k)
				}
			}
			c.mu.Unlock()
		}
	}
}
