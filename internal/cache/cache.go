// Package cache provides a thread-safe in-memory key-value store with
// per-entry TTL. Entries are evicted lazily: an expired entry is removed by
// the Get that observes it, not by a background sweep.
package cache

import (
	"sync"
	"time"
)

// entry pairs a stored value with its absolute expiry time.
// Entries are replaced on write, never mutated.
type entry struct {
	value    any
	expireAt time.Time
}

// Cache is a mutex-guarded map of string keys to expiring values.
type Cache struct {
	mu    sync.Mutex
	store map[string]entry
}

// Stats is a point-in-time snapshot of cache occupancy.
// TotalKeys includes entries that have expired but not yet been evicted;
// AliveKeys counts only unexpired entries.
type Stats struct {
	TotalKeys int `json:"totalKeys"`
	AliveKeys int `json:"aliveKeys"`
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		store: make(map[string]entry),
	}
}

// Get returns the value stored under key, if present and unexpired.
// An expired entry is deleted on this access.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.store[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expireAt) {
		delete(c.store, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the given TTL, unconditionally
// overwriting any prior entry.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = entry{
		value:    value,
		expireAt: time.Now().Add(ttl),
	}
}

// Delete removes the entry under key. No-op if absent.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.store, key)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]entry)
}

// Stats returns a snapshot of total and alive key counts.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	alive := 0
	for _, e := range c.store {
		if e.expireAt.After(now) {
			alive++
		}
	}

	return Stats{
		TotalKeys: len(c.store),
		AliveKeys: alive,
	}
}
