// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package cache

import (
	"sync"
	"time"

	"github.com/pmilosz/hitparade/internal/metrics"
)

// Entry represents a cached list response with expiration
type Entry struct {
	Payload   []byte
	ExpiresAt time.Time
}

// ListCache provides a thread-safe in-memory cache for serialized list
// responses with TTL support. Payloads are stored as raw bytes so cache
// hits replay the original response byte-for-byte.
//
// The cache performs no background work on its own; expired entries are
// removed lazily on Get and in bulk by Cleanup, which the supervisor's
// janitor service calls periodically.
type ListCache struct {
	mu         sync.RWMutex
	entries    map[string]Entry
	ttl        time.Duration
	maxEntries int
	stats      Stats
}

// Stats tracks cache performance metrics
type Stats struct {
	mu          sync.RWMutex
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// New creates a new thread-safe in-memory list cache.
//
// Parameters:
//   - ttl: Default expiration duration for cache entries (e.g., 5 * time.Minute)
//   - maxEntries: Upper bound on stored entries, 0 = unlimited. When full,
//     the entry closest to expiry is evicted to make room.
//
// Thread Safety:
//   - Safe for concurrent access from multiple goroutines
//   - Uses sync.RWMutex for read/write locking
//
// Example:
//
//	c := cache.New(5*time.Minute, 10000)
//	c.Set(key, payload)
//	if data, ok := c.Get(key); ok {
//	    // Replay cached payload
//	}
func New(ttl time.Duration, maxEntries int) *ListCache {
	return &ListCache{
		entries:    make(map[string]Entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		stats: Stats{
			LastCleanup: time.Now(),
		},
	}
}

// Get retrieves a cached payload by key with expiration checking.
//
// Behavior:
//   - Returns (nil, false) if key doesn't exist
//   - Returns (nil, false) if entry has expired (entry is deleted)
//   - Returns (payload, true) if entry is valid
//
// Statistics:
//   - Increments Hits counter on successful retrieval
//   - Increments Misses counter on miss or expiration
//   - Increments Evictions counter when removing expired entry
func (c *ListCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		// Entry expired, remove it
		c.mu.Lock()
		delete(c.entries, key)
		c.syncSizeLocked()
		c.mu.Unlock()
		c.recordMiss()
		c.recordEviction()
		return nil, false
	}

	c.recordHit()
	return entry.Payload, true
}

// Set stores a payload with the default TTL configured at cache creation.
// Overwrites any existing entry with the same key.
func (c *ListCache) Set(key string, payload []byte) {
	c.SetWithTTL(key, payload, c.ttl)
}

// SetWithTTL stores a payload with a custom TTL.
func (c *ListCache) SetWithTTL(key string, payload []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		if _, exists := c.entries[key]; !exists {
			c.evictSoonestLocked()
		}
	}

	c.entries[key] = Entry{
		Payload:   payload,
		ExpiresAt: time.Now().Add(ttl),
	}
	c.syncSizeLocked()
}

// evictSoonestLocked removes the entry closest to expiry to make room.
// Caller must hold the write lock.
func (c *ListCache) evictSoonestLocked() {
	var victim string
	var soonest time.Time
	for key, entry := range c.entries {
		if victim == "" || entry.ExpiresAt.Before(soonest) {
			victim = key
			soonest = entry.ExpiresAt
		}
	}
	if victim != "" {
		delete(c.entries, victim)
		c.recordEviction()
	}
}

// Delete removes a specific cache entry by key.
// No-op if the key doesn't exist.
func (c *ListCache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.syncSizeLocked()
	c.mu.Unlock()

	c.recordEviction()
}

// DeleteByPrefix removes every entry whose key starts with prefix and
// returns the number of entries removed. This is the primitive behind
// entity-change invalidation: each list view owns a key prefix, and a
// mutation purges the whole prefix so no stale page survives.
//
// Example:
//
//	purged := c.DeleteByPrefix("HitList:")
func (c *ListCache) DeleteByPrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	purged := 0
	for key := range c.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(c.entries, key)
			purged++
		}
	}
	c.syncSizeLocked()

	if purged > 0 {
		c.stats.mu.Lock()
		c.stats.Evictions += int64(purged)
		c.stats.mu.Unlock()
	}
	return purged
}

// Clear removes all entries from the cache in a single atomic operation.
func (c *ListCache) Clear() {
	c.mu.Lock()
	evictions := int64(len(c.entries))
	c.entries = make(map[string]Entry)
	c.mu.Unlock()

	metrics.CacheSize.Set(0)

	c.stats.mu.Lock()
	c.stats.Evictions += evictions
	c.stats.TotalKeys = 0
	c.stats.mu.Unlock()
}

// Len returns the current number of entries.
func (c *ListCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetStats returns a snapshot of current cache performance statistics.
// The returned Stats struct is a copy, safe to read without holding locks.
func (c *ListCache) GetStats() Stats {
	c.stats.mu.RLock()
	defer c.stats.mu.RUnlock()

	return Stats{
		Hits:        c.stats.Hits,
		Misses:      c.stats.Misses,
		Evictions:   c.stats.Evictions,
		TotalKeys:   c.stats.TotalKeys,
		LastCleanup: c.stats.LastCleanup,
	}
}

// HitRate returns the cache hit rate as a percentage
func (c *ListCache) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

// Cleanup removes all expired entries and returns the number removed.
// Called periodically by the janitor service.
func (c *ListCache) Cleanup() int {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	evictions := 0
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			evictions++
		}
	}
	c.syncSizeLocked()

	c.stats.mu.Lock()
	c.stats.Evictions += int64(evictions)
	c.stats.TotalKeys = int64(len(c.entries))
	c.stats.LastCleanup = now
	c.stats.mu.Unlock()

	return evictions
}

// syncSizeLocked updates the size stat and gauge. Caller must hold the
// write lock.
func (c *ListCache) syncSizeLocked() {
	size := len(c.entries)
	metrics.CacheSize.Set(float64(size))
	c.stats.mu.Lock()
	c.stats.TotalKeys = int64(size)
	c.stats.mu.Unlock()
}

// recordHit increments the hit counter
func (c *ListCache) recordHit() {
	c.stats.mu.Lock()
	c.stats.Hits++
	c.stats.mu.Unlock()
}

// recordMiss increments the miss counter
func (c *ListCache) recordMiss() {
	c.stats.mu.Lock()
	c.stats.Misses++
	c.stats.mu.Unlock()
}

// recordEviction increments the eviction counter
func (c *ListCache) recordEviction() {
	metrics.CacheEvictions.Inc()
	c.stats.mu.Lock()
	c.stats.Evictions++
	c.stats.mu.Unlock()
}
