package gsheet

import (
	"sync"
	"time"

	"gsdash/dataset"
)

// DefaultFreshnessWindow is how long a loaded dataset stays valid
// before a reload hits the remote service again.
const DefaultFreshnessWindow = 5 * time.Minute

type cacheKey struct {
	locator string
	sheet   string
}

type cacheEntry struct {
	table   *dataset.Table
	fetched time.Time
	dieTime time.Time
}

// Cache memoizes loaded datasets keyed by (locator, sheet) for a fixed
// freshness window. There is no size bound and no LRU behavior; entries
// are dropped on expiry or explicit invalidation. Concurrent sessions
// writing the same key get last-writer-wins semantics.
type Cache struct {
	window  time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[cacheKey]cacheEntry
}

// NewCache creates a cache with the given freshness window.
func NewCache(window time.Duration) *Cache {
	return &Cache{
		window:  window,
		now:     time.Now,
		entries: make(map[cacheKey]cacheEntry),
	}
}

// Get returns the cached dataset and its fetch time when still fresh.
// Expired entries are removed on access.
func (c *Cache) Get(locator, sheet string) (*dataset.Table, time.Time, bool) {
	key := cacheKey{locator: locator, sheet: sheet}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, time.Time{}, false
	}
	if entry.dieTime.After(c.now()) {
		return entry.table, entry.fetched, true
	}

	// Re-check under the write lock before dropping the stale entry.
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok = c.entries[key]
	if ok && entry.dieTime.After(c.now()) {
		return entry.table, entry.fetched, true
	}
	delete(c.entries, key)
	return nil, time.Time{}, false
}

// Put stores a dataset under (locator, sheet), replacing any prior entry.
func (c *Cache) Put(locator, sheet string, table *dataset.Table) {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{locator: locator, sheet: sheet}] = cacheEntry{
		table:   table,
		fetched: now,
		dieTime: now.Add(c.window),
	}
}

// Invalidate removes the entry for (locator, sheet), if present.
func (c *Cache) Invalidate(locator, sheet string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, cacheKey{locator: locator, sheet: sheet})
}

// InvalidateAll removes every cached entry.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]cacheEntry)
}
