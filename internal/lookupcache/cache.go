// Package lookupcache provides the in-memory memo for resolved
// foreign-key labels. Entries expire lazily: a read past the TTL
// behaves as a miss, there is no background sweep.
package lookupcache

import (
	"sync"
	"time"
)

// DefaultTTL bounds how long a resolved label is served without re-fetching.
const DefaultTTL = 5 * time.Minute

type entry struct {
	value     string
	writtenAt time.Time
}

// Cache is a TTL-bounded map from (entity, id) to a display label.
// Safe for concurrent use; concurrent writes to the same key are
// last-writer-wins.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// New constructs a Cache. A non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// SetClock replaces the time source. Tests use this to simulate expiry.
func (c *Cache) SetClock(now func() time.Time) {
	if c == nil || now == nil {
		return
	}
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

// key joins entity and id. Entity names never contain ':', so keys for
// distinct entities cannot collide even when the raw ids are equal.
func key(entity, id string) string {
	return entity + ":" + id
}

// Get returns the cached label for (entity, id). Entries older than the
// TTL are treated as absent.
func (c *Cache) Get(entity, id string) (string, bool) {
	if c == nil {
		return "", false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key(entity, id)]
	if !ok {
		return "", false
	}
	if c.now().Sub(e.writtenAt) >= c.ttl {
		return "", false
	}
	return e.value, true
}

// Set stores the label for (entity, id), replacing any previous entry.
func (c *Cache) Set(entity, id, value string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries[key(entity, id)] = entry{value: value, writtenAt: c.now()}
	c.mu.Unlock()
}

// Clear drops every entry unconditionally.
func (c *Cache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Len reports the number of entries, stale ones included.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
