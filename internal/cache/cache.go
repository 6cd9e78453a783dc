// Package cache provides the short-lived read cache for tab snapshots.
// Entries live for a fixed TTL from insertion and a hit never revalidates
// against the backing store. Any mutation clears the whole cache: renames
// and deletes can shift row positions in tabs other than the one written,
// so per-table invalidation would serve stale positions.
package cache

import (
	"sync"
	"time"

	"github.com/allyounowbud/onetrack/internal/grid"
)

// DefaultTTL is how long a snapshot stays fresh after insertion.
const DefaultTTL = 30 * time.Second

type entry struct {
	snapshot *grid.Snapshot
	exp      time.Time
}

// SnapshotCache memoizes one grid snapshot per table name. It is safe for
// concurrent use; writers win last, which is all the single-writer usage
// pattern needs.
type SnapshotCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration

	// now is swapped out by tests.
	now func() time.Time
}

// New creates a cache with the given TTL; ttl <= 0 uses DefaultTTL.
func New(ttl time.Duration) *SnapshotCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SnapshotCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached snapshot for a table, or nil past its expiry.
func (c *SnapshotCache) Get(table string) *grid.Snapshot {
	c.mu.RLock()
	e, ok := c.entries[table]
	c.mu.RUnlock()
	if !ok {
		return nil
	}
	if c.now().After(e.exp) {
		c.mu.Lock()
		delete(c.entries, table)
		c.mu.Unlock()
		return nil
	}
	return e.snapshot
}

// Set stores a snapshot, stamping its expiry from now.
func (c *SnapshotCache) Set(table string, s *grid.Snapshot) {
	c.mu.Lock()
	c.entries[table] = entry{snapshot: s, exp: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Clear drops every entry. Called after any successful mutation.
func (c *SnapshotCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}
