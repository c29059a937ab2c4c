package worddiff

import (
	"sync"

	"github.com/fwojciec/splitdiff"
)

// Key identifies one deferred word-diff computation. Two rows with the same
// raw strings still cache separately: the key carries the row index so the
// cache can be probed during rendering without extra bookkeeping.
type Key struct {
	Row int
	Old string
	New string
}

// Metrics tracks cache performance counters.
type Metrics struct {
	Hits   uint64
	Misses uint64
}

type entry struct {
	left  []splitdiff.Token
	right []splitdiff.Token
}

// Cache stores computed word diffs for deferred rows so repeated render
// passes do not recompute them. It is owned by the consumer of the line
// engine's output and must be cleared wholesale whenever the top-level
// inputs or compare mode change. Access is serialized internally so a
// background computation and an interactive consumer can share it.
type Cache struct {
	differ splitdiff.WordDiffer

	mu      sync.Mutex
	entries map[Key]entry
	metrics Metrics
}

// NewCache creates an empty cache that computes missing entries with differ.
func NewCache(differ splitdiff.WordDiffer) *Cache {
	return &Cache{
		differ:  differ,
		entries: make(map[Key]entry),
	}
}

// Diff returns the word diff for a deferred row, computing and storing it on
// first use. mode selects the comparison granularity; structural modes fall
// back to character granularity inside the differ.
func (c *Cache) Diff(row int, old, new string, mode splitdiff.CompareMode) (left, right []splitdiff.Token) {
	key := Key{Row: row, Old: old, New: new}

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.metrics.Hits++
		c.mu.Unlock()
		return e.left, e.right
	}
	c.metrics.Misses++
	c.mu.Unlock()

	// Compute outside the lock; a duplicate computation for a racing key is
	// harmless because results are deterministic.
	left, right = c.differ.Diff(old, new, mode)

	c.mu.Lock()
	c.entries[key] = entry{left: left, right: right}
	c.mu.Unlock()
	return left, right
}

// Clear drops every entry. Metrics survive.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]entry)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a copy of the performance counters.
func (c *Cache) Stats() Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.metrics
}
