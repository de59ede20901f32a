package search

import (
	"sync"
	"sync/atomic"
)

// FileCatalog is the concurrent store of discovered entries: a flat
// collection (the source of truth) plus a derived map from lowercased
// extension to the entries sharing it. Both are written by all traversal
// workers of a run and may be read at any time, including mid-run; readers
// see a consistent, monotonically growing snapshot.
type FileCatalog struct {
	mu      sync.RWMutex
	entries []FileEntry
	byExt   map[string][]FileEntry
	count   atomic.Int64
}

// NewFileCatalog creates an empty catalog.
func NewFileCatalog() *FileCatalog {
	return &FileCatalog{
		byExt: make(map[string][]FileEntry),
	}
}

// Insert appends entry to the flat collection and to its extension bucket,
// creating the bucket if absent. Safe for concurrent use.
func (c *FileCatalog) Insert(entry FileEntry) {
	c.mu.Lock()
	c.entries = append(c.entries, entry)
	c.byExt[entry.Extension] = append(c.byExt[entry.Extension], entry)
	c.mu.Unlock()
	c.count.Add(1)
}

// Clear atomically empties both structures. Must only run between indexing
// runs, never concurrently with Insert.
func (c *FileCatalog) Clear() {
	c.mu.Lock()
	c.entries = nil
	c.byExt = make(map[string][]FileEntry)
	c.mu.Unlock()
	c.count.Store(0)
}

// Count reports the number of entries. Monotonically non-decreasing during
// a run.
func (c *FileCatalog) Count() int {
	return int(c.count.Load())
}

// Snapshot returns a copy of the flat collection. The copy is stable even if
// the walk keeps inserting.
func (c *FileCatalog) Snapshot() []FileEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]FileEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// ByExtension returns a copy of the bucket for ext (lowercased, leading dot).
func (c *FileCatalog) ByExtension(ext string) []FileEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	bucket := c.byExt[ext]
	if len(bucket) == 0 {
		return nil
	}
	out := make([]FileEntry, len(bucket))
	copy(out, bucket)
	return out
}
