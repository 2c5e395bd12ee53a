package statcache

import (
	"os"
	"sync"
	"time"
)

// entry is the cached outcome of a single stat call.
type entry struct {
	modTime time.Time
	exists  bool
}

// Cache memoizes os.Stat results keyed by the exact path string passed
// in. It never normalizes, cleans, or resolves symlinks in the path —
// two distinct strings that resolve to the same file are cached as two
// distinct entries, by design: the rest of catalyst treats paths as the
// opaque keys the manifest wrote, and normalizing here would let a
// staleness check silently conflate two names the graph considers
// different nodes.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	statFn  func(string) (os.FileInfo, error)
}

// New returns an empty Cache backed by os.Stat.
func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		statFn:  os.Stat,
	}
}

// NewWithStat returns a Cache backed by a custom stat function, for
// tests that need to control mtimes without touching the real
// filesystem.
func NewWithStat(statFn func(string) (os.FileInfo, error)) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		statFn:  statFn,
	}
}

// Get returns the modification time of path and whether it exists. The
// result is cached after the first call; subsequent calls for the same
// path string never touch the filesystem again.
func (c *Cache) Get(path string) (modTime time.Time, exists bool) {
	c.mu.RLock()
	e, ok := c.entries[path]
	c.mu.RUnlock()
	if ok {
		return e.modTime, e.exists
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another goroutine may have populated it while we waited for the
	// write lock.
	if e, ok := c.entries[path]; ok {
		return e.modTime, e.exists
	}

	info, err := c.statFn(path)
	var e2 entry
	if err == nil {
		e2 = entry{modTime: info.ModTime(), exists: true}
	} else {
		e2 = entry{exists: false}
	}
	c.entries[path] = e2
	return e2.modTime, e2.exists
}

// ChangedSince reports whether path's mtime is at or after ref, or path
// doesn't exist at all. A missing path must force a rebuild exactly the
// way a stale one does — a removed depfile input or source input is
// still a reason to rerun the step that reads it, per spec §4.A/§4.E.
//
// The mtime comparison uses >=, not >, so that two files written in the
// same filesystem-mtime tick are pessimistically treated as "changed"
// rather than silently ignored — see spec §9 on tie-breaking.
func (c *Cache) ChangedSince(path string, ref time.Time) bool {
	modTime, exists := c.Get(path)
	if !exists {
		return true
	}
	return !modTime.Before(ref)
}

// Invalidate forgets path, forcing the next Get to re-stat. Used by the
// -clean operation after it removes declared outputs, and by any
// operation that modifies the filesystem mid-run and still needs an
// accurate read afterward.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}
