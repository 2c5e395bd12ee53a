// Package statcache provides a concurrency-safe cache of filesystem
// modification times.
//
// # Why statcache Exists
//
// Every staleness check in catalyst boils down to comparing mtimes of two
// or more paths. Calling os.Stat directly from the scheduler's worker
// pool would mean every worker goroutine hits the filesystem for paths
// that dozens of other steps also depend on. statcache makes each path's
// mtime a one-time lookup, shared by every caller that asks for it
// afterwards, for the lifetime of a single build invocation.
//
// # How It Works
//
// Cache is a map keyed by path string, guarded by a sync.RWMutex. Get
// performs a stat on first access and remembers the result — including
// a "does not exist" result — so repeated lookups for a missing output
// don't repeatedly hit the filesystem. catalyst does not watch the
// filesystem; an entry is only re-read after Invalidate drops it, which
// happens when catalyst itself writes or removes that path (a step's
// output after it succeeds, a response file, a cleaned output).
//
// # Thread-Safety
//
// Cache is safe for concurrent use by multiple goroutines; this is the
// baseline requirement since every scheduler worker calls Get.
package statcache
