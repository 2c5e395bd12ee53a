// Package mmapfile memory-maps a file read-only and hands back its bytes
// as a zero-copy slice, for the manifest and binary-cache readers that
// need string views pinned for the lifetime of the graph.
//
// # Why mmapfile Exists
//
// Both the manifest parser and the binary cache loader read their input
// from a single backing buffer; the graph's path strings are copied out
// of it (the manifest text once as a whole, each cache string on its
// own). A regular os.ReadFile already gives a contiguous []byte, but mmap
// additionally avoids the read-and-copy for cache files that may be
// loaded and discarded many times across incremental builds, and keeps
// the working set out of the Go heap.
package mmapfile
