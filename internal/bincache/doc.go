// Package bincache implements catalyst's `.catalyst.bin` binary cache:
// a byte-exact snapshot of a *graph.Graph that can be loaded without
// re-running the text parser.
//
// # Why bincache Exists
//
// Re-parsing a large manifest and re-opening every depfile on every
// invocation is wasted work when nothing has changed. bincache trades a
// small amount of write-side bookkeeping (building a deduplicated string
// pool) for a load path that is a handful of memory-mapped struct reads.
//
// # How It Works
//
// Emit walks the graph once, interning every string it touches into a
// single StringPool, then writes a fixed-size Header followed by
// fixed-size records for definitions, nodes, and steps — every variable
// -length field (a path, a tool name, an edge list) is represented by an
// offset/length StringRef or a count-prefixed array of u64 indices, so
// the whole file can be read back with no parsing beyond arithmetic.
//
// Load validates the magic and the declared sizes against the actual
// file length before trusting any offset, because the file may be
// truncated or belong to a different platform build.
package bincache
