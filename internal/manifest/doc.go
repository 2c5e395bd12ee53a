// Package manifest parses catalyst's text build manifest into a
// *graph.Graph.
//
// # Why manifest Exists
//
// The manifest format is deliberately flat — two pipe-delimited line
// shapes, no expressions, no includes — so the parser's only job is
// validating line shape and handing the result to the graph, which owns
// the actual dependency bookkeeping (duplicate-producer detection,
// depfile harvesting). Keeping that split means the graph's invariants
// hold regardless of which front end populated it: text manifest today,
// binary cache on a warm run.
package manifest
