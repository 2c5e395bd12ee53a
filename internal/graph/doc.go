// Package graph implements catalyst's build graph: paths as nodes, "depends
// on" edges between them, and the build steps that produce some of those
// paths.
//
// # Why graph Exists
//
// Every other core component operates on the graph rather than the
// manifest text: the staleness oracle walks a node's edges, the scheduler
// consumes the graph's topological order, and the binary cache is just a
// serialized snapshot of this structure. Concentrating the dependency
// bookkeeping here keeps those components free of parsing concerns.
//
// # How It Works
//
// Nodes and steps live in two parallel arenas addressed by integer index,
// never by pointer — a node's "produced by" relationship and a step's
// output relationship are both plain indices, so the graph can be
// serialized byte-for-byte without patching pointers on load. AddStep
// creates the output node (if absent), links every parsed input as a
// predecessor edge, and — for cc/cxx steps — attempts to harvest a
// compiler depfile and link its contents the same way.
//
// # Thread-Safety
//
// Graph construction (GetOrCreateNode, AddStep) is single-threaded, done
// once by the manifest parser or binary cache loader before any worker
// starts. Once construction finishes the graph is read-only for the
// remainder of the build; TopoSort and all lookup methods are safe for
// concurrent readers because nothing mutates after AddStep stops being
// called.
package graph
