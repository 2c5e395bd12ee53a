// Package emit produces the two auxiliary views of a build graph catalyst
// can write instead of building: a clang-compatible compile_commands.json
// and a Graphviz DOT of the dependency graph. Both reuse the graph and
// staleness packages rather than duplicating any graph-walking logic.
package emit
