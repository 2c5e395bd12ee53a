// Package cmdbuilder turns a graph.BuildStep into the argv a subprocess
// primitive should exec, per the per-tool tables in spec §4.G.
package cmdbuilder
