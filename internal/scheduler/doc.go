// Package scheduler drives catalyst's parallel execution: given a
// dependency graph, it releases ready nodes to a fixed pool of workers,
// honoring dependency order and propagating the first failure.
//
// # Why scheduler Exists
//
// The scheduler is the component that actually makes the build
// parallel. Everything else in this module — the graph, the staleness
// oracle, the command builder — is consulted by a worker once that
// worker has been handed a node; the scheduler's own job is purely the
// bookkeeping of which nodes are ready, how many workers are busy, and
// whether the build has failed or stalled.
//
// # How It Works
//
// One mutex and one condition variable guard five pieces of state: the
// in-degree of every node, a FIFO ready queue, a completed counter, an
// active-worker counter, and an error flag. A worker that finishes a
// node decrements the in-degree of every dependent, pushes any that
// reach zero onto the ready queue, and wakes peers — one Signal if
// exactly one node became ready, a Broadcast if ten or more did, and one
// Signal per newly-ready node otherwise. On success or failure the
// completed counter is driven to the total to guarantee every sleeping
// worker eventually wakes and exits.
//
// # Thread-Safety
//
// Run's internal state is never touched outside the scheduler's own
// mutex. The graph passed to Run is read-only from the scheduler's
// perspective: only the run function supplied by the caller is expected
// to have side effects (invoking a subprocess), and the scheduler never
// runs two workers against the same node concurrently.
package scheduler
