// Package staleness implements catalyst's needs_rebuild decision: given
// a build step, should its command actually run or can its output be
// left alone.
//
// # Why staleness Exists
//
// Every worker in the scheduler asks this question independently and
// concurrently before invoking a step's subprocess. Isolating the
// six-step decision in its own package keeps the scheduler's worker
// loop free of filesystem-comparison logic and makes the decision
// trivially unit-testable against a fake clock.
package staleness
