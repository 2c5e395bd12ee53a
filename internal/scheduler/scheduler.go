package scheduler

import (
	"context"
	"runtime"
	"sync"

	"github.com/catalystbuild/catalyst/internal/cbeerrors"
	"github.com/catalystbuild/catalyst/internal/ctxlog"
	"github.com/catalystbuild/catalyst/internal/graph"
)

// broadcastThreshold is the batch size at which a newly-ready batch
// wakes every sleeping worker instead of signaling one-by-one, per spec
// §4.F step 5.
const broadcastThreshold = 10

// RunFunc processes the step owned by the node at index nodeIdx. It is
// only called for nodes with a step (pure source-file nodes succeed
// trivially). Implementations are expected to consult the staleness
// oracle and, if stale, build argv and invoke the subprocess primitive;
// dry-run behavior belongs here too, not in the scheduler.
type RunFunc func(ctx context.Context, nodeIdx int) error

// Config controls a single Run invocation.
type Config struct {
	// Jobs is the worker pool size. 0 means hardware concurrency,
	// clamped to a minimum of 1.
	Jobs int
}

func (c Config) jobs() int {
	if c.Jobs > 0 {
		return c.Jobs
	}
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}

// state is the scheduler's single mutex-guarded block, per spec §4.F.
type state struct {
	mu   sync.Mutex
	cond *sync.Cond

	inDegree      []int
	readyQueue    []int
	completed     int
	total         int
	activeWorkers int

	errorFlag bool
	firstErr  error
	stalled   bool
}

// Run executes every node in g's graph on a pool of Jobs workers,
// calling runFn for each node that owns a step. It returns nil on full
// success, a StepFailed/SubprocessSpawnFailed-tagged error from the
// first failing step (after in-flight workers drain), or a Stall error
// if no forward progress is possible despite pending nodes — which
// should be unreachable for a graph that has already passed TopoSort.
func Run(ctx context.Context, g *graph.Graph, runFn RunFunc, cfg Config) error {
	total := len(g.Nodes)
	if total == 0 {
		return nil
	}

	s := &state{
		inDegree: make([]int, total),
		total:    total,
	}
	s.cond = sync.NewCond(&s.mu)

	for _, n := range g.Nodes {
		for _, succ := range n.OutEdges {
			s.inDegree[succ]++
		}
	}
	for i := 0; i < total; i++ {
		if s.inDegree[i] == 0 {
			s.readyQueue = append(s.readyQueue, i)
		}
	}

	jobs := cfg.jobs()
	logger := ctxlog.FromContext(ctx)
	logger.Debug("scheduler starting", "nodes", total, "jobs", jobs)

	var wg sync.WaitGroup
	wg.Add(jobs)
	for w := 0; w < jobs; w++ {
		go func() {
			defer wg.Done()
			runWorker(ctx, s, g, runFn)
		}()
	}
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stalled {
		return cbeerrors.New(cbeerrors.Stall, "no ready node but build incomplete")
	}
	if s.errorFlag {
		return s.firstErr
	}
	return nil
}

func runWorker(ctx context.Context, s *state, g *graph.Graph, runFn RunFunc) {
	for {
		s.mu.Lock()
		for len(s.readyQueue) == 0 && s.completed != s.total && s.activeWorkers != 0 {
			s.cond.Wait()
		}

		if s.completed == s.total {
			s.mu.Unlock()
			return
		}

		if len(s.readyQueue) == 0 {
			// active_workers == 0, ready_queue empty, completed < total:
			// no worker can ever make progress again.
			s.stalled = true
			s.completed = s.total
			s.cond.Broadcast()
			s.mu.Unlock()
			return
		}

		nodeIdx := s.readyQueue[0]
		s.readyQueue = s.readyQueue[1:]
		s.activeWorkers++
		s.mu.Unlock()

		var stepErr error
		if g.Nodes[nodeIdx].HasStep() {
			stepErr = runFn(ctx, nodeIdx)
		}

		s.mu.Lock()
		s.activeWorkers--
		s.completed++

		if stepErr != nil {
			if !s.errorFlag {
				s.errorFlag = true
				s.firstErr = stepErr
			}
			s.completed = s.total
			s.cond.Broadcast()
			s.mu.Unlock()
			return
		}

		var newlyReady []int
		for _, succ := range g.Dependents(nodeIdx) {
			s.inDegree[succ]--
			if s.inDegree[succ] == 0 {
				newlyReady = append(newlyReady, succ)
			}
		}
		s.readyQueue = append(s.readyQueue, newlyReady...)

		switch {
		case s.completed == s.total:
			s.cond.Broadcast()
		case len(newlyReady) == 1:
			s.cond.Signal()
		case len(newlyReady) >= broadcastThreshold:
			s.cond.Broadcast()
		default:
			for i := 0; i < len(newlyReady); i++ {
				s.cond.Signal()
			}
		}
		s.mu.Unlock()
	}
}
