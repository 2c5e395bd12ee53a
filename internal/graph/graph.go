package graph

import (
	"fmt"

	"github.com/catalystbuild/catalyst/internal/cbeerrors"
)

// DepfileSource reads the raw contents of the depfile associated with a
// step's output, e.g. "<output>.d". The second return value is false if
// no such file exists; that is not an error.
type DepfileSource interface {
	ReadDepfile(output string) (data []byte, ok bool, err error)
}

// Graph is catalyst's build graph: a node arena, a step arena, and the
// definition table collected alongside them. Zero value is not usable;
// construct with New.
type Graph struct {
	Nodes       []Node
	Steps       []BuildStep
	Definitions []Definition

	index   map[string]int
	depfile DepfileSource
}

// New returns an empty graph that harvests depfiles via src. Pass nil to
// disable depfile integration entirely (used by tests that only care
// about the graph/topo-sort shape).
func New(src DepfileSource) *Graph {
	return &Graph{
		index:   make(map[string]int),
		depfile: src,
	}
}

// AddDefinition appends a DEF entry. Keys are not deduplicated by the
// graph; a later definition with the same key simply shadows an earlier
// one when looked up via Definition.
func (g *Graph) AddDefinition(key, value string) {
	g.Definitions = append(g.Definitions, Definition{Key: key, Value: value})
}

// Definition returns the most recently added value for key, or ("",
// false) if key was never defined.
func (g *Graph) Definition(key string) (string, bool) {
	for i := len(g.Definitions) - 1; i >= 0; i-- {
		if g.Definitions[i].Key == key {
			return g.Definitions[i].Value, true
		}
	}
	return "", false
}

// GetOrCreateNode returns the index of path's node, creating it at the
// back of the arena if this is the first time path has been seen.
func (g *Graph) GetOrCreateNode(path string) int {
	if idx, ok := g.index[path]; ok {
		return idx
	}
	idx := len(g.Nodes)
	g.Nodes = append(g.Nodes, Node{Path: path, StepID: noStep})
	g.index[path] = idx
	return idx
}

// NodeIndex returns the index of an existing node, or (-1, false) if
// path has never been added.
func (g *Graph) NodeIndex(path string) (int, bool) {
	idx, ok := g.index[path]
	if !ok {
		return -1, false
	}
	return idx, true
}

func (g *Graph) addEdge(from, to int) {
	for _, e := range g.Nodes[from].OutEdges {
		if e == to {
			return
		}
	}
	g.Nodes[from].OutEdges = append(g.Nodes[from].OutEdges, to)
}

// AddStep registers a build step, wiring the output node's StepID and
// linking every parsed input (and, for cc/cxx tools, every harvested
// depfile input) as a predecessor of the output. It fails with
// DuplicateProducer if the output already has a producing step.
func (g *Graph) AddStep(step BuildStep) (int, error) {
	outIdx := g.GetOrCreateNode(step.Output)
	if g.Nodes[outIdx].HasStep() {
		return 0, cbeerrors.New(cbeerrors.DuplicateProducer, step.Output)
	}

	stepIdx := len(g.Steps)

	for _, in := range step.Inputs {
		inIdx := g.GetOrCreateNode(in)
		g.addEdge(inIdx, outIdx)
	}

	if (Tool(step.Tool) == ToolCC || Tool(step.Tool) == ToolCXX) && g.depfile != nil {
		if data, ok, err := g.depfile.ReadDepfile(step.Output); err == nil && ok {
			step.HasDepfile = true
			step.DepfileInputs = parseDepfile(data)
			for _, dep := range step.DepfileInputs {
				depIdx := g.GetOrCreateNode(dep)
				g.addEdge(depIdx, outIdx)
			}
		}
	}

	g.Nodes[outIdx].StepID = stepIdx
	g.Steps = append(g.Steps, step)
	return stepIdx, nil
}

// color states for the three-color DFS used by TopoSort.
type color uint8

const (
	unstarted color = iota
	working
	finished
)

// TopoSort returns a reverse-post-order permutation of node indices:
// every predecessor precedes its successors. It fails with Cycle if a
// back edge is found, naming one node on the offending cycle.
func (g *Graph) TopoSort() ([]int, error) {
	colors := make([]color, len(g.Nodes))
	order := make([]int, 0, len(g.Nodes))

	var visit func(n int) error
	visit = func(n int) error {
		colors[n] = working
		for _, succ := range g.Nodes[n].OutEdges {
			switch colors[succ] {
			case unstarted:
				if err := visit(succ); err != nil {
					return err
				}
			case working:
				return cbeerrors.New(cbeerrors.Cycle, g.Nodes[succ].Path)
			case finished:
				// already emitted, nothing to do
			}
		}
		colors[n] = finished
		order = append(order, n)
		return nil
	}

	for i := range g.Nodes {
		if colors[i] == unstarted {
			if err := visit(i); err != nil {
				return nil, err
			}
		}
	}

	// order was built in post-order (a node is appended only after every
	// node that depends on it has been appended); reverse it so
	// dependencies precede dependents.
	reversed := make([]int, len(order))
	for i, n := range order {
		reversed[len(order)-1-i] = n
	}
	return reversed, nil
}

// LoadRaw replaces the graph's contents wholesale, rebuilding the
// path→index map from nodes. Used by the binary cache loader, which
// already knows the exact node/step arrays and must not re-run
// AddStep's duplicate-producer or depfile-harvesting logic.
func (g *Graph) LoadRaw(nodes []Node, steps []BuildStep) {
	g.Nodes = nodes
	g.Steps = steps
	g.index = make(map[string]int, len(nodes))
	for i, n := range nodes {
		g.index[n.Path] = i
	}
}

// Dependents returns the node indices that directly depend on node n.
func (g *Graph) Dependents(n int) []int {
	return g.Nodes[n].OutEdges
}

// Validate checks that paths and node indices are in one-to-one
// correspondence and that every step's output node points back at that
// step, returning a descriptive error on the first violation. Edge
// lists are not checked here. Mainly used by the binary
// cache loader to reject a corrupt snapshot before it's handed to the
// scheduler.
func (g *Graph) Validate() error {
	if len(g.index) != len(g.Nodes) {
		return fmt.Errorf("graph: index/node count mismatch: %d vs %d", len(g.index), len(g.Nodes))
	}
	for i, n := range g.Nodes {
		if idx, ok := g.index[n.Path]; !ok || idx != i {
			return fmt.Errorf("graph: path %q not bijective with index %d", n.Path, i)
		}
	}
	for i, s := range g.Steps {
		outIdx, ok := g.index[s.Output]
		if !ok || g.Nodes[outIdx].StepID != i {
			return fmt.Errorf("graph: step %d output %q not wired to node", i, s.Output)
		}
	}
	return nil
}
