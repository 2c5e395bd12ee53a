package emit

import (
	"fmt"
	"io"

	"github.com/catalystbuild/catalyst/internal/graph"
	"github.com/catalystbuild/catalyst/internal/staleness"
)

// DOT writes a Graphviz representation of g. Each node is colored
// green if its step needs a rebuild, white if it's an up-to-date step
// output, or gray if it's a source node with no producing step.
func DOT(w io.Writer, g *graph.Graph, oracle *staleness.Oracle) error {
	if _, err := fmt.Fprintln(w, "digraph catalyst {"); err != nil {
		return err
	}

	for i, n := range g.Nodes {
		color := "gray"
		if n.HasStep() {
			if oracle.NeedsRebuild(g.Steps[n.StepID]) {
				color = "green"
			} else {
				color = "white"
			}
		}
		if _, err := fmt.Fprintf(w, "  n%d [label=%q, style=filled, fillcolor=%q];\n", i, n.Path, color); err != nil {
			return err
		}
	}

	for i, n := range g.Nodes {
		for _, succ := range n.OutEdges {
			if _, err := fmt.Fprintf(w, "  n%d -> n%d;\n", i, succ); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}
