package app

import (
	"context"
	"fmt"
	"os"

	"github.com/catalystbuild/catalyst/internal/ctxlog"
	"github.com/catalystbuild/catalyst/internal/graph"
)

// clean removes every step's output along with its known side files: the
// .d depfile for cc/cxx steps and the .rsp response file for ld steps.
// It's a straightforward graph walk, grounded in the same node set
// construction the scheduler and staleness oracle use, and never fails
// on a file that's already gone.
func (a *App) clean(ctx context.Context, g *graph.Graph) error {
	logger := ctxlog.FromContext(ctx)
	removed := 0

	for _, step := range g.Steps {
		paths := []string{step.Output}
		switch graph.Tool(step.Tool) {
		case graph.ToolCC, graph.ToolCXX:
			paths = append(paths, step.Output+".d")
		case graph.ToolLD:
			paths = append(paths, step.Output+".rsp")
		}

		for _, p := range paths {
			if err := os.Remove(p); err != nil {
				if os.IsNotExist(err) {
					continue
				}
				return fmt.Errorf("removing %s: %w", p, err)
			}
			a.cache.Invalidate(p)
			removed++
			logger.Debug("removed", "path", p)
		}
	}

	if err := os.Remove(binCachePath); err == nil {
		a.cache.Invalidate(binCachePath)
		removed++
	}

	logger.Debug("clean complete", "removed", removed)
	return nil
}
