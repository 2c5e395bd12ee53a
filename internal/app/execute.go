package app

import (
	"context"
	"fmt"

	"github.com/catalystbuild/catalyst/internal/cbeerrors"
	"github.com/catalystbuild/catalyst/internal/cmdbuilder"
	"github.com/catalystbuild/catalyst/internal/ctxlog"
	"github.com/catalystbuild/catalyst/internal/graph"
	"github.com/catalystbuild/catalyst/internal/procexec"
	"github.com/catalystbuild/catalyst/internal/scheduler"
	"github.com/catalystbuild/catalyst/internal/staleness"
	"github.com/gookit/color"
)

// buildRunFunc returns the scheduler.RunFunc that ties the staleness
// oracle, command builder, and subprocess primitive together for a
// single node: spec §4.F step 4's "ask the oracle, build argv, invoke
// the subprocess" sequence.
func (a *App) buildRunFunc(g *graph.Graph, oracle *staleness.Oracle, builder *cmdbuilder.Builder, progress *progressReporter) scheduler.RunFunc {
	return func(ctx context.Context, nodeIdx int) error {
		logger := ctxlog.FromContext(ctx)
		node := g.Nodes[nodeIdx]
		step := g.Steps[node.StepID]

		if !oracle.NeedsRebuild(step) {
			logger.Debug("up to date, skipping", "output", step.Output)
			progress.add(1)
			return nil
		}

		argv, err := builder.Build(step)
		if err != nil {
			return err
		}

		a.announce(step, argv)

		if a.config.DryRun {
			progress.add(1)
			return nil
		}

		exitCode, err := procexec.Run(ctx, argv, "", nil)
		if err != nil {
			return err
		}
		if exitCode != 0 {
			a.announceFailure(step, exitCode)
			return cbeerrors.New(cbeerrors.StepFailed, fmt.Sprintf("%s %s exited %d", step.Tool, step.Output, exitCode))
		}

		a.cache.Invalidate(step.Output)
		progress.add(1)
		return nil
	}
}

// announce prints a one-line, tool-colored summary of the step about to
// run, matching the terminal-ergonomics idiom of coloring output by
// category rather than by success/failure alone.
func (a *App) announce(step graph.BuildStep, argv []string) {
	if a.config.NoColor || !a.colorEnabled {
		fmt.Fprintln(a.outW, step.Tool, step.Output)
		return
	}

	var c color.Color
	switch graph.Tool(step.Tool) {
	case graph.ToolCC, graph.ToolCXX:
		c = color.FgCyan
	case graph.ToolLD, graph.ToolSLD, graph.ToolAR:
		c = color.FgYellow
	default:
		c = color.FgWhite
	}
	fmt.Fprintln(a.outW, c.Sprintf("%s %s", step.Tool, step.Output))
}

// announceFailure prints a step's failing exit code in red, the same
// TTY-gated coloring announce uses for its in-progress summaries.
func (a *App) announceFailure(step graph.BuildStep, exitCode int) {
	if a.config.NoColor || !a.colorEnabled {
		fmt.Fprintf(a.outW, "%s %s: exit %d\n", step.Tool, step.Output, exitCode)
		return
	}
	fmt.Fprintln(a.outW, color.FgRed.Sprintf("%s %s: exit %d", step.Tool, step.Output, exitCode))
}
