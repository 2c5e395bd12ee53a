package app

import (
	"context"
	"fmt"
	"os"

	"github.com/catalystbuild/catalyst/internal/cmdbuilder"
	"github.com/catalystbuild/catalyst/internal/ctxlog"
	"github.com/catalystbuild/catalyst/internal/emit"
	"github.com/catalystbuild/catalyst/internal/graph"
	"github.com/catalystbuild/catalyst/internal/scheduler"
	"github.com/catalystbuild/catalyst/internal/staleness"
)

// Run executes one full catalyst invocation: load the graph, validate
// it, then dispatch to whichever mode the config selects (clean, emit
// compile-db, emit DOT, or a real/dry-run build).
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	logger := ctxlog.FromContext(ctx)

	if a.config.WorkingDir != "" {
		if err := os.Chdir(a.config.WorkingDir); err != nil {
			return fmt.Errorf("changing to working directory %s: %w", a.config.WorkingDir, err)
		}
	}

	g, err := a.loadGraph(ctx)
	if err != nil {
		return fmt.Errorf("loading build graph: %w", err)
	}

	if _, err := g.TopoSort(); err != nil {
		return fmt.Errorf("validating build graph: %w", err)
	}
	logger.Debug("graph loaded", "nodes", len(g.Nodes), "steps", len(g.Steps))

	switch {
	case a.config.Clean:
		return a.clean(ctx, g)
	case a.config.CompDBPath != "":
		return a.emitCompDB(g)
	case a.config.GraphPath != "":
		return a.emitDOT(g)
	default:
		return a.build(ctx, g)
	}
}

func (a *App) emitCompDB(g *graph.Graph) error {
	f, err := os.Create(a.config.CompDBPath)
	if err != nil {
		return err
	}
	defer f.Close()

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	builder := cmdbuilder.New(g, a.cache, a.config.ManifestPath)
	return emit.CompDB(f, g, builder, cwd)
}

func (a *App) emitDOT(g *graph.Graph) error {
	f, err := os.Create(a.config.GraphPath)
	if err != nil {
		return err
	}
	defer f.Close()

	oracle := staleness.New(a.cache, a.config.ManifestPath)
	return emit.DOT(f, g, oracle)
}

func (a *App) build(ctx context.Context, g *graph.Graph) error {
	logger := ctxlog.FromContext(ctx)

	oracle := staleness.New(a.cache, a.config.ManifestPath)
	builder := cmdbuilder.New(g, a.cache, a.config.ManifestPath)
	progress := a.newProgress(len(g.Steps))
	defer progress.finish()

	runFn := a.buildRunFunc(g, oracle, builder, progress)

	err := scheduler.Run(ctx, g, runFn, scheduler.Config{Jobs: a.config.Jobs})
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	logger.Debug("build succeeded, refreshing binary cache")
	if cacheErr := a.emitBinCache(g); cacheErr != nil {
		logger.Debug("binary cache emit failed (non-fatal)", "error", cacheErr)
	}
	return nil
}
