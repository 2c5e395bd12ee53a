package app

import (
	"context"
	"fmt"
	"os"

	"github.com/catalystbuild/catalyst/internal/bincache"
	"github.com/catalystbuild/catalyst/internal/ctxlog"
	"github.com/catalystbuild/catalyst/internal/graph"
	"github.com/catalystbuild/catalyst/internal/manifest"
	"github.com/catalystbuild/catalyst/internal/mmapfile"
)

const binCachePath = ".catalyst.bin"

// loadGraph implements the fast-path decision from spec §4.D: if
// .catalyst.bin exists and is strictly newer than the manifest, load it
// directly; otherwise parse the manifest text and best-effort rewrite
// the cache for next time.
func (a *App) loadGraph(ctx context.Context) (*graph.Graph, error) {
	logger := ctxlog.FromContext(ctx)

	manifestMTime, manifestExists := a.cache.Get(a.config.ManifestPath)
	if !manifestExists {
		return nil, fmt.Errorf("manifest not found: %s", a.config.ManifestPath)
	}

	if binMTime, binExists := a.cache.Get(binCachePath); binExists && binMTime.After(manifestMTime) {
		if g, err := a.loadBinCache(); err == nil {
			logger.Debug("loaded graph from binary cache", "path", binCachePath)
			return g, nil
		} else {
			logger.Debug("binary cache invalid, falling back to text parse", "error", err)
		}
	}

	return a.parseManifestAndCache(ctx)
}

func (a *App) loadBinCache() (*graph.Graph, error) {
	f, err := mmapfile.Open(binCachePath)
	if err != nil {
		return nil, err
	}
	g, err := bincache.Load(f.Bytes())
	if err != nil {
		f.Close()
		return nil, err
	}
	a.resources = append(a.resources, f)
	return g, nil
}

func (a *App) parseManifestAndCache(ctx context.Context) (*graph.Graph, error) {
	logger := ctxlog.FromContext(ctx)

	f, err := mmapfile.Open(a.config.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	a.resources = append(a.resources, f)

	g := graph.New(graph.FileDepfileSource{})
	if err := manifest.Parse(g, f.Bytes()); err != nil {
		return nil, err
	}

	// Emitting the cache is best-effort; failure is never reported, per
	// spec §7.
	if err := a.emitBinCache(g); err != nil {
		logger.Debug("binary cache emit failed (non-fatal)", "error", err)
	}

	return g, nil
}

func (a *App) emitBinCache(g *graph.Graph) error {
	f, err := os.Create(binCachePath)
	if err != nil {
		return err
	}
	defer f.Close()
	return bincache.Emit(f, g)
}
