package staleness

import (
	"github.com/catalystbuild/catalyst/internal/graph"
	"github.com/catalystbuild/catalyst/internal/statcache"
)

// Oracle decides whether a build step needs to rerun. It is safe for
// concurrent use by multiple workers: all state is either immutable
// (ManifestPath) or itself concurrency-safe (the stat cache).
type Oracle struct {
	Cache        *statcache.Cache
	ManifestPath string
}

// New returns an Oracle consulting cache for mtimes and treating
// manifestPath as the build instructions file whose own staleness
// forces a rebuild regardless of source changes.
func New(cache *statcache.Cache, manifestPath string) *Oracle {
	return &Oracle{Cache: cache, ManifestPath: manifestPath}
}

// NeedsRebuild implements the six-step check from spec §4.E:
//  1. missing output -> true
//  2. T = mtime(output)
//  3. manifest changed since T -> true
//  4. any depfile input changed since T -> true
//  5. any parsed input changed since T -> true
//  6. otherwise -> false
func (o *Oracle) NeedsRebuild(step graph.BuildStep) bool {
	outT, exists := o.Cache.Get(step.Output)
	if !exists {
		return true
	}

	if o.Cache.ChangedSince(o.ManifestPath, outT) {
		return true
	}

	for _, dep := range step.DepfileInputs {
		if o.Cache.ChangedSince(dep, outT) {
			return true
		}
	}

	for _, in := range step.Inputs {
		if o.Cache.ChangedSince(in, outT) {
			return true
		}
	}

	return false
}
