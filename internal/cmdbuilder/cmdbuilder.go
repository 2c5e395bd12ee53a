package cmdbuilder

import (
	"fmt"
	"os"
	"strings"

	"github.com/catalystbuild/catalyst/internal/graph"
	"github.com/catalystbuild/catalyst/internal/statcache"
)

// responseFileThreshold is the input count above which an ld step's
// inputs are written to a response file instead of passed inline, per
// spec §4.G.
const responseFileThreshold = 50

// Builder expands a graph.BuildStep into argv, resolving definition
// tokens (cc, cflags, ...) against defs.
type Builder struct {
	Defs         *graph.Graph
	Cache        *statcache.Cache
	ManifestPath string
}

// New returns a Builder resolving definitions from defs.
func New(defs *graph.Graph, cache *statcache.Cache, manifestPath string) *Builder {
	return &Builder{Defs: defs, Cache: cache, ManifestPath: manifestPath}
}

func (b *Builder) expand(key string) []string {
	val, ok := b.Defs.Definition(key)
	if !ok {
		return nil
	}
	return graph.Definition{Key: key, Value: val}.Args()
}

// Build returns the argv for step, per the per-tool table in spec §4.G.
func (b *Builder) Build(step graph.BuildStep) ([]string, error) {
	switch graph.Tool(step.Tool) {
	case graph.ToolCC:
		return b.buildCompile("cc", "cflags", step), nil
	case graph.ToolCXX:
		return b.buildCompile("cxx", "cxxflags", step), nil
	case graph.ToolLD:
		return b.buildLD(step)
	case graph.ToolSLD:
		return b.buildSLD(step), nil
	case graph.ToolAR:
		return b.buildAR(step), nil
	default:
		return nil, fmt.Errorf("cmdbuilder: unknown tool %q", step.Tool)
	}
}

func (b *Builder) buildCompile(toolKey, flagsKey string, step graph.BuildStep) []string {
	argv := append([]string{}, b.expand(toolKey)...)
	argv = append(argv, b.expand(flagsKey)...)
	argv = append(argv, "-MMD", "-MF", step.Output+".d", "-c")
	argv = append(argv, step.Inputs...)
	argv = append(argv, "-o", step.Output)
	return argv
}

func (b *Builder) buildLD(step graph.BuildStep) ([]string, error) {
	inputArgs := step.Inputs
	if len(step.Inputs) > responseFileThreshold {
		rspPath, err := b.responseFileFor(step)
		if err != nil {
			return nil, err
		}
		inputArgs = []string{"@" + rspPath}
	}

	argv := append([]string{}, b.expand("cxx")...)
	argv = append(argv, inputArgs...)
	argv = append(argv, "-o", step.Output)
	argv = append(argv, b.expand("ldflags")...)
	argv = append(argv, b.expand("ldlibs")...)
	return argv, nil
}

// responseFileFor returns the path to step's "<output>.rsp", reusing an
// existing one if it's newer than the manifest and writing a fresh one
// otherwise.
func (b *Builder) responseFileFor(step graph.BuildStep) (string, error) {
	rspPath := step.Output + ".rsp"

	if mtime, exists := b.Cache.Get(rspPath); exists {
		if !b.Cache.ChangedSince(b.ManifestPath, mtime) {
			return rspPath, nil
		}
	}

	content := strings.Join(step.Inputs, "\n")
	if len(step.Inputs) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(rspPath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("cmdbuilder: writing response file %s: %w", rspPath, err)
	}
	b.Cache.Invalidate(rspPath)
	return rspPath, nil
}

func (b *Builder) buildSLD(step graph.BuildStep) []string {
	argv := append([]string{}, b.expand("cxx")...)
	argv = append(argv, "-shared")
	argv = append(argv, step.Inputs...)
	argv = append(argv, "-o", step.Output)
	return argv
}

func (b *Builder) buildAR(step graph.BuildStep) []string {
	// "ar" is not a definable key (spec §3 only defines cc, cxx, cflags,
	// cxxflags, ldflags, ldlibs) — the archiver name is the literal
	// program, not something a manifest can override.
	argv := []string{"ar", "rcs", step.Output}
	argv = append(argv, step.Inputs...)
	return argv
}
