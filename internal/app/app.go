// Package app wires catalyst's core components (graph, manifest,
// binary cache, staleness oracle, scheduler, command builder) into the
// single entrypoint the CLI calls, decoupled from flag parsing itself.
package app

import (
	"io"
	"log/slog"

	"github.com/catalystbuild/catalyst/internal/statcache"
)

// App holds the dependencies and configuration for one catalyst
// invocation.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config

	cache     *statcache.Cache
	resources []io.Closer

	// colorEnabled gates colorized step announcements. It's computed
	// once at construction from outW, independent of config.NoColor
	// (which is the user's explicit override).
	colorEnabled bool
}

// NewApp constructs an App with its own isolated logger, writing build
// output and logs to outW.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	a := &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		cache:  statcache.New(),
	}
	a.colorEnabled = a.ttyOutput()
	return a
}

// Close releases every memory-mapped resource (manifest, binary cache)
// the App opened over its lifetime. Call after Run returns.
func (a *App) Close() error {
	var first error
	for _, r := range a.resources {
		if err := r.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.resources = nil
	return first
}
