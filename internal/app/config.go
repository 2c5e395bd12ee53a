package app

import "errors"

// Config holds everything a single catalyst invocation needs, gathered
// from CLI flags by internal/cli.
type Config struct {
	WorkingDir   string // chdir target before anything else; "" means unchanged
	ManifestPath string // default "catalyst.build"

	Jobs   int // 0 means hardware concurrency
	DryRun bool
	Clean  bool

	CompDBPath string // non-empty: emit compile_commands.json here and exit
	GraphPath  string // non-empty: emit a DOT file here and exit

	LogFormat string
	LogLevel  string
	NoColor   bool
}

// NewConfig validates cfg and returns it wrapped, or an error describing
// the first invalid combination found.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" {
		cfg.ManifestPath = "catalyst.build"
	}
	if cfg.Jobs < 0 {
		return nil, errors.New("Jobs must be >= 0 (0 means hardware concurrency)")
	}
	if cfg.Clean && (cfg.CompDBPath != "" || cfg.GraphPath != "") {
		return nil, errors.New("-clean is exclusive with -compdb and -graph")
	}
	if cfg.CompDBPath != "" && cfg.GraphPath != "" {
		return nil, errors.New("-compdb and -graph are exclusive")
	}
	return &cfg, nil
}
