package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/catalystbuild/catalyst/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated
// app.Config, a boolean indicating if the program should exit cleanly
// (e.g. -help), or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("catalyst", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
catalyst - a parallel, dependency-aware build executor.

Usage:
  catalyst [options] [path-to-manifest]

Options:
`)
		flagSet.PrintDefaults()
	}

	var dir, dirShort string
	flagSet.StringVar(&dir, "dir", "", "Working directory (chdir before anything else).")
	flagSet.StringVar(&dirShort, "C", "", "Working directory (shorthand).")

	var manifest, manifestShort string
	flagSet.StringVar(&manifest, "manifest", "", "Manifest path (default catalyst.build in the working directory).")
	flagSet.StringVar(&manifestShort, "f", "", "Manifest path (shorthand).")

	var jobs, jobsShort int
	flagSet.IntVar(&jobs, "jobs", 0, "Worker count. 0 means hardware concurrency.")
	flagSet.IntVar(&jobsShort, "j", 0, "Worker count (shorthand).")

	var dryRun, dryRunShort bool
	flagSet.BoolVar(&dryRun, "dry-run", false, "Print intended actions, run nothing.")
	flagSet.BoolVar(&dryRunShort, "n", false, "Print intended actions, run nothing (shorthand).")

	var clean, cleanShort bool
	flagSet.BoolVar(&clean, "clean", false, "Remove every step's output and exit.")
	flagSet.BoolVar(&cleanShort, "t", false, "Remove every step's output and exit (shorthand).")

	compDBFlag := flagSet.String("compdb", "", "Emit compile_commands.json to this path and exit.")
	graphFlag := flagSet.String("graph", "", "Emit a DOT file of the dependency graph to this path and exit.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	noColorFlag := flagSet.Bool("no-color", false, "Force-disable colorized and progress-bar output.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	workingDir := firstNonEmpty(dir, dirShort)
	manifestPath := firstNonEmpty(manifest, manifestShort)
	jobCount := firstNonZero(jobs, jobsShort)
	isDryRun := dryRun || dryRunShort
	isClean := clean || cleanShort

	if flagSet.NArg() > 0 {
		manifestPath = flagSet.Arg(0)
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		WorkingDir:   workingDir,
		ManifestPath: manifestPath,
		Jobs:         jobCount,
		DryRun:       isDryRun,
		Clean:        isClean,
		CompDBPath:   *compDBFlag,
		GraphPath:    *graphFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
		NoColor:      *noColorFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func firstNonZero(a, b int) int {
	if a != 0 {
		return a
	}
	return b
}
