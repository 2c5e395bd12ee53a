package app

import (
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// progressReporter wraps a terminal progress bar, becoming a no-op when
// the output stream isn't a TTY (piped logs, CI), -no-color is set, the
// run is a dry run, or the build has nothing to show progress for.
type progressReporter struct {
	bar *progressbar.ProgressBar
}

func (a *App) newProgress(total int) *progressReporter {
	if total == 0 || a.config.DryRun || a.config.NoColor || !a.ttyOutput() {
		return &progressReporter{}
	}
	return &progressReporter{
		bar: progressbar.NewOptions(total,
			progressbar.OptionSetWriter(a.outW),
			progressbar.OptionSetDescription("building"),
			progressbar.OptionClearOnFinish(),
		),
	}
}

func (p *progressReporter) add(n int) {
	if p == nil || p.bar == nil {
		return
	}
	_ = p.bar.Add(n)
}

func (p *progressReporter) finish() {
	if p == nil || p.bar == nil {
		return
	}
	_ = p.bar.Finish()
}

// ttyOutput reports whether a's output stream is a terminal. Only
// os.Stdout can meaningfully answer this; an App writing to a file or
// an in-memory buffer (as tests do) always reports false.
func (a *App) ttyOutput() bool {
	f, ok := a.outW.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
