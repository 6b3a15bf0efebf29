package service

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/ailint-dev/ailint/domain"
)

// NewProgressManager returns a terminal progress manager when stderr can
// redraw a progress line, and a no-op manager otherwise. Progress is drawn
// on stderr so it never mixes with diagnostic output on stdout.
func NewProgressManager(enabled bool) domain.ProgressManager {
	if enabled && interactiveTerminal() {
		return &termProgressManager{out: os.Stderr}
	}
	return &NoOpProgressManager{}
}

// interactiveTerminal reports whether stderr is attached to a terminal.
// CI environments and dumb terminals are treated as non-interactive even
// when a TTY is present.
func interactiveTerminal() bool {
	if os.Getenv("CI") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// termProgressManager draws a single progress line across the lint run's
// target loop. A run has one task at a time; starting a new task finishes
// the previous bar first.
type termProgressManager struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

// StartTask begins a new progress line over total targets
func (pm *termProgressManager) StartTask(description string, total int) domain.TaskProgress {
	if pm.bar != nil {
		_ = pm.bar.Finish()
	}
	pm.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(pm.out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	return &termTaskProgress{bar: pm.bar}
}

// IsInteractive reports that progress is being drawn
func (pm *termProgressManager) IsInteractive() bool {
	return true
}

// Close finishes and clears any active progress line
func (pm *termProgressManager) Close() {
	if pm.bar != nil {
		_ = pm.bar.Finish()
		pm.bar = nil
	}
}

// termTaskProgress advances the bar as targets complete. Describe shows
// the skill or project currently being linted.
type termTaskProgress struct {
	bar *progressbar.ProgressBar
}

func (tp *termTaskProgress) Increment(n int) {
	_ = tp.bar.Add(n)
}

func (tp *termTaskProgress) Describe(description string) {
	tp.bar.Describe(description)
}

func (tp *termTaskProgress) Complete() {
	_ = tp.bar.Finish()
}

// NoOpProgressManager is used when no terminal is attached or progress is
// suppressed with --quiet
type NoOpProgressManager struct{}

func (pm *NoOpProgressManager) StartTask(_ string, _ int) domain.TaskProgress {
	return &NoOpTaskProgress{}
}

func (pm *NoOpProgressManager) IsInteractive() bool {
	return false
}

func (pm *NoOpProgressManager) Close() {}

// NoOpTaskProgress discards all progress updates
type NoOpTaskProgress struct{}

func (tp *NoOpTaskProgress) Increment(_ int) {}

func (tp *NoOpTaskProgress) Describe(_ string) {}

func (tp *NoOpTaskProgress) Complete() {}
