package report

import (
	"fmt"
	"io"

	"github.com/ailint-dev/ailint/domain"
)

// LogfmtFormatter renders each diagnostic immediately as a single
// key="value" line, preserving arrival order. Flush is a no-op.
type LogfmtFormatter struct{}

// Render writes one logfmt line for the diagnostic
func (f *LogfmtFormatter) Render(w io.Writer, d domain.Diagnostic) {
	line := fmt.Sprintf("level=%q rule=%q path=%q", string(d.Severity), string(d.Rule), displayPath(d.File))
	if d.Line > 0 {
		line += fmt.Sprintf(" line=\"%d\"", d.Line)
	}
	line += fmt.Sprintf(" message=%q", d.Message)

	levelColor(d.Severity).Fprintln(w, line)
}

// Flush is a no-op; every diagnostic was already emitted
func (f *LogfmtFormatter) Flush(w io.Writer, diags []domain.Diagnostic) error {
	return nil
}
