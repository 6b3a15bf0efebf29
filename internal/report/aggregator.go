package report

import (
	"io"

	"github.com/ailint-dev/ailint/domain"
)

// Aggregator collects diagnostics from all validators across all processed
// entry points. Every diagnostic is buffered in arrival order and counted;
// the minimum level filters display only, so totals (and max-warnings
// enforcement) are independent of what is shown. The aggregator and its
// formatter are owned by the single execution goroutine, so no locking is
// needed.
type Aggregator struct {
	formatter   Formatter
	writer      io.Writer
	minLevel    domain.Severity
	diagnostics []domain.Diagnostic
	warnings    int
	errors      int
}

// NewAggregator creates an aggregator rendering to w in the given format
func NewAggregator(format domain.OutputFormat, minLevel domain.Severity, w io.Writer) (*Aggregator, error) {
	formatter, err := NewFormatter(format)
	if err != nil {
		return nil, err
	}
	return &Aggregator{
		formatter: formatter,
		writer:    w,
		minLevel:  minLevel,
	}, nil
}

// Emit accepts diagnostics from a validator. Ownership transfers to the
// aggregator; the immediate formatter renders right away.
func (a *Aggregator) Emit(diags ...domain.Diagnostic) {
	for _, d := range diags {
		switch d.Severity {
		case domain.SeverityWarning:
			a.warnings++
		case domain.SeverityError:
			a.errors++
		}
		a.diagnostics = append(a.diagnostics, d)
		if a.shown(d) {
			a.formatter.Render(a.writer, d)
		}
	}
}

// shown reports whether the diagnostic clears the display level
func (a *Aggregator) shown(d domain.Diagnostic) bool {
	return d.Severity.Rank() <= a.minLevel.Rank()
}

// Warnings returns the running warning total
func (a *Aggregator) Warnings() int {
	return a.warnings
}

// Errors returns the running error total
func (a *Aggregator) Errors() int {
	return a.errors
}

// Diagnostics returns the buffered diagnostics in arrival order
func (a *Aggregator) Diagnostics() []domain.Diagnostic {
	return a.diagnostics
}

// Flush renders the buffered diagnostics that clear the display level. It
// is expected to be called exactly once at end-of-run; for the immediate
// formatter this is a no-op.
func (a *Aggregator) Flush() error {
	displayed := make([]domain.Diagnostic, 0, len(a.diagnostics))
	for _, d := range a.diagnostics {
		if a.shown(d) {
			displayed = append(displayed, d)
		}
	}
	return a.formatter.Flush(a.writer, displayed)
}
