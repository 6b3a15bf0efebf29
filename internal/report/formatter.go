package report

import (
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/ailint-dev/ailint/domain"
)

// UnknownFile is the bucket for diagnostics without a file path
const UnknownFile = "<unknown>"

// Formatter renders a diagnostic stream in one output encoding. Render is
// called once per diagnostic as it arrives; Flush is called exactly once at
// end-of-run with the full buffered set. The immediate formatter (logfmt)
// does its work in Render and no-ops in Flush; the buffering formatters
// (file-digest, yaml) do the opposite.
type Formatter interface {
	Render(w io.Writer, d domain.Diagnostic)
	Flush(w io.Writer, diags []domain.Diagnostic) error
}

// NewFormatter creates the formatter for the requested output format
func NewFormatter(format domain.OutputFormat) (Formatter, error) {
	switch format {
	case domain.OutputFormatLogfmt:
		return &LogfmtFormatter{}, nil
	case domain.OutputFormatFileDigest:
		return &FileDigestFormatter{}, nil
	case domain.OutputFormatYAML:
		return &YAMLFormatter{}, nil
	default:
		return nil, domain.NewUnsupportedFormatError(string(format))
	}
}

// levelColor maps severities to terminal colors. Colors are disabled
// automatically on non-TTY output and under NO_COLOR.
func levelColor(s domain.Severity) *color.Color {
	switch s {
	case domain.SeverityError:
		return color.New(color.FgRed)
	case domain.SeverityWarning:
		return color.New(color.FgYellow)
	case domain.SeverityInfo:
		return color.New(color.FgBlue)
	default:
		return color.New(color.FgHiBlack)
	}
}

// displayPath shortens a path relative to the working directory when
// possible and substitutes the unknown bucket for empty paths.
func displayPath(file string) string {
	if file == "" {
		return UnknownFile
	}
	cwd, err := os.Getwd()
	if err != nil {
		return file
	}
	if rel, err := filepath.Rel(cwd, file); err == nil && !filepath.IsAbs(rel) && rel != ".." && !isParentRef(rel) {
		return rel
	}
	return file
}

func isParentRef(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}
