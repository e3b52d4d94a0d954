// Package ui writes mergerfs-consolidate's standard output.
//
// Plan lines are written verbatim so the output of a dry run can be fed
// to a shell. Diagnostics are written as shell comments, optionally
// styled when stdout is a color terminal.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/magma1447/mergerfs-tools/pkg/errors"
	"github.com/magma1447/mergerfs-tools/pkg/ui/output/styles"
)

// CommentPrefix starts every diagnostic line
const CommentPrefix = "# "

// Printer writes whole lines to an output stream
type Printer struct {
	out    io.Writer
	format Format
}

// NewPrinter creates a printer. FormatAuto is resolved against out when
// it is a file, and falls back to plain text otherwise.
func NewPrinter(out io.Writer, format Format) *Printer {
	if format == FormatAuto {
		format = FormatText
		if f, ok := out.(*os.File); ok {
			format = DetectFormat(f)
		}
	}
	return &Printer{out: out, format: format}
}

// Format returns the resolved output format
func (p *Printer) Format() Format {
	return p.format
}

// Line writes s unchanged followed by a newline
func (p *Printer) Line(s string) error {
	return p.write(s + "\n")
}

// Comment writes a diagnostic line. Invalid UTF-8 in the message is
// escaped.
func (p *Printer) Comment(format string, args ...interface{}) error {
	return p.styled("Muted", CommentPrefix+DisplayText(fmt.Sprintf(format, args...)))
}

// Warn writes a diagnostic line in the warning style
func (p *Printer) Warn(format string, args ...interface{}) error {
	return p.styled("Warning", CommentPrefix+DisplayText(fmt.Sprintf(format, args...)))
}

func (p *Printer) styled(style, line string) error {
	if p.format == FormatTerminal {
		line = styles.GetStyle(style).Render(line)
	}
	return p.write(line + "\n")
}

func (p *Printer) write(s string) error {
	if _, err := io.WriteString(p.out, s); err != nil {
		return errors.Wrap(err, errors.ErrOutput, "failed to write output")
	}
	return nil
}
