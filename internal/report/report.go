// Package report prints operator-facing status lines. Each line starts with a
// glyph that tells the operator at a glance what happened to a file.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes status lines to an underlying writer.
type Printer struct {
	w      io.Writer
	green  *color.Color
	yellow *color.Color
	cyan   *color.Color
	red    *color.Color
}

// New returns a Printer writing to w. When noColor is set, no ANSI escapes
// are emitted regardless of the terminal.
func New(w io.Writer, noColor bool) *Printer {
	p := &Printer{
		w:      w,
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		cyan:   color.New(color.FgCyan),
		red:    color.New(color.FgRed),
	}
	if noColor {
		for _, c := range []*color.Color{p.green, p.yellow, p.cyan, p.red} {
			c.DisableColor()
		}
	}
	return p
}

// Created reports a file or change that was applied.
func (p *Printer) Created(format string, args ...any) {
	fmt.Fprintf(p.w, "✅ %s\n", p.green.Sprintf(format, args...))
}

// Warn reports a skipped step the operator should know about.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintf(p.w, "⚠️  %s\n", p.yellow.Sprintf(format, args...))
}

// Info reports a no-op or neutral fact.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintf(p.w, "ℹ️  %s\n", fmt.Sprintf(format, args...))
}

// Fail reports a failed step.
func (p *Printer) Fail(format string, args ...any) {
	fmt.Fprintf(p.w, "❌ %s\n", p.red.Sprintf(format, args...))
}

// Step prints a section heading such as "Installing dependencies...".
func (p *Printer) Step(format string, args ...any) {
	fmt.Fprintf(p.w, "\n%s\n", p.cyan.Sprintf(format, args...))
}

// Plain prints an unadorned line.
func (p *Printer) Plain(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}
