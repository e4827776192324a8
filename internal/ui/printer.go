// Package ui renders operator-facing output: colored status markers and the
// instance table. Colors are dropped automatically when the writer is not a
// terminal.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorCyan   = lipgloss.Color("#06b6d4")
)

// Printer writes status lines to an output stream
type Printer struct {
	out io.Writer

	success lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
	accent  lipgloss.Style
}

// NewPrinter creates a Printer bound to out
func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:     out,
		success: r.NewStyle().Foreground(colorGreen),
		warn:    r.NewStyle().Foreground(colorYellow),
		fail:    r.NewStyle().Foreground(colorRed),
		accent:  r.NewStyle().Foreground(colorCyan),
	}
}

// Writer returns the underlying output stream
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Info prints a plain progress line
func (p *Printer) Info(format string, args ...interface{}) {
	fmt.Fprintf(p.out, " [+] "+format+"\n", args...)
}

// Success prints a green line
func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.success.Render(fmt.Sprintf(format, args...)))
}

// Warn prints a yellow line
func (p *Printer) Warn(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.warn.Render(fmt.Sprintf(" [-] "+format, args...)))
}

// Error prints a red line
func (p *Printer) Error(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.fail.Render(fmt.Sprintf(format, args...)))
}

// Accent highlights a value such as an IP address
func (p *Printer) Accent(s string) string {
	return p.accent.Render(s)
}

// Progress prints without a trailing newline, used for poll dots
func (p *Printer) Progress(s string) {
	fmt.Fprint(p.out, s)
}

// Newline ends a progress line
func (p *Printer) Newline() {
	fmt.Fprintln(p.out)
}

// SSHCommand prints a ready-to-use SSH invocation
func (p *Printer) SSHCommand(cmd string) {
	fmt.Fprintf(p.out, "\nSSH into your droplet:\n\n   %s\n\n", cmd)
}
