// Package ui renders user-facing status lines. Styling is applied only when
// the destination is a terminal that supports it.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes styled status lines to W.
type Printer struct {
	W io.Writer

	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
}

// NewPrinter returns a Printer whose color profile matches w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		W:       w,
		success: r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		warning: r.NewStyle().Foreground(lipgloss.Color("3")),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		muted:   r.NewStyle().Faint(true),
	}
}

// Success prints a success line.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.W, p.success.Render("✓ "+fmt.Sprintf(format, args...)))
}

// Warning prints a warning line.
func (p *Printer) Warning(format string, args ...any) {
	fmt.Fprintln(p.W, p.warning.Render("⚠ "+fmt.Sprintf(format, args...)))
}

// Failure prints a failure line.
func (p *Printer) Failure(format string, args ...any) {
	fmt.Fprintln(p.W, p.failure.Render("✗ "+fmt.Sprintf(format, args...)))
}

// Line prints an unstyled line.
func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.W, format+"\n", args...)
}

// Detail prints an indented, de-emphasized line.
func (p *Printer) Detail(format string, args ...any) {
	fmt.Fprintln(p.W, "  "+p.muted.Render(fmt.Sprintf(format, args...)))
}
