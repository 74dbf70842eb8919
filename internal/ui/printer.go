package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes user-facing messages. Results go to Out, problems to Err.
type Printer struct {
	out, err io.Writer
	theme    Theme
}

// NewPrinter returns a Printer whose colors follow the capabilities of out.
func NewPrinter(out, err io.Writer, theme string) *Printer {
	if out == nil {
		out = os.Stdout
	}
	if err == nil {
		err = os.Stderr
	}
	return &Printer{
		out:   out,
		err:   err,
		theme: NewTheme(theme, lipgloss.NewRenderer(out)),
	}
}

// Theme returns the active theme.
func (p *Printer) Theme() Theme { return p.theme }

// Out returns the result writer.
func (p *Printer) Out() io.Writer { return p.out }

func (p *Printer) OK(msg string) {
	fmt.Fprintln(p.out, p.theme.Success.Render(p.theme.SymOK+" "+msg))
}

func (p *Printer) Fail(msg string) {
	fmt.Fprintln(p.err, p.theme.Error.Render(p.theme.SymFail+" "+msg))
}

func (p *Printer) Warn(msg string) {
	fmt.Fprintln(p.err, p.theme.Pending.Render(p.theme.SymWarn+" "+msg))
}

// Info prints a neutral notice such as an empty result.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.out, p.theme.Pending.Render(msg))
}

// Hint follows a Fail with a muted suggestion.
func (p *Printer) Hint(msg string) {
	fmt.Fprintln(p.err, p.theme.Muted.Render("Hint: "+msg))
}

func (p *Printer) Println(s string) {
	fmt.Fprintln(p.out, s)
}

// Panel draws a framed box using the current theme.
func (p *Printer) Panel(lines []string) {
	fmt.Fprintln(p.out, p.theme.PanelString(lines))
}
