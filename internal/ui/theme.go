package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending, Done lipgloss.Style

	BoxUnchecked, BoxChecked string
	SymOK, SymFail, SymWarn  string
	SymPending               string
	Border                   lipgloss.Border
	BorderColor              lipgloss.TerminalColor

	// Frame is the bordered box used for panels.
	Frame lipgloss.Style
}

// NewTheme builds the named theme (classic, neon or mono) against r.
// Unknown names fall back to classic.
func NewTheme(name string, r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	t := baseTheme(name, r)
	t.Frame = r.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
	return t
}

func baseTheme(name string, r *lipgloss.Renderer) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:    "neon",
			Title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
			Accent:  r.NewStyle().Foreground(lipgloss.Color("14")),
			Success: r.NewStyle().Foreground(lipgloss.Color("10")),
			Error:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending: r.NewStyle().Foreground(lipgloss.Color("11")),
			Done:    r.NewStyle().Faint(true).Strikethrough(true),

			BoxUnchecked: "◻", BoxChecked: "◼",
			SymOK: "✔", SymFail: "✖", SymWarn: "!", SymPending: "•",
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("13"),
		}
	case "mono":
		plain := r.NewStyle()
		return Theme{
			Name:  "mono",
			Title: plain, Muted: plain, Accent: plain,
			Success: plain, Error: plain, Pending: plain, Done: plain,

			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			SymOK: "ok", SymFail: "error:", SymWarn: "warning:", SymPending: "-",
			Border:      lipgloss.ASCIIBorder(),
			BorderColor: lipgloss.NoColor{},
		}
	default: // classic
		return Theme{
			Name:    "classic",
			Title:   r.NewStyle().Bold(true),
			Muted:   r.NewStyle().Faint(true),
			Accent:  r.NewStyle().Foreground(lipgloss.Color("12")),
			Success: r.NewStyle().Foreground(lipgloss.Color("42")),
			Error:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending: r.NewStyle().Foreground(lipgloss.Color("214")),
			Done:    r.NewStyle().Faint(true).Strikethrough(true),

			BoxUnchecked: "[ ]", BoxChecked: "[✔]",
			SymOK: "✔", SymFail: "✖", SymWarn: "!", SymPending: "✗",
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("8"),
		}
	}
}

// Marker returns the styled status box for a todo.
func (t Theme) Marker(completed bool) string {
	if completed {
		return t.Success.Render(t.BoxChecked)
	}
	return t.Error.Render(t.BoxUnchecked)
}
