package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box border.
// Styles are bound to the renderer of one output, so color is only
// emitted when that output is a terminal.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending, Done, Selected lipgloss.Style

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
	SymOK, SymFail, SymWarn  string

	Border      lipgloss.Border
	BorderColor lipgloss.TerminalColor
}

// NewTheme builds the named theme for output w. Unknown names fall back to
// classic.
func NewTheme(name string, w io.Writer) Theme {
	r := lipgloss.NewRenderer(w)
	plain := r.NewStyle()

	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:         "neon",
			Title:        plain.Bold(true).Foreground(lipgloss.Color("13")),
			Muted:        plain.Faint(true),
			Accent:       plain.Foreground(lipgloss.Color("14")),
			Success:      plain.Foreground(lipgloss.Color("10")),
			Error:        plain.Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      plain.Foreground(lipgloss.Color("11")),
			Done:         plain.Faint(true).Strikethrough(true),
			Selected:     plain.Bold(true).Foreground(lipgloss.Color("13")),
			BoxUnchecked: "◻", BoxChecked: "◼",
			SymDone: "✔", SymPending: "•",
			SymOK: "✔", SymFail: "✖", SymWarn: "!",
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("13"),
		}
	case "mono":
		return Theme{
			Name:  "mono",
			Title: plain, Muted: plain, Accent: plain, Success: plain,
			Error: plain, Pending: plain, Done: plain, Selected: plain,
			BoxUnchecked: "[ ]", BoxChecked: "[X]",
			SymDone: "x", SymPending: "-",
			SymOK: "ok:", SymFail: "error:", SymWarn: "warning:",
			Border:      lipgloss.NormalBorder(),
			BorderColor: lipgloss.NoColor{},
		}
	default: // classic
		return Theme{
			Name:         "classic",
			Title:        plain.Bold(true),
			Muted:        plain.Faint(true),
			Accent:       plain.Foreground(lipgloss.Color("12")),
			Success:      plain.Foreground(lipgloss.Color("42")),
			Error:        plain.Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      plain.Foreground(lipgloss.Color("214")),
			Done:         plain.Faint(true).Strikethrough(true),
			Selected:     plain.Bold(true).Reverse(true),
			BoxUnchecked: "☐", BoxChecked: "☑",
			SymDone: "✔", SymPending: "•",
			SymOK: "✔", SymFail: "✖", SymWarn: "!",
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("8"),
		}
	}
}

func (t Theme) OK(msg string) string   { return t.Success.Render(t.SymOK + " " + msg) }
func (t Theme) Fail(msg string) string { return t.Error.Render(t.SymFail + " " + msg) }
func (t Theme) Warn(msg string) string { return t.Pending.Render(t.SymWarn + " " + msg) }
