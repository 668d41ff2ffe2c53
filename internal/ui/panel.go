package ui

import (
	"fmt"
	"strings"

	"github.com/idilsaglam/todoprompt/internal/model"
)

const maxTitleWidth = 80

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel draws a framed box around lines.
func (t Theme) Panel(lines []string) string {
	border := t.Muted.
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Faint(false)
	return border.Render(strings.Join(lines, "\n"))
}

// Header is the title line with done/pending/total counts.
func (t Theme) Header(list model.List) string {
	d, p := list.Stats()
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), p,
		t.Accent.Render("Total"), len(list),
	)
}

// Box is the themed checkbox for a todo.
func (t Theme) Box(td model.Todo) string {
	if td.Done {
		return t.Success.Render(t.BoxChecked)
	}
	return t.Muted.Render(t.BoxUnchecked)
}

// TodoLine renders one numbered entry with its short id.
func (t Theme) TodoLine(index int, td model.Todo) string {
	msg := td.Message
	if r := []rune(msg); len(r) > maxTitleWidth {
		msg = string(r[:maxTitleWidth-3]) + "..."
	}
	if td.Done {
		msg = t.Done.Render(msg)
	}
	return fmt.Sprintf("%s %s %s %s",
		t.Muted.Render(fmt.Sprintf("%2d.", index)),
		t.Box(td),
		msg,
		t.Muted.Render("#"+td.ShortID()),
	)
}

// ListPanel renders the whole list the way `list` shows it.
func (t Theme) ListPanel(list model.List) string {
	d, _ := list.Stats()
	lines := []string{
		t.Header(list),
		t.Muted.Render(ProgressBar(d, len(list), 28)),
		"",
	}
	if len(list) == 0 {
		lines = append(lines, t.Muted.Render("no todos"))
	}
	for i, td := range list {
		lines = append(lines, t.TodoLine(i+1, td))
	}
	return t.Panel(lines)
}

// GroupedPanel renders pending todos then done ones. Entries keep their
// list position so the numbers still address them.
func (t Theme) GroupedPanel(list model.List) string {
	d, _ := list.Stats()
	lines := []string{
		t.Header(list),
		t.Muted.Render(ProgressBar(d, len(list), 28)),
	}
	for _, done := range []bool{false, true} {
		title := "Pending"
		if done {
			title = "Done"
		}
		lines = append(lines, "", t.Accent.Render(title))
		n := 0
		for i, td := range list {
			if td.Done == done {
				lines = append(lines, t.TodoLine(i+1, td))
				n++
			}
		}
		if n == 0 {
			lines = append(lines, t.Muted.Render("(none)"))
		}
	}
	return t.Panel(lines)
}
