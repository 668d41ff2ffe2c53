// Package tui is a full-screen list browser over a todo store.
// Every change goes straight to the store and the list is read back
// afterwards; nothing is kept between operations.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todoprompt/internal/model"
	"github.com/idilsaglam/todoprompt/internal/store"
	"github.com/idilsaglam/todoprompt/internal/ui"
)

// listItem adapts a todo to bubbles/list.Item.
type listItem struct {
	todo model.Todo
}

func (i listItem) FilterValue() string { return i.todo.Message }

// itemDelegate renders one todo per line.
type itemDelegate struct {
	theme ui.Theme
}

func (d itemDelegate) Height() int                         { return 1 }
func (d itemDelegate) Spacing() int                        { return 0 }
func (d itemDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	text := it.todo.Message
	if it.todo.Done {
		text = d.theme.Done.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = d.theme.Selected.Render(">") + " "
	}
	fmt.Fprintf(w, "%s%s %s %s", prefix, d.theme.Box(it.todo), text, d.theme.Muted.Render("#"+it.todo.ShortID()))
}

type loadedMsg struct {
	list model.List
	note string
}

type errMsg struct{ err error }

type keyMap struct {
	done, remove, add, clear, reload key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		done:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done")),
		remove: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove")),
		add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	}
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{k.done, k.remove, k.add, k.clear, k.reload}
}

// Model is the Bubble Tea model of the browser.
type Model struct {
	ctx   context.Context
	store store.Store
	theme ui.Theme
	keys  keyMap

	list   list.Model
	ti     textinput.Model
	adding bool
	addErr string

	todos  model.List
	status string
	err    error
}

// New builds the browser model. The list is loaded by Init.
func New(ctx context.Context, s store.Store, theme ui.Theme) Model {
	keys := newKeyMap()

	l := list.New(nil, itemDelegate{theme: theme}, 0, 0)
	l.Title = "Todos"
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = theme.Title
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")
	l.AdditionalShortHelpKeys = keys.bindings
	l.AdditionalFullHelpKeys = keys.bindings

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New todo..."
	ti.CharLimit = 200

	return Model{
		ctx:   ctx,
		store: s,
		theme: theme,
		keys:  keys,
		list:  l,
		ti:    ti,
	}
}

// Run starts the browser on in/out and blocks until the user quits.
func Run(ctx context.Context, s store.Store, theme ui.Theme, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(New(ctx, s, theme),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}

func (m Model) Init() tea.Cmd { return m.reload("") }

func (m Model) reload(note string) tea.Cmd {
	s, ctx := m.store, m.ctx
	return func() tea.Msg {
		l, err := s.List(ctx)
		if err != nil {
			return errMsg{err}
		}
		return loadedMsg{list: l, note: note}
	}
}

// mutate runs one store operation then reads the list back.
func (m Model) mutate(fn func(context.Context, store.Store) (string, error)) tea.Cmd {
	s, ctx := m.store, m.ctx
	return func() tea.Msg {
		note, err := fn(ctx, s)
		if err != nil {
			return errMsg{err}
		}
		l, err := s.List(ctx)
		if err != nil {
			return errMsg{err}
		}
		return loadedMsg{list: l, note: note}
	}
}

func countNote(n int64, ok string) string {
	if n == 0 {
		return "could not find that todo"
	}
	return ok
}

func (m Model) selected() (model.Todo, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Todo{}, false
	}
	return it.todo, true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-6)
		return m, nil
	case loadedMsg:
		m.todos = msg.list
		m.status = msg.note
		m.err = nil
		items := make([]list.Item, 0, len(msg.list))
		for _, t := range msg.list {
			items = append(items, listItem{todo: t})
		}
		return m, m.list.SetItems(items)
	case errMsg:
		m.err = msg.err
		return m, nil
	}

	if m.adding {
		return m.updateAdding(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case km.String() == "q" || km.String() == "esc" || km.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(km, m.keys.add):
		m.adding = true
		m.addErr = ""
		m.ti.SetValue("")
		return m, m.ti.Focus()
	case key.Matches(km, m.keys.reload):
		return m, m.reload("reloaded")
	case key.Matches(km, m.keys.clear):
		return m, m.mutate(func(ctx context.Context, s store.Store) (string, error) {
			return "list cleared", s.Clear(ctx)
		})
	case key.Matches(km, m.keys.done):
		t, ok := m.selected()
		if !ok || t.Done {
			return m, nil
		}
		return m, m.mutate(func(ctx context.Context, s store.Store) (string, error) {
			n, err := s.MarkDone(ctx, t.ID)
			return countNote(n, "marked done"), err
		})
	case key.Matches(km, m.keys.remove):
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.mutate(func(ctx context.Context, s store.Store) (string, error) {
			n, err := s.Remove(ctx, t.ID)
			return countNote(n, "removed"), err
		})
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			todo, err := model.New(m.ti.Value())
			if err != nil {
				m.addErr = "Please input a valid todo."
				return m, nil
			}
			m.adding = false
			m.ti.SetValue("")
			m.ti.Blur()
			return m, m.mutate(func(ctx context.Context, s store.Store) (string, error) {
				return "added", s.Add(ctx, todo)
			})
		case "esc":
			m.adding = false
			m.ti.SetValue("")
			m.ti.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Header(m.todos))
	b.WriteString("\n")
	b.WriteString(m.list.View())
	if m.adding {
		title := "Add new todo"
		if m.addErr != "" {
			title += " - " + m.theme.Error.Render(m.addErr)
		}
		bar := m.theme.Muted.UnsetFaint().
			Border(m.theme.Border).
			BorderForeground(m.theme.BorderColor).
			Padding(0, 1)
		b.WriteString("\n")
		b.WriteString(bar.Render(title + "\n" + m.ti.View()))
	}
	switch {
	case m.err != nil:
		b.WriteString("\n" + m.theme.Fail(m.err.Error()))
	case m.status != "":
		b.WriteString("\n" + m.theme.Muted.Render(m.status))
	}
	return m.theme.Panel([]string{b.String()})
}
