// Package tui is the interactive todo browser behind `show -i`.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Options configure the browser.
type Options struct {
	Theme  string
	NewID  model.IDFunc
	Input  io.Reader
	Output io.Writer
}

// listItem adapts model.Todo to bubbles/list.Item
type listItem struct{ todo model.Todo }

func (i listItem) Title() string       { return i.todo.Text }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.todo.Text }

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
)

// Model is the Bubble Tea model for the browser.
type Model struct {
	list    list.Model
	ti      textinput.Model // shared by add & edit
	theme   ui.Theme
	newID   model.IDFunc
	mode    mode
	editIdx int
	inErr   string
	changed bool
	width   int
	height  int
}

// Custom delegate to control how items render (single line)
type itemDelegate struct{ theme ui.Theme }

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	text := it.todo.Text
	if it.todo.Completed {
		text = d.theme.Done.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = d.theme.Accent.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s", prefix, d.theme.Marker(it.todo.Completed), text)
}

var (
	addKey    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editKey   = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	toggleKey = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	deleteKey = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
)

// New builds the browser over items. items is copied.
func New(items []model.Todo, opts Options) Model {
	theme := ui.NewTheme(opts.Theme, nil)
	li := make([]list.Item, 0, len(items))
	for _, t := range items {
		li = append(li, listItem{todo: t})
	}

	l := list.New(li, itemDelegate{theme: theme}, 0, 0)
	l.Title = header(theme, items)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = theme.Title
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{toggleKey, addKey, editKey, deleteKey}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	newID := opts.NewID
	if newID == nil {
		newID = model.NewID
	}
	return Model{list: l, ti: ti, theme: theme, newID: newID, width: 80, height: 24}
}

func header(t ui.Theme, items []model.Todo) string {
	c := model.Stats(items)
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymOK), c.Completed,
		t.Pending.Render(t.SymPending), c.Pending,
		t.Accent.Render("Total"), c.Total,
	)
}

// Items returns the current list in display order.
func (m Model) Items() []model.Todo {
	out := make([]model.Todo, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		if li, ok := it.(listItem); ok {
			out = append(out, li.todo)
		}
	}
	return out
}

// Changed reports whether any edit happened.
func (m Model) Changed() bool { return m.changed }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}
	if m.mode != modeBrowse {
		return m.updateInput(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok || m.list.FilterState() == list.Filtering {
		return m.passToList(msg)
	}
	switch km.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc":
		if m.list.FilterState() == list.FilterApplied {
			return m.passToList(msg)
		}
		return m, tea.Quit
	case " ":
		if li, i, ok := m.selected(); ok {
			li.todo.Completed = !li.todo.Completed
			m.list.SetItem(i, li)
			m.touch()
		}
		return m, nil
	case "d":
		if _, i, ok := m.selected(); ok {
			m.list.RemoveItem(i)
			m.touch()
		}
		return m, nil
	case "a":
		m.startInput(modeAdd, "", "New todo...")
		return m, textinput.Blink
	case "e":
		if li, i, ok := m.selected(); ok {
			m.editIdx = i
			m.startInput(modeEdit, li.todo.Text, "Edit todo...")
			return m, textinput.Blink
		}
		return m, nil
	}
	return m.passToList(msg)
}

func (m Model) passToList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			text := strings.TrimSpace(m.ti.Value())
			if text == "" {
				m.inErr = model.ErrEmptyText.Error()
				return m, nil
			}
			if m.mode == modeAdd {
				idx := 0
				if n := len(m.list.Items()); n > 0 {
					idx = min(m.list.GlobalIndex()+1, n)
				}
				m.list.InsertItem(idx, listItem{todo: model.Todo{ID: m.newID(), Text: text}})
			} else if m.editIdx >= 0 && m.editIdx < len(m.list.Items()) {
				if li, ok := m.list.Items()[m.editIdx].(listItem); ok {
					li.todo.Text = text
					m.list.SetItem(m.editIdx, li)
				}
			}
			m.touch()
			m.stopInput()
			return m, nil
		case "esc":
			m.stopInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) selected() (listItem, int, bool) {
	li, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return listItem{}, -1, false
	}
	return li, m.list.GlobalIndex(), true
}

func (m *Model) touch() {
	m.changed = true
	m.list.Title = header(m.theme, m.Items())
}

func (m *Model) startInput(md mode, value, placeholder string) {
	m.mode = md
	m.inErr = ""
	m.ti.SetValue(value)
	m.ti.CursorEnd()
	m.ti.Placeholder = placeholder
	m.ti.Focus()
	m.resize()
}

func (m *Model) stopInput() {
	m.mode = modeBrowse
	m.inErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

func (m *Model) resize() {
	h := m.height - 4
	if m.mode != modeBrowse {
		h -= 4
	}
	m.list.SetSize(max(m.width-4, 10), max(h, 3))
}

func (m Model) View() string {
	content := m.list.View()
	if m.mode != modeBrowse {
		title := "Add todo"
		if m.mode == modeEdit {
			title = "Edit todo"
		}
		if m.inErr != "" {
			title += "  " + m.theme.Error.Render(m.inErr)
		}
		bar := lipgloss.NewStyle().
			Border(m.theme.Border).
			BorderForeground(m.theme.BorderColor).
			Padding(0, 1)
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	}
	return m.theme.Frame.Render(content)
}

// Run shows the browser until the user quits and returns the resulting list
// and whether it differs from the input.
func Run(items []model.Todo, opts Options) ([]model.Todo, bool, error) {
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	final, err := tea.NewProgram(New(items, opts), progOpts...).Run()
	if err != nil {
		return items, false, fmt.Errorf("tui: %w", err)
	}
	fm, ok := final.(Model)
	if !ok || !fm.changed {
		return items, false, nil
	}
	return fm.Items(), true, nil
}
