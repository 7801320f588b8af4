package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Checkbox is a full-screen-free multi-select list rendered with bubbletea.
type Checkbox struct {
	In  io.Reader
	Out io.Writer
}

// Select runs the checkbox UI until the operator confirms or cancels.
func (c *Checkbox) Select(ctx context.Context, choices []string) ([]string, error) {
	m := newCheckboxModel(Message, choices)

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if c.In != nil {
		opts = append(opts, tea.WithInput(c.In))
	}
	if c.Out != nil {
		opts = append(opts, tea.WithOutput(c.Out))
	}

	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil, ErrCancelled
		}
		return nil, fmt.Errorf("running event selection: %w", err)
	}

	result := final.(checkboxModel)
	if result.cancelled {
		return nil, ErrCancelled
	}
	return result.Selected(), nil
}

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	All     key.Binding
	Confirm key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.All, k.Confirm, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultKeys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle:  key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
	All:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all")),
	Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Quit:    key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4D96FF"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4D96FF"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6BCB77"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// checkboxModel keeps the selection as a list of indices in the order they
// were toggled on.
type checkboxModel struct {
	title     string
	choices   []string
	cursor    int
	order     []int
	done      bool
	cancelled bool
	keys      keyMap
	help      help.Model
}

func newCheckboxModel(title string, choices []string) checkboxModel {
	return checkboxModel{
		title:   title,
		choices: choices,
		keys:    defaultKeys,
		help:    help.New(),
	}
}

func (m checkboxModel) Init() tea.Cmd { return nil }

func (m checkboxModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Confirm):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			m.toggle(m.cursor)
		case key.Matches(msg, m.keys.All):
			m.toggleAll()
		}
	}
	return m, nil
}

func (m *checkboxModel) toggle(i int) {
	for pos, idx := range m.order {
		if idx == i {
			m.order = append(m.order[:pos:pos], m.order[pos+1:]...)
			return
		}
	}
	m.order = append(m.order, i)
}

// toggleAll selects every choice, or clears the selection when all are
// already selected.
func (m *checkboxModel) toggleAll() {
	if len(m.order) == len(m.choices) {
		m.order = nil
		return
	}
	for i := range m.choices {
		if !m.isSelected(i) {
			m.order = append(m.order, i)
		}
	}
}

func (m checkboxModel) isSelected(i int) bool {
	for _, idx := range m.order {
		if idx == i {
			return true
		}
	}
	return false
}

// Selected returns the chosen values in selection order.
func (m checkboxModel) Selected() []string {
	out := make([]string, 0, len(m.order))
	for _, idx := range m.order {
		out = append(out, m.choices[idx])
	}
	return out
}

func (m checkboxModel) View() string {
	if m.done {
		return fmt.Sprintf("%s %s\n", titleStyle.Render(m.title), doneStyle.Render(strings.Join(m.Selected(), ", ")))
	}
	if m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	for i, choice := range m.choices {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("❯ ")
		}
		box := "◯ "
		line := choice
		if m.isSelected(i) {
			box = selectedStyle.Render("◉ ")
			line = selectedStyle.Render(choice)
		}
		b.WriteString(cursor + box + line + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}
