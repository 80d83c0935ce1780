// Package tui renders a FormTree as a terminal settings form. It is
// an outer surface over the reconciliation core: all validation,
// diffing and effect dispatch stays in lib/form and lib/reconcile.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-baduk/reconfig/lib/form"
	"github.com/go-baduk/reconfig/lib/reconcile"
	"github.com/go-baduk/reconfig/lib/sched"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	categoryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	hintStyle     = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

type row struct {
	category string // non-empty for headers
	field    *form.Field
}

// Model is the bubbletea model for the settings form.
type Model struct {
	session *reconcile.Session
	queue   *sched.Queue

	rows    []row
	cursor  int
	editing bool
	status  string
	failed  bool
	done    bool
}

// New builds the form model. queue is pumped after each apply so
// deferred restarts run once the triggering keypress is handled.
func New(session *reconcile.Session, queue *sched.Queue) *Model {
	m := &Model{session: session, queue: queue}
	m.flatten(session.Tree, "")
	m.skipToField(0, 1)
	return m
}

func (m *Model) flatten(n *form.Node, category string) {
	if n == nil {
		return
	}
	if n.Field != nil {
		m.rows = append(m.rows, row{field: n.Field})
	}
	if n.Field == nil && n.Label != "" && len(n.Children) > 0 && category != "" {
		m.rows = append(m.rows, row{category: n.Label})
	}
	for _, c := range n.Children {
		m.flatten(c, n.Label)
	}
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.editing {
		return m.updateEditing(key)
	}
	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.done = true
		return m, tea.Quit
	case "up", "k":
		m.skipToField(m.cursor-1, -1)
	case "down", "j":
		m.skipToField(m.cursor+1, 1)
	case "enter":
		f := m.currentField()
		if f == nil {
			break
		}
		switch f.Type {
		case form.Bool:
			f.Active = !f.Active
		case form.Choice:
			cycleChoice(f)
		default:
			m.editing = true
		}
	case " ":
		if f := m.currentField(); f != nil && f.Type == form.Bool {
			f.Active = !f.Active
		}
	case "a":
		m.apply(false)
	case "s":
		m.apply(true)
	}
	return m, nil
}

func (m *Model) updateEditing(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.currentField()
	switch key.String() {
	case "enter", "esc":
		m.editing = false
	case "backspace":
		if f != nil && f.Text != "" {
			f.Text = f.Text[:len(f.Text)-1]
		}
	default:
		if f != nil && key.Type == tea.KeyRunes {
			f.InsertText(string(key.Runes))
		}
	}
	return m, nil
}

// apply runs the reconcile cycle and pumps the deferred queue, so an
// engine restart scheduled by this keypress runs right after it.
func (m *Model) apply(save bool) {
	changed, err := m.session.Apply(save)
	if err != nil {
		// parse errors keep the form open for correction
		m.status = err.Error()
		m.failed = true
		m.queue.RunPending()
		return
	}
	m.failed = false
	if len(changed) == 0 {
		m.status = "no changes"
	} else {
		m.status = fmt.Sprintf("applied %d change(s)", len(changed))
	}
	m.queue.RunPending()
}

func (m *Model) currentField() *form.Field {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].field
}

func (m *Model) skipToField(from, dir int) {
	for i := from; i >= 0 && i < len(m.rows); i += dir {
		if m.rows[i].field != nil {
			m.cursor = i
			return
		}
	}
}

func (m *Model) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("settings") + "\n\n")
	for i, r := range m.rows {
		if r.category != "" {
			b.WriteString(categoryStyle.Render(r.category) + "\n")
			continue
		}
		line := fmt.Sprintf("  %-32s %s", r.field.Path, displayValue(r.field))
		if i == m.cursor {
			if m.editing {
				line += "▌"
			}
			line = selectedStyle.Render(line)
			if r.field.Hint != "" {
				line += "  " + hintStyle.Render(r.field.Hint)
			}
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
	if m.status != "" {
		style := okStyle
		if m.failed {
			style = errorStyle
		}
		b.WriteString(style.Render(m.status) + "\n")
	}
	b.WriteString(hintStyle.Render("enter edit/toggle · a apply · s apply+save · q quit") + "\n")
	return b.String()
}

func displayValue(f *form.Field) string {
	if f.Type == form.Bool {
		if f.Active {
			return "[x]"
		}
		return "[ ]"
	}
	return f.Text
}

func cycleChoice(f *form.Field) {
	if len(f.Choices) == 0 {
		return
	}
	next := 0
	for i, c := range f.Choices {
		if c.Label == f.Text {
			next = (i + 1) % len(f.Choices)
			break
		}
	}
	f.Text = f.Choices[next].Label
}
