// Package tui is the interactive terminal view of the task list.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harrisonrobin/taskpad/pkg/clock"
	"github.com/harrisonrobin/taskpad/pkg/model"
	"github.com/harrisonrobin/taskpad/pkg/notify"
	"github.com/harrisonrobin/taskpad/pkg/session"
	"github.com/harrisonrobin/taskpad/pkg/store"
)

// Tasks is the read side of the task store.
type Tasks interface {
	List(filter model.Filter) []model.Entry
	Counts() (incomplete, complete int)
}

// noteMsg asks for a redraw after the notification changed.
type noteMsg struct{}

type Model struct {
	tasks    Tasks
	session  *session.Session
	notifier *notify.Notifier

	filter model.Filter
	rows   []model.Entry
	cursor int
	input  textinput.Model
}

func New(tasks Tasks, sess *session.Session, notifier *notify.Notifier, filter model.Filter) Model {
	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		tasks:    tasks,
		session:  sess,
		notifier: notifier,
		filter:   filter,
		input:    ti,
	}
	m.refresh()
	return m
}

// Run starts the program and blocks until the user quits.
func Run(m Model) error {
	program := tea.NewProgram(m)
	m.notifier.OnChange(func(notify.Notification) {
		// Send blocks until the event loop reads it, and Emit runs inside Update.
		go program.Send(noteMsg{})
	})
	defer m.notifier.OnChange(nil)
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads the visible rows and keeps the cursor in range.
func (m *Model) refresh() {
	m.rows = m.tasks.List(m.filter)
	m.cursor = clampCursor(m.cursor, len(m.rows))
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

// selected returns the canonical index of the row under the cursor.
func (m Model) selected() (int, bool) {
	if len(m.rows) == 0 {
		return 0, false
	}
	return m.rows[m.cursor].Index, true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.session.Mode() != session.CLOSED {
			return m.updateForm(msg)
		}
		return m.updateList(msg.String())
	case tea.WindowSizeMsg:
		if msg.Width > 20 {
			m.input.Width = msg.Width - 20
		}
	case noteMsg:
	}
	return m, nil
}

func (m Model) updateList(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, len(m.rows))
	case "up", "k":
		m.cursor = clampCursor(m.cursor-1, len(m.rows))
	case "f":
		m.filter = m.filter.Next()
		m.cursor = 0
		m.refresh()
	case "a":
		m.session.OpenForCreate()
		m.input.SetValue("")
		cmd := m.input.Focus()
		return m, cmd
	case "e", "enter":
		index, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := m.session.OpenForEdit(index); err != nil {
			m.refresh()
			return m, nil
		}
		m.input.SetValue(m.session.Snapshot().DraftName)
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, cmd
	case "d":
		if index, ok := m.selected(); ok {
			// failures are reported through the notifier
			_ = m.session.Remove(index)
			m.refresh()
		}
	case " ", "x":
		if index, ok := m.selected(); ok {
			_ = m.session.Toggle(index)
			m.refresh()
		}
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.session.Cancel()
		m.input.Blur()
		return m, nil
	case "tab", "shift+tab":
		snap := m.session.Snapshot()
		// Toggle always yields a valid status and the form is open here
		_ = m.session.SetStatus(snap.DraftStatus.Toggle())
		return m, nil
	case "enter":
		err := m.session.Submit()
		if err == nil || errors.Is(err, store.ErrNotFound) {
			m.input.Blur()
			m.input.SetValue("")
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	// only ErrClosed, and updateForm runs with the form open
	_ = m.session.SetName(m.input.Value())
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("TODO List"))
	b.WriteString("\n")
	b.WriteString(m.filterTabs())
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(emptyStyle.Render("No todos"))
		b.WriteString("\n")
	}
	for i, e := range m.rows {
		b.WriteString(m.renderRow(i, e))
		b.WriteString("\n")
	}

	if snap := m.session.Snapshot(); snap.Mode != session.CLOSED {
		b.WriteString("\n")
		b.WriteString(m.renderForm(snap))
		b.WriteString("\n")
	}

	if note, ok := m.notifier.Current(); ok {
		b.WriteString("\n")
		b.WriteString(renderNote(note))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.session.Mode() == session.CLOSED {
		b.WriteString(helpStyle.Render("a add • e edit • d delete • space toggle • f filter • q quit"))
	} else {
		b.WriteString(helpStyle.Render("enter save • tab status • esc cancel"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) filterTabs() string {
	incomplete, complete := m.tasks.Counts()
	counts := map[model.Filter]int{
		model.FilterAll:        incomplete + complete,
		model.FilterIncomplete: incomplete,
		model.FilterComplete:   complete,
	}
	tabs := make([]string, len(model.Filters))
	for i, f := range model.Filters {
		label := fmt.Sprintf("%s (%d)", f, counts[f])
		if f == m.filter {
			tabs[i] = activeTabStyle.Render(label)
		} else {
			tabs[i] = headerStyle.Render(label)
		}
	}
	return strings.Join(tabs, "  ")
}

func (m Model) renderRow(i int, e model.Entry) string {
	pointer := "  "
	if i == m.cursor && m.session.Mode() == session.CLOSED {
		pointer = cursorStyle.Render("> ")
	}
	box := "[ ]"
	name := e.Task.Name
	if e.Task.Done() {
		box = "[x]"
		name = doneStyle.Render(name)
	}
	return fmt.Sprintf("%s%s %s  %s", pointer, box, name, timeStyle.Render(clock.Format(e.Task.CreatedAt)))
}

func (m Model) renderForm(snap session.Snapshot) string {
	title, button := "Add TODO", "Add Task"
	if snap.Mode == session.EDITING {
		title, button = "Update TODO", "Update Task"
	}
	body := fmt.Sprintf("%s\n\nTitle  %s\nStatus %s\n\n[enter] %s",
		titleStyle.Render(title), m.input.View(), snap.DraftStatus, button)
	return formStyle.Render(body)
}

func renderNote(note notify.Notification) string {
	if note.Kind == notify.ERROR {
		return errorStyle.Render("✗ " + note.Message)
	}
	return successStyle.Render("✓ " + note.Message)
}
