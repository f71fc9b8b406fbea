// Package panel renders the task side of the command center.
package panel

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/cmdcenter/pkg/focus"
	"tableflip.dev/cmdcenter/pkg/task"
	"tableflip.dev/cmdcenter/pkg/timeutil"
	"tableflip.dev/cmdcenter/pkg/tui/theme"
	"tableflip.dev/cmdcenter/pkg/tui/ui"
)

// Model lists tasks with a cursor and shows the selected task's detail.
type Model struct {
	tasks   []task.Task
	session focus.Session
	cursor  int
	offset  int
	focused bool

	width  int
	height int

	now    func() time.Time
	styles theme.PanelTheme
}

// New returns an empty panel.
func New(th theme.PanelTheme) *Model {
	return &Model{styles: th, now: time.Now}
}

func (m *Model) Init() tea.Cmd { return nil }

// Update moves the cursor. Task actions are applied by the caller through
// the engine, which then calls SetTasks.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || !m.focused {
		return m, nil
	}
	switch key.String() {
	case "j", "down":
		m.Move(1)
	case "k", "up":
		m.Move(-1)
	case "g", "home":
		m.Move(-len(m.tasks))
	case "G", "end":
		m.Move(len(m.tasks))
	}
	return m, nil
}

func (m *Model) Focus()        { m.focused = true }
func (m *Model) Blur()         { m.focused = false }
func (m *Model) Focused() bool { return m.focused }

func (m *Model) SetSize(width, height int) {
	m.width = max(width, 20)
	m.height = max(height, 6)
	m.clampOffset()
}

// SetTasks replaces the rows, keeping the cursor on the same task id when it
// still exists.
func (m *Model) SetTasks(tasks []task.Task, session focus.Session) {
	selected := ""
	if t, ok := m.Selected(); ok {
		selected = t.ID
	}
	m.tasks = tasks
	m.session = session
	m.cursor = min(m.cursor, max(len(tasks)-1, 0))
	for i, t := range tasks {
		if t.ID == selected {
			m.cursor = i
			break
		}
	}
	m.clampOffset()
}

// Selected returns the task under the cursor.
func (m *Model) Selected() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return task.Task{}, false
	}
	return m.tasks[m.cursor], true
}

// Move shifts the cursor by delta rows, clamped to the list.
func (m *Model) Move(delta int) {
	if len(m.tasks) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.tasks)-1)
	m.clampOffset()
}

func (m *Model) listHeight() int {
	// Frame, title and a detail block of up to a third of the panel.
	return max(m.height-2-1-m.detailHeight(), 1)
}

func (m *Model) detailHeight() int {
	if len(m.tasks) == 0 {
		return 0
	}
	return max(m.height/3, 3)
}

func (m *Model) clampOffset() {
	rows := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View renders the framed panel.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	inner := max(m.width-2, 1)

	lines := []string{m.styles.Title.Render(m.title())}
	if len(m.tasks) == 0 {
		lines = append(lines, m.styles.Meta.Render("No tasks. Press a to add one or b for a brain dump."))
	}
	end := min(m.offset+m.listHeight(), len(m.tasks))
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(i, inner))
	}
	if t, ok := m.Selected(); ok {
		lines = append(lines, "")
		lines = append(lines, m.renderDetail(t, inner)...)
	}

	frame := m.styles.Frame
	if m.focused {
		frame = m.styles.FrameFocused
	}
	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return frame.Width(m.width).Height(m.height).Render(body)
}

func (m *Model) title() string {
	var todo, doing, done int
	for _, t := range m.tasks {
		switch t.Status {
		case task.StatusTodo:
			todo++
		case task.StatusInProgress:
			doing++
		case task.StatusDone:
			done++
		}
	}
	return fmt.Sprintf("Tasks  %d todo · %d doing · %d done", todo, doing, done)
}

func (m *Model) renderRow(i, width int) string {
	t := m.tasks[i]
	row := fmt.Sprintf("%s %s %s", glyph(t.Status), priorityMark(t.Priority), t.Text)
	var meta []string
	if done, total := t.SubtaskProgress(); total > 0 {
		meta = append(meta, fmt.Sprintf("%d/%d", done, total))
	}
	if m.session.ActiveTaskID == t.ID {
		clock := "⏱ " + timeutil.FormatClock(m.session.ElapsedSeconds)
		if !m.session.Running {
			clock += " ‖"
		}
		meta = append(meta, clock)
	}
	suffix := ""
	if len(meta) > 0 {
		suffix = "  " + strings.Join(meta, "  ")
	}
	row = truncate.StringWithTail(row, uint(max(width-len([]rune(suffix)), 4)), "…")

	style := m.styles.Body
	if t.Status == task.StatusDone {
		style = m.styles.Done
	}
	rendered := style.Render(row)
	if suffix != "" {
		if m.session.ActiveTaskID == t.ID {
			rendered += m.styles.Focus.Render(suffix)
		} else {
			rendered += m.styles.Meta.Render(suffix)
		}
	}
	if i == m.cursor && m.focused {
		rendered = m.styles.Selected.Render(row + suffix)
	}
	return rendered
}

func (m *Model) renderDetail(t task.Task, width int) []string {
	var out []string
	meta := fmt.Sprintf("#%s · %s · %s", t.Category, t.Priority, t.Status)
	if t.FocusTime > 0 {
		meta += " · " + timeutil.FormatSeconds(t.FocusTime) + " focused"
	}
	out = append(out, m.styles.Meta.Render(truncate.StringWithTail(meta, uint(width), "…")))
	if t.DueDate != nil {
		due := "due " + t.DueDate.String()
		if t.Overdue(m.now()) {
			out = append(out, m.styles.Overdue.Render(due+" (overdue)"))
		} else {
			out = append(out, m.styles.Meta.Render(due))
		}
	}
	for _, st := range t.Subtasks {
		mark := "[ ]"
		if st.Done {
			mark = "[x]"
		}
		out = append(out, truncate.StringWithTail("  "+mark+" "+st.Title, uint(width), "…"))
	}
	if t.Notes != "" {
		for _, line := range strings.Split(wordwrap.String(t.Notes, width), "\n") {
			out = append(out, m.styles.Meta.Render(line))
		}
	}
	if limit := m.detailHeight(); len(out) > limit {
		out = out[:limit]
	}
	return out
}

func glyph(s task.Status) string {
	switch s {
	case task.StatusInProgress:
		return "◐"
	case task.StatusDone:
		return "●"
	default:
		return "○"
	}
}

func priorityMark(p task.Priority) string {
	switch p {
	case task.PriorityCritical:
		return "!!!"
	case task.PriorityHigh:
		return "!! "
	case task.PriorityMedium:
		return "!  "
	default:
		return "   "
	}
}
