// Package rail renders the notification and focus side of the command
// center.
package rail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/notify"
	"tableflip.dev/cmdcenter/pkg/tui/theme"
	"tableflip.dev/cmdcenter/pkg/tui/ui"
)

// Model shows the focus timer, the derived counters and the notification
// log, newest first.
type Model struct {
	viewport viewport.Model
	entries  []notify.Notification
	stats    engine.Stats

	cursor  int
	offset  int
	focused bool

	width  int
	height int

	styles theme.RailTheme
}

// headerRows is the focus line, the stats line and the log heading.
const headerRows = 3

// New returns an empty rail.
func New(th theme.RailTheme) *Model {
	vp := viewport.New(
		viewport.WithWidth(1),
		viewport.WithHeight(1),
	)
	return &Model{viewport: vp, styles: th}
}

func (m *Model) Init() tea.Cmd { return nil }

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
		m.Move(-len(m.entries))
	case "G", "end":
		m.Move(len(m.entries))
	}
	return m, nil
}

func (m *Model) Focus() {
	m.focused = true
	m.refreshContent()
}

func (m *Model) Blur() {
	m.focused = false
	m.refreshContent()
}

func (m *Model) Focused() bool { return m.focused }

// SetSize resizes the viewport while keeping the header and border intact.
func (m *Model) SetSize(width, height int) {
	width = max(width, 20)
	height = max(height, headerRows+3)
	if m.width == width && m.height == height {
		return
	}
	m.width = width
	m.height = height
	m.viewport.SetWidth(max(1, width-2))
	m.viewport.SetHeight(max(1, height-2-headerRows))
	m.refreshContent()
}

// SetSnapshot replaces the log and counters, keeping the cursor on the same
// notification when it still exists.
func (m *Model) SetSnapshot(entries []notify.Notification, stats engine.Stats) {
	selected := ""
	if n, ok := m.Selected(); ok {
		selected = n.ID
	}
	m.entries = entries
	m.stats = stats
	m.cursor = min(m.cursor, max(len(entries)-1, 0))
	for i, n := range entries {
		if n.ID == selected {
			m.cursor = i
			break
		}
	}
	m.refreshContent()
}

// Selected returns the notification under the cursor.
func (m *Model) Selected() (notify.Notification, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return notify.Notification{}, false
	}
	return m.entries[m.cursor], true
}

// Move shifts the cursor by delta entries.
func (m *Model) Move(delta int) {
	if len(m.entries) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.entries)-1)
	m.refreshContent()
}

// View renders the bordered rail.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	inner := max(1, m.width-2)
	focusLine := m.styles.Focus.Render(truncate.StringWithTail("⏱ "+m.stats.Focus, uint(inner), "…"))
	statLine := m.styles.Stat.Render(truncate.StringWithTail(fmt.Sprintf("%d todo · %d doing · %d done · %d unread",
		m.stats.Todo, m.stats.InProgress, m.stats.Done, m.stats.Unread), uint(inner), "…"))
	header := m.styles.Header.Render("Notifications")
	body := lipgloss.JoinVertical(lipgloss.Left, focusLine, statLine, header, m.viewport.View())

	frame := m.styles.Frame
	if m.focused {
		frame = m.styles.FrameFocused
	}
	return frame.Width(m.width).Height(m.height).Render(body)
}

func (m *Model) refreshContent() {
	lines := make([]string, 0, len(m.entries))
	for i, n := range m.entries {
		lines = append(lines, m.renderEntry(i, n))
	}
	content := strings.Join(lines, "\n")
	if content == "" {
		content = m.styles.Timestamp.Render("No notifications yet")
	}
	m.viewport.SetContent(content)

	rows := max(1, m.height-2-headerRows)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.viewport.SetYOffset(m.offset)
}

func (m *Model) renderEntry(i int, n notify.Notification) string {
	marker := "●"
	if n.Read {
		marker = " "
	}
	ts := n.Timestamp.Local().Format(time.Kitchen)
	text := n.Title
	if n.Message != "" {
		text = fmt.Sprintf("%s: %s", text, n.Message)
	}
	src := ""
	if n.Source != "" {
		src = " · " + n.Source
	}
	width := max(1, m.width-2-1-len(ts)-2-lipgloss.Width(src))
	text = truncate.StringWithTail(text, uint(width), "…")

	if i == m.cursor && m.focused {
		return m.styles.Selected.Render(fmt.Sprintf("%s %s %s%s", marker, ts, text, src))
	}
	style := m.typeStyle(n.Type)
	if n.Read {
		style = m.styles.Read
	}
	return fmt.Sprintf("%s %s %s%s", style.Render(marker), m.styles.Timestamp.Render(ts), style.Render(text), m.styles.Source.Render(src))
}

func (m *Model) typeStyle(t notify.Type) lipgloss.Style {
	switch t {
	case notify.TypeSuccess:
		return m.styles.Success
	case notify.TypeWarning:
		return m.styles.Warn
	case notify.TypeError:
		return m.styles.Error
	default:
		return m.styles.Info
	}
}
