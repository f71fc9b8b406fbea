// Package app is the interactive command center: the task panel and the
// notification rail rendered side by side from one engine.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/task"
	"tableflip.dev/cmdcenter/pkg/tui/components/help"
	"tableflip.dev/cmdcenter/pkg/tui/components/panel"
	"tableflip.dev/cmdcenter/pkg/tui/components/rail"
	"tableflip.dev/cmdcenter/pkg/tui/theme"
	"tableflip.dev/cmdcenter/pkg/tui/ui"
	"tableflip.dev/cmdcenter/pkg/tui/ui/overlay"
)

type mode int

const (
	modeNormal mode = iota
	modeInsert
	modeConfirm
	modeHelp
)

type action int

const (
	actionAdd action = iota
	actionDump
	actionSubtask
)

const (
	focusPanel = iota
	focusRail
)

const footerRows = 2

type snapshotMsg struct {
	snap engine.Snapshot
}

type snapshotsClosedMsg struct{}

// Model is the root Bubble Tea model.
type Model struct {
	engine *engine.Engine
	theme  theme.Theme

	panel *panel.Model
	rail  *rail.Model
	help  *help.Model
	input textinput.Model

	mode      mode
	action    action
	focus     int
	targetID  string
	status    string
	statusErr bool

	snapCh    chan engine.Snapshot
	cancelSub func()
	seq       uint64

	termWidth  int
	termHeight int
}

// New builds the model over e. Init subscribes it to engine changes.
func New(e *engine.Engine) *Model {
	th := theme.Default()
	ti := textinput.New()
	ti.CharLimit = 512
	ti.Prompt = ""

	m := &Model{
		engine: e,
		theme:  th,
		panel:  panel.New(th.Panel),
		rail:   rail.New(th.Rail),
		input:  ti,
	}
	m.panel.Focus()
	m.refresh()
	return m
}

func (m *Model) Init() tea.Cmd {
	m.subscribe()
	return m.waitForSnapshot()
}

// subscribe forwards engine snapshots into a one-slot channel, replacing a
// snapshot the UI has not picked up yet.
func (m *Model) subscribe() {
	if m.cancelSub != nil {
		return
	}
	ch := make(chan engine.Snapshot, 1)
	m.snapCh = ch
	m.cancelSub = m.engine.Subscribe(func(s engine.Snapshot) {
		for {
			select {
			case ch <- s:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	})
}

func (m *Model) waitForSnapshot() tea.Cmd {
	if m.snapCh == nil {
		return nil
	}
	ch := m.snapCh
	return func() tea.Msg {
		if s, ok := <-ch; ok {
			return snapshotMsg{snap: s}
		}
		return snapshotsClosedMsg{}
	}
}

// Close stops listening to the engine.
func (m *Model) Close() {
	if m.cancelSub != nil {
		m.cancelSub()
		m.cancelSub = nil
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case snapshotMsg:
		m.apply(msg.snap)
		cmds = append(cmds, m.waitForSnapshot())
	case snapshotsClosedMsg:
		m.snapCh = nil
	case tea.KeyPressMsg:
		m.handleKeyPress(msg, &cmds)
	default:
		if m.mode == modeInsert {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Close()
		*cmds = append(*cmds, tea.Quit)
		return
	}
	switch m.mode {
	case modeHelp:
		m.handleHelpKey(msg, cmds)
	case modeInsert:
		m.handleInsertKey(msg, cmds)
	case modeConfirm:
		m.handleConfirmKey(msg)
	default:
		m.handleNormalKey(msg, cmds)
	}
}

func (m *Model) handleHelpKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q":
		m.mode = modeNormal
		return
	}
	if m.help != nil {
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) handleInsertKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.endInsert()
		m.setStatus("cancelled")
		return
	case "enter":
		value := m.input.Value()
		m.endInsert()
		m.submit(value)
		return
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	*cmds = append(*cmds, cmd)
}

func (m *Model) handleConfirmKey(msg tea.KeyPressMsg) {
	id := m.targetID
	m.mode = modeNormal
	m.targetID = ""
	if msg.String() != "y" {
		m.setStatus("kept")
		return
	}
	if err := m.engine.DeleteTask(id); err != nil {
		m.setError(err)
		return
	}
	m.setStatus("task deleted")
	m.refresh()
}

func (m *Model) handleNormalKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		m.Close()
		*cmds = append(*cmds, tea.Quit)
		return
	case "?":
		m.mode = modeHelp
		m.help = help.New(helpSize(m.termWidth, m.bodyHeight()))
		return
	case "tab", "shift+tab":
		m.toggleFocus()
		return
	case "a":
		*cmds = append(*cmds, m.beginInsert(actionAdd, "Describe the task…"))
		return
	case "b":
		*cmds = append(*cmds, m.beginInsert(actionDump, "first thing; second thing; …"))
		return
	case "p":
		if !m.engine.Session().Active() {
			m.setStatus("nothing to pause")
			return
		}
		if m.engine.ToggleFocus() {
			m.setStatus("focus resumed")
		} else {
			m.setStatus("focus paused")
		}
		m.refresh()
		return
	case "c":
		n := m.engine.ClearCompleted()
		m.setStatus(fmt.Sprintf("cleared %d completed %s", n, plural(n, "task", "tasks")))
		m.refresh()
		return
	case "R":
		m.engine.ResetAll()
		m.setStatus("all tasks reset to todo")
		m.refresh()
		return
	case "m":
		m.engine.MarkAllRead()
		m.setStatus("all notifications read")
		m.refresh()
		return
	case "C":
		m.engine.ClearNotifications()
		m.setStatus("notifications cleared")
		m.refresh()
		return
	}

	if m.focus == focusRail {
		m.handleRailKey(key, msg, cmds)
		return
	}
	m.handlePanelKey(key, msg, cmds)
}

func (m *Model) handlePanelKey(key string, msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	t, ok := m.panel.Selected()
	switch key {
	case "enter", "space", " ":
		if !ok {
			return
		}
		updated, err := m.engine.CycleStatus(t.ID)
		if err != nil {
			m.setError(err)
			return
		}
		m.setStatus(fmt.Sprintf("%q is %s", updated.Text, updated.Status))
		m.refresh()
	case "f":
		if !ok {
			return
		}
		if err := m.engine.StartFocus(t.ID); err != nil {
			m.setError(err)
			return
		}
		if m.engine.Session().ActiveTaskID == t.ID {
			m.setStatus(fmt.Sprintf("focusing on %q", t.Text))
		} else {
			m.setStatus("focus stopped")
		}
		m.refresh()
	case "s":
		if !ok {
			return
		}
		m.targetID = t.ID
		*cmds = append(*cmds, m.beginInsert(actionSubtask, "Subtask title"))
	case "t":
		if !ok {
			return
		}
		for _, st := range t.Subtasks {
			if st.Done {
				continue
			}
			if _, err := m.engine.ToggleSubtask(t.ID, st.ID); err != nil {
				m.setError(err)
				return
			}
			m.setStatus(fmt.Sprintf("checked %q", st.Title))
			m.refresh()
			return
		}
		m.setStatus("no open subtasks")
	case "x", "delete":
		if !ok {
			return
		}
		m.targetID = t.ID
		m.mode = modeConfirm
	default:
		var cmd tea.Cmd
		_, cmd = m.panel.Update(msg)
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) handleRailKey(key string, msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	n, ok := m.rail.Selected()
	switch key {
	case "enter", "space", " ":
		if !ok {
			return
		}
		m.engine.MarkRead(n.ID)
		m.refresh()
	case "x", "delete":
		if !ok {
			return
		}
		if err := m.engine.DeleteNotification(n.ID); err != nil {
			m.setError(err)
			return
		}
		m.setStatus("notification deleted")
		m.refresh()
	default:
		var cmd tea.Cmd
		_, cmd = m.rail.Update(msg)
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) beginInsert(a action, placeholder string) tea.Cmd {
	m.mode = modeInsert
	m.action = a
	m.input.Reset()
	m.input.Placeholder = placeholder
	return m.input.Focus()
}

func (m *Model) endInsert() {
	m.mode = modeNormal
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) submit(value string) {
	switch m.action {
	case actionAdd:
		t, err := m.engine.CreateTask(value, task.CategoryWork, task.PriorityMedium, "", nil)
		if err != nil {
			m.setError(err)
			return
		}
		m.setStatus(fmt.Sprintf("added %q", t.Text))
	case actionDump:
		added, err := m.engine.BrainDump(strings.ReplaceAll(value, ";", "\n"))
		if err != nil {
			m.setError(err)
			return
		}
		m.setStatus(fmt.Sprintf("brain dump added %d %s", len(added), plural(len(added), "task", "tasks")))
	case actionSubtask:
		id := m.targetID
		m.targetID = ""
		if _, err := m.engine.AddSubtask(id, value); err != nil {
			m.setError(err)
			return
		}
		m.setStatus("subtask added")
	}
	m.refresh()
}

func (m *Model) toggleFocus() {
	var from, to ui.Component = m.panel, m.rail
	m.focus = focusRail
	if m.rail.Focused() {
		from, to = m.rail, m.panel
		m.focus = focusPanel
	}
	from.Blur()
	to.Focus()
}

func (m *Model) refresh() {
	m.apply(m.engine.Snapshot())
}

// apply shows s unless a newer snapshot is already on screen.
func (m *Model) apply(s engine.Snapshot) {
	if s.Seq < m.seq {
		return
	}
	m.seq = s.Seq
	m.panel.SetTasks(s.Tasks, s.Focus)
	m.rail.SetSnapshot(s.Notifications, s.Stats)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

// applySizes splits the terminal between the panel and the rail.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	right := min(max(m.termWidth/3, 28), 48)
	left := max(m.termWidth-right, 20)
	height := m.bodyHeight()
	m.panel.SetSize(left, height)
	m.rail.SetSize(right, height)
	m.input.SetWidth(max(left-12, 10))
	if m.help != nil {
		m.help.SetSize(helpSize(m.termWidth, height))
	}
}

func (m *Model) bodyHeight() int {
	return max(m.termHeight-footerRows, 6)
}

// helpSize keeps a margin of the task list visible around the help modal.
func helpSize(width, height int) (int, int) {
	return max(min(width-8, 84), 20), max(height-4, 6)
}

func (m *Model) View() string {
	var sections []string
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.panel.View(), m.rail.View())
	if m.mode == modeHelp && m.help != nil {
		body = overlay.Compose(body, m.termWidth, m.bodyHeight(), m.help.View(), overlay.Placement{})
	}
	sections = append(sections, body)
	sections = append(sections, m.footer())
	return strings.Join(sections, "\n")
}

func (m *Model) footer() string {
	styles := m.theme.Footer
	switch m.mode {
	case modeInsert:
		prompt := map[action]string{
			actionAdd:     "Add: ",
			actionDump:    "Dump: ",
			actionSubtask: "Subtask: ",
		}[m.action]
		return styles.Prompt.Render(prompt) + m.input.View()
	case modeConfirm:
		text := "Delete task? Unsaved focus time is lost. (y/N)"
		if t, ok := m.panel.Selected(); ok && t.ID == m.targetID {
			text = fmt.Sprintf("Delete %q? Unsaved focus time is lost. (y/N)", t.Text)
		}
		return styles.Prompt.Render(text)
	case modeHelp:
		return styles.Help.Render("? or esc to close help")
	}
	hints := styles.Help.Render("a add · b dump · enter cycle · f focus · p pause · tab switch · ? help · q quit")
	if m.status == "" {
		return hints
	}
	status := styles.Status.Render(m.status)
	if m.statusErr {
		status = styles.Error.Render(m.status)
	}
	return status + "\n" + hints
}

// Run launches the interactive program until the user quits or ctx ends.
func Run(ctx context.Context, e *engine.Engine) error {
	m := New(e)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
