package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/focus"
	"tableflip.dev/cmdcenter/pkg/notify"
	"tableflip.dev/cmdcenter/pkg/task"
	"tableflip.dev/cmdcenter/pkg/timeutil"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
	// Now defaults to time.Now; used for overdue markers.
	Now func() time.Time
}

var (
	spacing = strings.Repeat(" ", len("2a4bd7f0-8c1e-4a57-9d52-0f6c3be1a9e4  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) now() time.Time {
	if pp.Now != nil {
		return pp.Now()
	}
	return time.Now()
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, one, many string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " "+one)
	default:
		_, _ = c.Fprintln(pp.out(), " "+many)
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// StatusGlyph is the checkbox drawn in front of a task.
func StatusGlyph(s task.Status) string {
	switch s {
	case task.StatusInProgress:
		return "[~]"
	case task.StatusDone:
		return "[x]"
	default:
		return "[ ]"
	}
}

// Tasks prints one line per task. The task named by session is marked with
// its running clock.
func (pp *PrettyPrint) Tasks(session focus.Session, tasks ...task.Task) {
	if len(tasks) == 0 {
		pp.none()
		return
	}

	t := color.New()
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	faint := color.New(color.Faint)
	hi := color.New(color.FgHiMagenta, color.Bold)
	red := color.New(color.FgRed)

	for _, tk := range tasks {
		if pp.ShowID {
			_, _ = y.Fprint(pp.out(), tk.ID)
			_, _ = y.Fprint(pp.out(), strings.Repeat(" ", max(1, len(spacing)-len(tk.ID))))
		}
		line := fmt.Sprintf("%s %s %s", StatusGlyph(tk.Status), priorityMark(tk.Priority), tk.Text)
		if tk.Status == task.StatusDone {
			_, _ = faint.Fprint(pp.out(), line)
		} else {
			_, _ = t.Fprint(pp.out(), line)
		}
		_, _ = faint.Fprintf(pp.out(), "  #%s", tk.Category)
		if done, total := tk.SubtaskProgress(); total > 0 {
			_, _ = faint.Fprintf(pp.out(), "  %d/%d", done, total)
		}
		if tk.DueDate != nil {
			if tk.Overdue(pp.now()) {
				_, _ = red.Fprintf(pp.out(), "  due %s", tk.DueDate)
			} else {
				_, _ = faint.Fprintf(pp.out(), "  due %s", tk.DueDate)
			}
		}
		if tk.FocusTime > 0 {
			_, _ = faint.Fprintf(pp.out(), "  %s", timeutil.FormatSeconds(tk.FocusTime))
		}
		if session.ActiveTaskID == tk.ID {
			_, _ = hi.Fprintf(pp.out(), "  ⏱ %s", timeutil.FormatClock(session.ElapsedSeconds))
			if !session.Running {
				_, _ = hi.Fprint(pp.out(), " (paused)")
			}
		}
		_, _ = t.Fprintln(pp.out(), "")
	}
	_, _ = t.Fprintln(pp.out(), "")
}

// Task prints a single task with its notes and subtasks.
func (pp *PrettyPrint) Task(tk task.Task) {
	pp.ShowID = true
	pp.Tasks(focus.Session{}, tk)
	faint := color.New(color.Faint)
	indent := strings.Repeat(" ", len(spacing))
	for _, st := range tk.Subtasks {
		mark := "[ ]"
		if st.Done {
			mark = "[x]"
		}
		_, _ = faint.Fprintf(pp.out(), "%s  %s %s  %s\n", indent, mark, st.Title, st.ID)
	}
	if tk.Notes != "" {
		for _, line := range strings.Split(tk.Notes, "\n") {
			_, _ = faint.Fprintf(pp.out(), "%s  > %s\n", indent, line)
		}
	}
	pp.NewLine()
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

// Notifications prints the log as a table, newest first.
func (pp *PrettyPrint) Notifications(list ...notify.Notification) {
	if len(list) == 0 {
		pp.none()
		return
	}
	tbl := uitable.New()
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	if pp.ShowID {
		tbl.AddRow("ID", "", "TYPE", "TITLE", "MESSAGE", "SOURCE", "WHEN")
	} else {
		tbl.AddRow("", "TYPE", "TITLE", "MESSAGE", "SOURCE", "WHEN")
	}
	for _, n := range list {
		unread := " "
		if !n.Read {
			unread = "●"
		}
		row := []interface{}{unread, typeColor(n.Type).Sprint(n.Type), n.Title, n.Message, n.Source, n.Timestamp.Local().Format("Jan 2 15:04")}
		if pp.ShowID {
			row = append([]interface{}{n.ID}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func typeColor(t notify.Type) *color.Color {
	switch t {
	case notify.TypeSuccess:
		return color.New(color.FgGreen)
	case notify.TypeWarning:
		return color.New(color.FgYellow)
	case notify.TypeError:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}

// Stats prints the derived counters.
func (pp *PrettyPrint) Stats(s engine.Stats) {
	tbl := uitable.New()
	tbl.AddRow("todo:", s.Todo)
	tbl.AddRow("in progress:", s.InProgress)
	tbl.AddRow("done:", s.Done)
	tbl.AddRow("total:", s.Total)
	tbl.AddRow("focus time:", timeutil.FormatSeconds(s.FocusSeconds))
	tbl.AddRow("unread:", s.Unread)
	tbl.AddRow("focus:", s.Focus)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// JSON writes v indented.
func (pp *PrettyPrint) JSON(v interface{}) error {
	enc := json.NewEncoder(pp.out())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
