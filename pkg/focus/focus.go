// Package focus accumulates focus seconds against one task at a time.
package focus

import (
	"fmt"

	"tableflip.dev/cmdcenter/pkg/errs"
	"tableflip.dev/cmdcenter/pkg/notify"
	"tableflip.dev/cmdcenter/pkg/task"
	"tableflip.dev/cmdcenter/pkg/timeutil"
)

// Source tags notifications raised by the timer.
const Source = "focus"

// Tasks is the part of task.Repository the timer needs.
type Tasks interface {
	Get(id string) (task.Task, bool)
	Exists(id string) bool
	CommitFocusTime(id string, seconds int64) (task.Task, bool)
}

// Notifier is the part of notify.Log the timer needs.
type Notifier interface {
	Push(title, message string, typ notify.Type, source string) notify.Notification
}

// Session is the ephemeral timer state. It is never persisted.
type Session struct {
	ActiveTaskID   string `json:"activeTaskId,omitempty"`
	ElapsedSeconds int64  `json:"elapsedSeconds"`
	Running        bool   `json:"running"`
}

// Active reports whether a task is being focused on, running or paused.
func (s Session) Active() bool {
	return s.ActiveTaskID != ""
}

// Timer is the focus state machine. Tick is expected once per interval from
// the caller's clock; the timer itself owns no goroutine. Not safe for
// concurrent use.
type Timer struct {
	tasks   Tasks
	notes   Notifier
	session Session
}

// New returns an idle timer. notes may be nil.
func New(tasks Tasks, notes Notifier) *Timer {
	return &Timer{tasks: tasks, notes: notes}
}

// Session returns the current state.
func (t *Timer) Session() Session {
	return t.session
}

// Start focuses on id. Starting the already active task stops it instead.
// Time accumulated on a previously active task is committed first.
func (t *Timer) Start(id string) error {
	if id != "" && id == t.session.ActiveTaskID {
		t.Stop()
		return nil
	}
	tk, ok := t.tasks.Get(id)
	if !ok {
		return errs.NotFound("task", id)
	}
	if t.session.Active() {
		t.commit()
	}
	t.session = Session{ActiveTaskID: id, Running: true}
	if t.notes != nil {
		t.notes.Push("Focus started", fmt.Sprintf("Focusing on %q", tk.Text), notify.TypeInfo, Source)
	}
	return nil
}

// Toggle pauses or resumes the active session and returns the new running
// state. It does nothing when no task is active.
func (t *Timer) Toggle() bool {
	if !t.session.Active() {
		return false
	}
	t.session.Running = !t.session.Running
	return t.session.Running
}

// Stop commits the elapsed seconds to the active task and goes idle. It
// returns the seconds committed.
func (t *Timer) Stop() int64 {
	if !t.session.Active() {
		return 0
	}
	committed := t.commit()
	t.session = Session{}
	return committed
}

// Discard goes idle without committing. Used when the active task is deleted.
func (t *Timer) Discard() {
	t.session = Session{}
}

// Tick advances a running session by one second and reports whether it did.
// If the active task has vanished the session is discarded.
func (t *Timer) Tick() bool {
	if !t.session.Running || !t.session.Active() {
		return false
	}
	if !t.tasks.Exists(t.session.ActiveTaskID) {
		t.Discard()
		return false
	}
	t.session.ElapsedSeconds++
	return true
}

// Display renders the session for status lines, for example
// "Ship release 00:05" or "Ship release 00:05 (paused)".
func (t *Timer) Display() string {
	if !t.session.Active() {
		return "Idle"
	}
	name := t.session.ActiveTaskID
	if tk, ok := t.tasks.Get(t.session.ActiveTaskID); ok {
		name = tk.Text
	}
	out := fmt.Sprintf("%s %s", name, timeutil.FormatClock(t.session.ElapsedSeconds))
	if !t.session.Running {
		out += " (paused)"
	}
	return out
}

func (t *Timer) commit() int64 {
	elapsed := t.session.ElapsedSeconds
	if elapsed <= 0 {
		return 0
	}
	if _, ok := t.tasks.CommitFocusTime(t.session.ActiveTaskID, elapsed); !ok {
		return 0
	}
	return elapsed
}
