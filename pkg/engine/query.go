package engine

import (
	"tableflip.dev/cmdcenter/pkg/focus"
	"tableflip.dev/cmdcenter/pkg/notify"
	"tableflip.dev/cmdcenter/pkg/task"
)

// Stats are the derived values surfaces display. They are recomputed from
// the repositories on every call.
type Stats struct {
	task.Counts
	Unread int    `json:"unread"`
	Focus  string `json:"focus"`
}

// Snapshot is an immutable copy of the engine state. Seq increases with
// every change, so a larger Seq is always the newer state.
type Snapshot struct {
	Seq           uint64                `json:"seq"`
	Tasks         []task.Task           `json:"tasks"`
	Notifications []notify.Notification `json:"notifications"`
	Focus         focus.Session         `json:"focus"`
	Stats         Stats                 `json:"stats"`
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Stats returns the current derived values.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.statsLocked()
}

// Session returns the focus timer state.
func (e *Engine) Session() focus.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timer.Session()
}

// changedLocked records a change and returns the snapshot that describes it.
func (e *Engine) changedLocked() Snapshot {
	e.seq++
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Seq:           e.seq,
		Tasks:         e.tasks.List(task.Filter{}),
		Notifications: e.log.List(),
		Focus:         e.timer.Session(),
		Stats:         e.statsLocked(),
	}
}

func (e *Engine) statsLocked() Stats {
	return Stats{
		Counts: e.tasks.Counts(),
		Unread: e.log.UnreadCount(),
		Focus:  e.timer.Display(),
	}
}
