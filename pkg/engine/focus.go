package engine

// StartFocus focuses on the task, or stops if it is already focused.
func (e *Engine) StartFocus(id string) error {
	return e.mutate(func() error {
		return e.timer.Start(id)
	})
}

// ToggleFocus pauses or resumes the active session.
func (e *Engine) ToggleFocus() bool {
	var running bool
	_ = e.mutate(func() error {
		running = e.timer.Toggle()
		return nil
	})
	return running
}

// StopFocus commits the active session and returns the seconds committed.
func (e *Engine) StopFocus() int64 {
	var committed int64
	_ = e.mutate(func() error {
		committed = e.timer.Stop()
		return nil
	})
	return committed
}

// Tick advances the focus timer by one interval. Observers are only told
// when the session changed.
func (e *Engine) Tick() bool {
	e.mu.Lock()
	before := e.timer.Session()
	advanced := e.timer.Tick()
	changed := e.timer.Session() != before
	var snap Snapshot
	if changed {
		snap = e.changedLocked()
	}
	e.mu.Unlock()
	if changed {
		e.publish(snap)
	}
	return advanced
}
