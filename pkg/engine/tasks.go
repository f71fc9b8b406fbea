package engine

import (
	"tableflip.dev/cmdcenter/pkg/task"
)

// CreateTask adds a todo task.
func (e *Engine) CreateTask(text string, category task.Category, priority task.Priority, notes string, due *task.Date) (task.Task, error) {
	var out task.Task
	err := e.mutate(func() error {
		var err error
		out, err = e.tasks.Create(text, category, priority, notes, due)
		return err
	})
	return out, err
}

// CycleStatus advances the task to its next status.
func (e *Engine) CycleStatus(id string) (task.Task, error) {
	return e.update(func() (task.Task, error) { return e.tasks.CycleStatus(id) })
}

// DeleteTask removes the task. If it is being focused on, the session is
// dropped and its uncommitted seconds are lost.
func (e *Engine) DeleteTask(id string) error {
	return e.mutate(func() error {
		if err := e.tasks.Delete(id); err != nil {
			return err
		}
		if e.timer.Session().ActiveTaskID == id {
			e.timer.Discard()
		}
		return nil
	})
}

// AddSubtask appends a subtask; blank titles are ignored.
func (e *Engine) AddSubtask(taskID, title string) (task.Task, error) {
	return e.update(func() (task.Task, error) { return e.tasks.AddSubtask(taskID, title) })
}

// ToggleSubtask flips a subtask's done flag.
func (e *Engine) ToggleSubtask(taskID, subtaskID string) (task.Task, error) {
	return e.update(func() (task.Task, error) { return e.tasks.ToggleSubtask(taskID, subtaskID) })
}

// RemoveSubtask deletes a subtask.
func (e *Engine) RemoveSubtask(taskID, subtaskID string) (task.Task, error) {
	return e.update(func() (task.Task, error) { return e.tasks.RemoveSubtask(taskID, subtaskID) })
}

// SetNotes replaces a task's notes.
func (e *Engine) SetNotes(id, notes string) (task.Task, error) {
	return e.update(func() (task.Task, error) { return e.tasks.SetNotes(id, notes) })
}

// SetDueDate sets or clears a task's due date.
func (e *Engine) SetDueDate(id string, due *task.Date) (task.Task, error) {
	return e.update(func() (task.Task, error) { return e.tasks.SetDueDate(id, due) })
}

// ResetAll moves every task back to todo.
func (e *Engine) ResetAll() {
	_ = e.mutate(func() error {
		e.tasks.BulkResetToTodo()
		return nil
	})
}

// ClearCompleted removes done tasks and returns how many went.
func (e *Engine) ClearCompleted() int {
	var n int
	_ = e.mutate(func() error {
		n = e.tasks.ClearCompleted()
		return nil
	})
	return n
}

// Task returns one task.
func (e *Engine) Task(id string) (task.Task, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tasks.Get(id)
}

// Tasks lists tasks matching f.
func (e *Engine) Tasks(f task.Filter) []task.Task {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tasks.List(f)
}

func (e *Engine) update(fn func() (task.Task, error)) (task.Task, error) {
	var out task.Task
	err := e.mutate(func() error {
		var err error
		out, err = fn()
		return err
	})
	return out, err
}
