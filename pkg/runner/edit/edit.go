// Package edit holds runners that change a task's notes or due date.
package edit

import (
	"context"
	"errors"

	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/printers"
	"tableflip.dev/cmdcenter/pkg/task"
)

// Note replaces the notes of a task. Append keeps the existing notes and
// adds Notes on a new line.
type Note struct {
	ID     string
	Notes  string
	Append bool

	JSON   bool
	Engine *engine.Engine
}

func (n *Note) Do(ctx context.Context) error {
	if n.Engine == nil {
		return errors.New("can not edit, no engine")
	}
	t, err := n.Engine.ResolveTask(n.ID)
	if err != nil {
		return err
	}
	notes := n.Notes
	if n.Append && t.Notes != "" {
		notes = t.Notes + "\n" + notes
	}
	if t, err = n.Engine.SetNotes(t.ID, notes); err != nil {
		return err
	}
	return show(t, n.JSON)
}

// Due sets the due date, or clears it when Due is nil.
type Due struct {
	ID  string
	Due *task.Date

	JSON   bool
	Engine *engine.Engine
}

func (n *Due) Do(ctx context.Context) error {
	if n.Engine == nil {
		return errors.New("can not edit, no engine")
	}
	t, err := n.Engine.ResolveTask(n.ID)
	if err != nil {
		return err
	}
	if t, err = n.Engine.SetDueDate(t.ID, n.Due); err != nil {
		return err
	}
	return show(t, n.JSON)
}

func show(t task.Task, asJSON bool) error {
	pp := printers.PrettyPrint{}
	if asJSON {
		return pp.JSON(t)
	}
	pp.Task(t)
	return nil
}
