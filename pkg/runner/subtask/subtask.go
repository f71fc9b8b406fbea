// Package subtask holds the runners for editing a task's checklist.
package subtask

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/errs"
	"tableflip.dev/cmdcenter/pkg/printers"
	"tableflip.dev/cmdcenter/pkg/task"
)

type Action string

const (
	ActionAdd    Action = "add"
	ActionToggle Action = "toggle"
	ActionRemove Action = "remove"
)

// Subtask applies Action to the task named by TaskID. For toggle and
// remove, Ref is a subtask id, id prefix, or 1-based position.
type Subtask struct {
	Action Action
	TaskID string
	Title  string
	Ref    string

	JSON   bool
	Engine *engine.Engine
}

func (n *Subtask) Do(ctx context.Context) error {
	if n.Engine == nil {
		return errors.New("can not edit subtasks, no engine")
	}
	t, err := n.Engine.ResolveTask(n.TaskID)
	if err != nil {
		return err
	}

	switch n.Action {
	case ActionAdd:
		t, err = n.Engine.AddSubtask(t.ID, n.Title)
	case ActionToggle:
		var id string
		if id, err = findSubtask(t, n.Ref); err == nil {
			t, err = n.Engine.ToggleSubtask(t.ID, id)
		}
	case ActionRemove:
		var id string
		if id, err = findSubtask(t, n.Ref); err == nil {
			t, err = n.Engine.RemoveSubtask(t.ID, id)
		}
	default:
		err = errs.Invalid("action", "unknown subtask action "+string(n.Action))
	}
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	if n.JSON {
		return pp.JSON(t)
	}
	pp.Task(t)
	return nil
}

func findSubtask(t task.Task, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if pos, err := strconv.Atoi(ref); err == nil {
		if pos < 1 || pos > len(t.Subtasks) {
			return "", errs.NotFound("subtask", ref)
		}
		return t.Subtasks[pos-1].ID, nil
	}
	found := ""
	for _, st := range t.Subtasks {
		if st.ID == ref {
			return st.ID, nil
		}
		if ref != "" && strings.HasPrefix(st.ID, ref) {
			if found != "" {
				return "", errs.Invalid("subtask", "ambiguous subtask id "+ref)
			}
			found = st.ID
		}
	}
	if found == "" {
		return "", errs.NotFound("subtask", ref)
	}
	return found, nil
}
