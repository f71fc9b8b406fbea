package get

import (
	"context"
	"errors"

	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/printers"
	"tableflip.dev/cmdcenter/pkg/task"
)

type Get struct {
	ID     string
	Filter task.Filter
	ShowID bool
	JSON   bool
	Engine *engine.Engine
}

func (n *Get) Do(ctx context.Context) error {
	if n.Engine == nil {
		return errors.New("can not get, no engine")
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID}

	if n.ID != "" {
		t, err := n.Engine.ResolveTask(n.ID)
		if err != nil {
			return err
		}
		if n.JSON {
			return pp.JSON(t)
		}
		pp.Task(t)
		return nil
	}

	all := n.Engine.Tasks(n.Filter)
	if n.JSON {
		return pp.JSON(all)
	}

	// Grouped by category in display order, each group still sorted by
	// priority.
	session := n.Engine.Session()
	pp.NewLine()
	for _, c := range task.Categories() {
		if n.Filter.Category != "" && n.Filter.Category != c {
			continue
		}
		var group []task.Task
		for _, t := range all {
			if t.Category == c {
				group = append(group, t)
			}
		}
		if len(group) == 0 && n.Filter.Category == "" {
			continue
		}
		pp.TitleWithCount(string(c), len(group), "task", "tasks")
		pp.Tasks(session, group...)
	}
	if len(all) == 0 && n.Filter.Category == "" {
		pp.Title("tasks")
		pp.Tasks(session)
	}
	return nil
}
