package add

import (
	"context"
	"errors"

	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/printers"
	"tableflip.dev/cmdcenter/pkg/task"
)

type Add struct {
	Text     string
	Category task.Category
	Priority task.Priority
	Notes    string
	Due      *task.Date

	ShowID bool
	JSON   bool
	Engine *engine.Engine
}

func (n *Add) Do(ctx context.Context) error {
	if n.Engine == nil {
		return errors.New("can not add, no engine")
	}
	t, err := n.Engine.CreateTask(n.Text, n.Category, n.Priority, n.Notes, n.Due)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	if n.JSON {
		return pp.JSON(t)
	}
	pp.Title(string(t.Category))
	pp.Tasks(n.Engine.Session(), n.Engine.Tasks(task.Filter{Category: t.Category})...)
	return nil
}
