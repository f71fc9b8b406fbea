package cycle

import (
	"context"
	"errors"

	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/printers"
)

// Cycle advances a task todo -> in-progress -> done -> todo. Times repeats
// the step, so 2 on a todo task marks it done.
type Cycle struct {
	ID     string
	Times  int
	ShowID bool
	JSON   bool
	Engine *engine.Engine
}

func (n *Cycle) Do(ctx context.Context) error {
	if n.Engine == nil {
		return errors.New("can not cycle, no engine")
	}
	t, err := n.Engine.ResolveTask(n.ID)
	if err != nil {
		return err
	}
	times := n.Times
	if times < 1 {
		times = 1
	}
	for i := 0; i < times; i++ {
		if t, err = n.Engine.CycleStatus(t.ID); err != nil {
			return err
		}
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	if n.JSON {
		return pp.JSON(t)
	}
	pp.Tasks(n.Engine.Session(), t)
	return nil
}
