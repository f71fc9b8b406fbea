package strike

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/cmdcenter/pkg/engine"
)

// Strike deletes a task. Focus time not yet committed is lost.
type Strike struct {
	ID     string
	Engine *engine.Engine
}

func (n *Strike) Do(ctx context.Context) error {
	if n.Engine == nil {
		return errors.New("can not strike, no engine")
	}
	t, err := n.Engine.ResolveTask(n.ID)
	if err != nil {
		return err
	}
	if err := n.Engine.DeleteTask(t.ID); err != nil {
		return err
	}
	_, _ = color.New(color.CrossedOut, color.Faint).Fprintln(color.Output, t.Text)
	_, _ = fmt.Fprintln(color.Output, "")
	return nil
}
