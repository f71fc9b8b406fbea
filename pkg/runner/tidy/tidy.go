// Package tidy holds the bulk task runners.
package tidy

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/cmdcenter/pkg/engine"
)

// Reset moves every task back to todo, keeping focus time.
type Reset struct {
	Engine *engine.Engine
}

func (n *Reset) Do(ctx context.Context) error {
	if n.Engine == nil {
		return errors.New("can not reset, no engine")
	}
	n.Engine.ResetAll()
	s := n.Engine.Stats()
	_, _ = fmt.Fprintf(color.Output, "%d tasks reset to todo\n", s.Total)
	return nil
}

// ClearCompleted removes done tasks.
type ClearCompleted struct {
	Engine *engine.Engine
}

func (n *ClearCompleted) Do(ctx context.Context) error {
	if n.Engine == nil {
		return errors.New("can not clear, no engine")
	}
	removed := n.Engine.ClearCompleted()
	switch removed {
	case 0:
		_, _ = color.New(color.Faint).Fprintln(color.Output, "nothing to clear")
	case 1:
		_, _ = fmt.Fprintln(color.Output, "cleared 1 completed task")
	default:
		_, _ = fmt.Fprintf(color.Output, "cleared %d completed tasks\n", removed)
	}
	return nil
}
