// Package watch reports store changes made by any cmdcenter process.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/store"
)

type Watch struct {
	Disk *store.Disk
	Out  io.Writer
}

func (n *Watch) Do(ctx context.Context) error {
	if n.Disk == nil {
		return errors.New("watch needs the diskv backend")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	events, err := n.Disk.Watch(ctx)
	if err != nil {
		return err
	}
	faint := color.New(color.Faint)
	_, _ = faint.Fprintf(out, "watching %s, ctrl-c to stop\n", n.Disk.BasePath())

	for ev := range events {
		_, _ = faint.Fprint(out, time.Now().Format("15:04:05 "))
		_, _ = fmt.Fprintf(out, "%-13s %-13s", ev.Key, ev.Type)
		if s, err := n.stats(); err != nil {
			_, _ = color.New(color.FgRed).Fprintf(out, " %v", err)
		} else {
			_, _ = faint.Fprintf(out, " todo %d  doing %d  done %d  unread %d", s.Todo, s.InProgress, s.Done, s.Unread)
		}
		_, _ = fmt.Fprintln(out, "")
	}
	return nil
}

// stats reads the store afresh; the watcher never writes.
func (n *Watch) stats() (engine.Stats, error) {
	e := engine.New(n.Disk, engine.Options{})
	defer e.Close()
	if err := e.Load(); err != nil {
		return engine.Stats{}, err
	}
	return e.Stats(), nil
}
