// Package focus runs a foreground focus session from the command line.
package focus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/notify"
	"tableflip.dev/cmdcenter/pkg/timeutil"
)

// Focus starts the timer on a task and blocks until For elapses or ctx is
// cancelled, then commits the elapsed time.
type Focus struct {
	ID  string
	For time.Duration
	// Out receives a live clock when it is a terminal.
	Out    *os.File
	Engine *engine.Engine
}

func (n *Focus) Do(ctx context.Context) error {
	if n.Engine == nil {
		return errors.New("can not focus, no engine")
	}
	if n.For <= 0 {
		return errors.New("focus duration must be positive")
	}
	t, err := n.Engine.ResolveTask(n.ID)
	if err != nil {
		return err
	}
	if err := n.Engine.StartFocus(t.ID); err != nil {
		return err
	}

	out := n.Out
	if out == nil {
		out = os.Stdout
	}
	var w io.Writer = color.Output
	live := isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())
	if live {
		cancel := n.Engine.Subscribe(func(s engine.Snapshot) {
			_, _ = fmt.Fprintf(w, "\r\033[K⏱ %s", s.Stats.Focus)
		})
		defer cancel()
	} else {
		_, _ = fmt.Fprintf(w, "focusing on %q for %s\n", t.Text, timeutil.FormatWindow(n.For))
	}

	sessionCtx, cancel := context.WithTimeout(ctx, n.For)
	defer cancel()
	if err := n.Engine.Run(sessionCtx); err != nil {
		return err
	}
	finished := errors.Is(sessionCtx.Err(), context.DeadlineExceeded)

	committed := n.Engine.StopFocus()
	if live {
		_, _ = fmt.Fprintln(w, "")
	}
	if finished {
		n.Engine.Notify("Focus session complete", fmt.Sprintf("%s on %q", timeutil.FormatSeconds(committed), t.Text), notify.TypeSuccess, "focus")
	}
	_, _ = color.New(color.FgHiMagenta).Fprintf(w, "committed %s to %q\n", timeutil.FormatSeconds(committed), t.Text)
	return nil
}
