package dump

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/printers"
)

// Dump turns free text, one task per line, into tasks. With no Text the
// lines are read from In when it is not a terminal.
type Dump struct {
	Text string
	In   *os.File

	ShowID bool
	JSON   bool
	Engine *engine.Engine
}

func (n *Dump) Do(ctx context.Context) error {
	if n.Engine == nil {
		return errors.New("can not dump, no engine")
	}
	text := n.Text
	if text == "" {
		in := n.In
		if in == nil {
			in = os.Stdin
		}
		if isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()) {
			return errors.New("nothing to dump: pass text or pipe lines on stdin")
		}
		b, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(b)
	}

	added, err := n.Engine.BrainDump(text)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	if n.JSON {
		return pp.JSON(added)
	}
	pp.TitleWithCount("brain dump", len(added), "task", "tasks")
	pp.Tasks(n.Engine.Session(), added...)
	_, _ = color.New(color.Faint).Fprintln(color.Output, "new tasks are filed under work at medium priority")
	return nil
}
