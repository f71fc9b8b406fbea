package info

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/printers"
	"tableflip.dev/cmdcenter/pkg/store"
)

// Info prints where data lives and the derived counters.
type Info struct {
	Config *store.FileConfig
	JSON   bool
	Engine *engine.Engine
}

func (n *Info) Do(ctx context.Context) error {
	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	pp := printers.PrettyPrint{}
	if n.JSON {
		out := struct {
			Config *store.FileConfig `json:"config"`
			Stats  *engine.Stats     `json:"stats,omitempty"`
		}{Config: n.Config}
		if n.Engine != nil {
			s := n.Engine.Stats()
			out.Stats = &s
		}
		return pp.JSON(out)
	}

	if override := os.Getenv("CMDCENTER_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(color.Output, "CMDCENTER_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(color.Output, "CMDCENTER_CONFIG_PATH env var not set")
	}

	tbl := uitable.New()
	tbl.AddRow("path:", n.Config.Path)
	tbl.AddRow("profile:", n.Config.ProfileName)
	tbl.AddRow("backend:", n.Config.BackendName)
	tbl.AddRow("debounce:", n.Config.DebounceDelay)
	tbl.AddRow("tick:", n.Config.TickInterval)
	_, _ = fmt.Fprintln(color.Output, tbl)
	_, _ = fmt.Fprintln(color.Output, "")

	if n.Engine != nil {
		pp.Title("stats")
		pp.Stats(n.Engine.Stats())
	}
	return nil
}
