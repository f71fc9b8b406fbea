package ui

import (
	"context"
	"errors"

	"tableflip.dev/cmdcenter/pkg/engine"
	tuiapp "tableflip.dev/cmdcenter/pkg/tui/app"
)

// UI runs the command center until the user quits. The engine clock runs
// for as long as the UI is open.
type UI struct {
	Engine *engine.Engine
}

func (d *UI) Do(ctx context.Context) error {
	if d.Engine == nil {
		return errors.New("can not open ui, no engine")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	clock := make(chan error, 1)
	go func() { clock <- d.Engine.Run(ctx) }()

	err := tuiapp.Run(ctx, d.Engine)
	cancel()
	return errors.Join(err, <-clock)
}
