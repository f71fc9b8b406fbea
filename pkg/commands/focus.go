package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/cmdcenter/pkg/commands/options"
	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/runner/focus"
)

func addFocus(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	fo := &options.FocusOptions{}

	cmd := &cobra.Command{
		Use:   "focus <task id>",
		Short: "Run the focus timer on a task",
		Long: `Run the focus timer on a task in the foreground. The elapsed time is
committed to the task when the session ends or is interrupted with ctrl-c.`,
		Example: `
cmdcenter focus 3f2a
cmdcenter focus 3f2a --for 45m
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a task id")
			}
			io.ID = args[0]
			return nil
		},
		ValidArgsFunction: idArgCompletion,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			d, err := fo.Duration()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return withEngine(func(e *engine.Engine) error {
				s := focus.Focus{
					ID:     io.ID,
					For:    d,
					Out:    os.Stdout,
					Engine: e,
				}
				return s.Do(ctx)
			})
		},
	}

	options.AddFocusArgs(cmd, fo)

	topLevel.AddCommand(cmd)
}
