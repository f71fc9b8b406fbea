package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/cmdcenter/pkg/commands/options"
	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/runner/strike"
)

func addStrike(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "strike <task id>",
		Aliases: []string{"delete", "rm"},
		Short:   "Delete a task",
		Long:    "Delete a task. If it is being focused on, the uncommitted focus time is dropped.",
		Example: `
cmdcenter strike 3f2a
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
			return output.HandleError(withEngine(func(e *engine.Engine) error {
				s := strike.Strike{
					ID:     io.ID,
					Engine: e,
				}
				return s.Do(context.Background())
			}))
		},
	}

	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
