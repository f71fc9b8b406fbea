package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/cmdcenter/pkg/commands/options"
	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/runner/cycle"
)

func addCycle(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	times := 1

	cmd := &cobra.Command{
		Use:     "cycle <task id>",
		Aliases: []string{"next", "status"},
		Short:   "Advance a task todo -> in-progress -> done -> todo",
		Example: `
cmdcenter cycle 3f2a
cmdcenter cycle 3f2a --times 2
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
				s := cycle.Cycle{
					ID:     io.ID,
					Times:  times,
					ShowID: io.ShowID,
					JSON:   output.JSON,
					Engine: e,
				}
				return s.Do(context.Background())
			}))
		},
	}

	cmd.Flags().IntVarP(&times, "times", "t", 1, "How many steps to advance.")
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
