package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/runner/tidy"
)

func addReset(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Move every task back to todo",
		Example: `
cmdcenter reset
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return output.HandleError(withEngine(func(e *engine.Engine) error {
				s := tidy.Reset{Engine: e}
				return s.Do(context.Background())
			}))
		},
	}

	topLevel.AddCommand(cmd)
}

func addClearCompleted(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "clear-completed",
		Aliases: []string{"clear", "tidy"},
		Short:   "Delete every done task",
		Example: `
cmdcenter clear-completed
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return output.HandleError(withEngine(func(e *engine.Engine) error {
				s := tidy.ClearCompleted{Engine: e}
				return s.Do(context.Background())
			}))
		},
	}

	topLevel.AddCommand(cmd)
}
