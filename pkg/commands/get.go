package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cmdcenter/pkg/commands/options"
	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "get [id]",
		Aliases: []string{"list", "ls"},
		Short:   "List tasks, or show one task in detail",
		Example: `
cmdcenter get
cmdcenter get --status in-progress
cmdcenter get --category dev -k
cmdcenter get 3f2a
`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return taskCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) == 1 {
				io.ID = args[0]
			}
			filter, err := fo.Filter()
			if err != nil {
				return output.HandleError(err)
			}
			return output.HandleError(withEngine(func(e *engine.Engine) error {
				s := get.Get{
					ID:     io.ID,
					Filter: filter,
					ShowID: io.ShowID,
					JSON:   output.JSON,
					Engine: e,
				}
				return s.Do(context.Background())
			}))
		},
	}

	options.AddFilterArgs(cmd, fo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	_ = cmd.RegisterFlagCompletionFunc("category", categoryCompletions)
	_ = cmd.RegisterFlagCompletionFunc("status", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"todo", "in-progress", "done"}, cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}
