package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/task"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(cmdcenter completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(cmdcenter completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// taskCompletions offers task ids with the task text as the description.
func taskCompletions(toComplete string) []string {
	var out []string
	_ = withEngine(func(e *engine.Engine) error {
		for _, t := range e.Tasks(task.Filter{}) {
			if strings.HasPrefix(t.ID, toComplete) {
				out = append(out, t.ID+"\t"+t.Text)
			}
		}
		return nil
	})
	return out
}

func idArgCompletion(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return taskCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
}

func categoryCompletions(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, c := range task.Categories() {
		out = append(out, string(c))
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
