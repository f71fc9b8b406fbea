package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/cmdcenter/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "cmdcenter",
		Short: base.Wrap80("A task list, notification log and focus timer for the terminal."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addAdd(topLevel)
	addGet(topLevel)
	addCycle(topLevel)
	addStrike(topLevel)
	addSubtask(topLevel)
	addNote(topLevel)
	addDue(topLevel)
	addReset(topLevel)
	addClearCompleted(topLevel)
	addDump(topLevel)
	addFocus(topLevel)
	addNotify(topLevel)
	addNotifications(topLevel)
	addInfo(topLevel)
	addWatch(topLevel)
	addMCP(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}
