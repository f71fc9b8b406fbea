package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/cmdcenter/pkg/commands/options"
	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/runner/subtask"
)

func addSubtask(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "subtask",
		Aliases: []string{"sub"},
		Short:   "Edit the checklist inside a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addSubtaskAction(cmd, subtask.ActionAdd, "add <task id> <title>", "Append a checklist item", `
cmdcenter subtask add 3f2a tag the release
`)
	addSubtaskAction(cmd, subtask.ActionToggle, "toggle <task id> <position|subtask id>", "Flip a checklist item between open and done", `
cmdcenter subtask toggle 3f2a 1
`)
	addSubtaskAction(cmd, subtask.ActionRemove, "remove <task id> <position|subtask id>", "Remove a checklist item", `
cmdcenter subtask remove 3f2a 2
`)

	topLevel.AddCommand(cmd)
}

func addSubtaskAction(parent *cobra.Command, action subtask.Action, use, short, example string) {
	io := &options.IDOptions{}
	rest := ""

	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Example: example,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires a task id and a subtask")
			}
			io.ID = args[0]
			rest = strings.Join(args[1:], " ")
			return nil
		},
		ValidArgsFunction: idArgCompletion,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return output.HandleError(withEngine(func(e *engine.Engine) error {
				s := subtask.Subtask{
					Action: action,
					TaskID: io.ID,
					JSON:   output.JSON,
					Engine: e,
				}
				if action == subtask.ActionAdd {
					s.Title = rest
				} else {
					s.Ref = rest
				}
				return s.Do(context.Background())
			}))
		},
	}

	options.AddOutputArg(cmd, output)

	parent.AddCommand(cmd)
}
