package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/cmdcenter/pkg/commands/options"
	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	to := &options.TaskOptions{}
	do := &options.DueOptions{}
	io := &options.IDOptions{}
	text := ""

	cmd := &cobra.Command{
		Use:     "add <text>",
		Aliases: []string{"new", "todo"},
		Short:   "Add a task",
		Example: `
cmdcenter add write the release notes
cmdcenter add patch the CVE --category urgent --priority critical --due 3/14
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires the task text")
			}
			text = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			category, priority, err := to.Parse()
			if err != nil {
				return output.HandleError(err)
			}
			due, err := do.GetDue(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			return output.HandleError(withEngine(func(e *engine.Engine) error {
				s := add.Add{
					Text:     text,
					Category: category,
					Priority: priority,
					Notes:    to.Notes,
					Due:      due,
					ShowID:   io.ShowID,
					JSON:     output.JSON,
					Engine:   e,
				}
				return s.Do(context.Background())
			}))
		},
	}

	options.AddTaskArgs(cmd, to)
	options.AddDueArgs(cmd, do)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	_ = cmd.RegisterFlagCompletionFunc("category", categoryCompletions)

	topLevel.AddCommand(cmd)
}
