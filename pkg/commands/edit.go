package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/cmdcenter/pkg/commands/options"
	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/runner/edit"
)

func addNote(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	notes := ""
	appendNotes := false

	cmd := &cobra.Command{
		Use:   "note <task id> [text]",
		Short: "Replace or extend the notes of a task",
		Long:  "Replace the notes of a task. With no text the notes are cleared.",
		Example: `
cmdcenter note 3f2a waiting on review from ops
cmdcenter note 3f2a --append pinged again
cmdcenter note 3f2a
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a task id")
			}
			io.ID = args[0]
			notes = strings.Join(args[1:], " ")
			return nil
		},
		ValidArgsFunction: idArgCompletion,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return output.HandleError(withEngine(func(e *engine.Engine) error {
				s := edit.Note{
					ID:     io.ID,
					Notes:  notes,
					Append: appendNotes,
					JSON:   output.JSON,
					Engine: e,
				}
				return s.Do(context.Background())
			}))
		},
	}

	cmd.Flags().BoolVarP(&appendNotes, "append", "a", false, "Add a line to the notes instead of replacing them.")
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addDue(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	do := &options.DueOptions{}

	cmd := &cobra.Command{
		Use:   "due <task id> [date]",
		Short: "Set or clear the due date of a task",
		Example: `
cmdcenter due 3f2a 2025-3-14
cmdcenter due 3f2a 3/14
cmdcenter due 3f2a
`,
		Args: func(_ *cobra.Command, args []string) error {
			switch len(args) {
			case 1:
			case 2:
				do.DueString = args[1]
			default:
				return errors.New("requires a task id and an optional date")
			}
			io.ID = args[0]
			return nil
		},
		ValidArgsFunction: idArgCompletion,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			due, err := do.GetDue(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			return output.HandleError(withEngine(func(e *engine.Engine) error {
				s := edit.Due{
					ID:     io.ID,
					Due:    due,
					JSON:   output.JSON,
					Engine: e,
				}
				return s.Do(context.Background())
			}))
		},
	}

	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
