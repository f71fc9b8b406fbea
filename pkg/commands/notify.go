package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/cmdcenter/pkg/commands/options"
	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/runner/notify"
)

func addNotify(topLevel *cobra.Command) {
	no := &options.NotifyOptions{}
	title := ""

	cmd := &cobra.Command{
		Use:   "notify <title>",
		Short: "Publish a notification on the command bus",
		Example: `
cmdcenter notify deploy finished --type success --source ci
cmdcenter notify "disk almost full" -t warning -m "/var is at 91%"
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return output.HandleError(withEngine(func(e *engine.Engine) error {
				s := notify.Notify{
					Title:   title,
					Message: no.Message,
					Type:    no.Type,
					Source:  no.Source,
					JSON:    output.JSON,
					Engine:  e,
				}
				return s.Do(context.Background())
			}))
		},
	}

	options.AddNotifyArgs(cmd, no)
	options.AddOutputArg(cmd, output)
	_ = cmd.RegisterFlagCompletionFunc("type", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"info", "success", "warning", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}

func addNotifications(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	unread := false

	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"inbox", "n"},
		Short:   "List the notification log, newest first",
		Example: `
cmdcenter notifications
cmdcenter notifications --unread
cmdcenter notifications read
cmdcenter notifications read 9c1e
cmdcenter notifications delete 9c1e
cmdcenter notifications clear
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return output.HandleError(withEngine(func(e *engine.Engine) error {
				s := notify.Notifications{
					Action:     notify.ActionList,
					UnreadOnly: unread,
					ShowID:     io.ShowID,
					JSON:       output.JSON,
					Engine:     e,
				}
				return s.Do(context.Background())
			}))
		},
	}

	cmd.Flags().BoolVarP(&unread, "unread", "u", false, "Only unread notifications.")
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	addNotificationsAction(cmd, notify.ActionRead, "read [id]", "Mark one notification read, or all of them", cobra.MaximumNArgs(1))
	addNotificationsAction(cmd, notify.ActionDelete, "delete <id>", "Delete one notification", cobra.ExactArgs(1))
	addNotificationsAction(cmd, notify.ActionClear, "clear", "Delete every notification", cobra.NoArgs)

	topLevel.AddCommand(cmd)
}

func addNotificationsAction(parent *cobra.Command, action notify.Action, use, short string, args cobra.PositionalArgs) {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return output.HandleError(withEngine(func(e *engine.Engine) error {
				s := notify.Notifications{
					Action: action,
					ID:     id,
					JSON:   output.JSON,
					Engine: e,
				}
				return s.Do(context.Background())
			}))
		},
	}

	options.AddOutputArg(cmd, output)

	parent.AddCommand(cmd)
}
