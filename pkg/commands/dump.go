package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/cmdcenter/pkg/commands/options"
	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/runner/dump"
)

func addDump(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "dump [text]",
		Aliases: []string{"braindump"},
		Short:   "Turn free text into tasks, one per line",
		Long: `Turn free text into tasks, one per line. Bullet markers such as "-", "*",
"•" and "1." are stripped and blank lines are skipped. Without arguments the
text is read from stdin.`,
		Example: `
cmdcenter dump "call the bank"
pbpaste | cmdcenter dump
cmdcenter dump < meeting-notes.txt
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return output.HandleError(withEngine(func(e *engine.Engine) error {
				s := dump.Dump{
					Text:   strings.Join(args, " "),
					In:     os.Stdin,
					ShowID: io.ShowID,
					JSON:   output.JSON,
					Engine: e,
				}
				return s.Do(context.Background())
			}))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
