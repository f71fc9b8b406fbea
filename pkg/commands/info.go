package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/cmdcenter/pkg/commands/options"
	"tableflip.dev/cmdcenter/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "info",
		Aliases: []string{"stats"},
		Short:   "Where things are stored, with task and notification counts.",
		Example: `
cmdcenter info
cmdcenter stats --json
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			l, err := openEngine()
			if err != nil {
				return output.HandleError(err)
			}
			s := info.Info{
				Config: l.Config,
				JSON:   output.JSON,
				Engine: l.Engine,
			}
			err = s.Do(context.Background())
			return output.HandleError(errors.Join(err, l.Close()))
		},
	}

	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
