package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/cmdcenter/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the command center",
		Example: `
cmdcenter ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openEngine()
			if err != nil {
				return err
			}
			i := ui.UI{Engine: l.Engine}
			return errors.Join(i.Do(context.Background()), l.Close())
		},
	}

	topLevel.AddCommand(cmd)
}
