package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/cmdcenter/pkg/timeutil"
)

// FocusOptions
type FocusOptions struct {
	For string
}

func AddFocusArgs(cmd *cobra.Command, o *FocusOptions) {
	cmd.Flags().StringVar(&o.For, "for", timeutil.DefaultSession,
		`How long to focus, example: --for=45m or --for=1h30m. Ctrl-C stops early.`)
}

func (o *FocusOptions) Duration() (time.Duration, error) {
	d, _, err := timeutil.ParseWindow(o.For)
	return d, err
}
