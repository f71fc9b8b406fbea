package options

import (
	"github.com/spf13/cobra"
)

// NotifyOptions
type NotifyOptions struct {
	Type    string
	Message string
	Source  string
}

func AddNotifyArgs(cmd *cobra.Command, o *NotifyOptions) {
	cmd.Flags().StringVarP(&o.Type, "type", "t", "info",
		"Notification type: info, success, warning, error.")
	cmd.Flags().StringVarP(&o.Message, "message", "m", "",
		"Optional message body.")
	cmd.Flags().StringVar(&o.Source, "source", "cli",
		"Who raised the notification.")
}
