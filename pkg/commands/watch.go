package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/cmdcenter/pkg/runner/watch"
	"tableflip.dev/cmdcenter/pkg/store"
)

func addWatch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow changes other cmdcenter processes make to the store",
		Long: `Follow changes other cmdcenter processes make to the store. Each change prints
the key that changed with fresh counts. Needs the diskv backend.`,
		Example: `
cmdcenter watch
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			s, err := store.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close(s)
			disk, ok := s.(*store.Disk)
			if !ok {
				return fmt.Errorf("watch needs the %s backend, configured backend is %q", store.BackendDiskv, cfg.BackendName)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			w := watch.Watch{Disk: disk}
			return w.Do(ctx)
		},
	}

	topLevel.AddCommand(cmd)
}
