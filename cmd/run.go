package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/courtsched/internal/browser"
	"github.com/example/courtsched/internal/config"
	"github.com/example/courtsched/internal/orchestrator"
	"github.com/example/courtsched/internal/pushover"
	"github.com/example/courtsched/internal/ui"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run one booking pass and send the summary notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			store, closeStore := openLedger(ctx, cfg)
			defer closeStore()

			r := &orchestrator.Runner{
				Config: cfg,
				Ledger: store,
				Sessions: func(ctx context.Context) (ui.Session, error) {
					b, err := browser.Open(ctx, cfg.Headless)
					if err != nil {
						return nil, err
					}
					return b, nil
				},
				Notifier: pushover.New(cfg.PushoverUserKey, cfg.PushoverAPIToken),
			}

			agg := r.Run(ctx)
			log.Printf("run: results:\n%s", agg.Render())
			return nil
		},
	}
}
