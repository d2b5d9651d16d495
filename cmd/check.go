package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/courtsched/internal/booking"
	"github.com/example/courtsched/internal/config"
	"github.com/example/courtsched/internal/ledger"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Dry run: show what a booking pass would attempt, without a browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			ctx := context.Background()
			store, closeStore := openLedger(ctx, cfg)
			defer closeStore()

			now := time.Now()
			for _, req := range cfg.Requests {
				date := booking.NextDateForDay(req.Day, now)
				pending := ledger.Pending(store, req)
				if len(pending) == 0 {
					fmt.Fprintf(os.Stdout, "%s (%s): already booked (%s)\n",
						req.Day, date.Format("2006-01-02"), strings.Join(req.Slots, ", "))
					continue
				}
				fmt.Fprintf(os.Stdout, "%s (%s): would attempt %s via %s\n",
					req.Day, date.Format("2006-01-02"), strings.Join(pending, ", "), strings.Join(cfg.Categories, " then "))
			}
			return nil
		},
	}
}
