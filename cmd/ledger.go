package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/courtsched/internal/config"
	"github.com/example/courtsched/internal/ledger"
)

func newLedgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect or reset the booked-slot ledger",
	}
	cmd.AddCommand(newLedgerListCmd())
	cmd.AddCommand(newLedgerClearCmd())
	return cmd
}

func newLedgerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded (day, slot) pairs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, closeStore := openLedger(ctx, config.LedgerFromEnv())
			defer closeStore()

			keys := store.Keys()
			if len(keys) == 0 {
				fmt.Fprintln(os.Stdout, "ledger is empty")
				return nil
			}
			for _, k := range keys {
				fmt.Fprintf(os.Stdout, "%s_%s\n", k.Day, k.Slot)
			}
			return nil
		},
	}
}

func newLedgerClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget every recorded pair (next run re-attempts everything)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, closeStore := openLedger(ctx, config.LedgerFromEnv())
			defer closeStore()
			return store.Clear(ctx)
		},
	}
}

// openLedger picks the backend from config and loads it. A load failure
// degrades to an empty set: the worst case is a duplicate attempt, which the
// site resolves by reporting the slot unavailable.
func openLedger(ctx context.Context, cfg config.Config) (ledger.Store, func()) {
	var store ledger.Store
	closeStore := func() {}
	if cfg.RedisAddr != "" {
		r := ledger.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
		store = r
		closeStore = func() { _ = r.Close() }
	} else {
		store = ledger.NewFile(cfg.LedgerPath)
	}
	if err := store.Load(ctx); err != nil {
		log.Printf("cmd: loading ledger: %v (continuing with empty set)", err)
	}
	return store, closeStore
}
