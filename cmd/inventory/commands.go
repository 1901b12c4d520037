package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rogerio-castellano/inventory-console/internal/app"
	"github.com/rogerio-castellano/inventory-console/internal/backup"
	"github.com/rogerio-castellano/inventory-console/internal/clock"
	"github.com/rogerio-castellano/inventory-console/internal/config"
	"github.com/rogerio-castellano/inventory-console/internal/logging"
	"github.com/rogerio-castellano/inventory-console/internal/seed"
	"github.com/spf13/cobra"
)

// runFunc is the body of a command once config, logging and the store are ready.
type runFunc func(ctx context.Context, cmd *cobra.Command, cfg *config.Config, store *app.Store, clk clock.Clock) error

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "inventory",
		Short: "Seed the product inventory from CSV and manage it from an interactive menu",
		Long: "inventory loads the seed CSV into the product store, then offers a menu to\n" +
			"view a product by ID, add or update a product, and back the table up to CSV.\n" +
			"Settings come from inventory.yaml, .env and INVENTORY_* environment variables.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: withStore(func(ctx context.Context, cmd *cobra.Command, cfg *config.Config, store *app.Store, clk clock.Clock) error {
			if _, err := seed.SeedFile(ctx, store.Products, cfg.Files.Seed); err != nil {
				return err
			}
			menu := app.NewMenu(store.Products, cfg, clk, cmd.InOrStdin(), cmd.OutOrStdout())
			if err := menu.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		}),
	}

	root.AddCommand(newSeedCmd(), newBackupCmd())
	return root
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the seed CSV into the product store and exit",
		Args:  cobra.NoArgs,
		RunE: withStore(func(ctx context.Context, cmd *cobra.Command, cfg *config.Config, store *app.Store, _ clock.Clock) error {
			sum, err := seed.SeedFile(ctx, store.Products, cfg.Files.Seed)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d products (%d new, %d updated) from %s\n",
				sum.Total(), sum.Inserted, sum.Updated, cfg.Files.Seed)
			return nil
		}),
	}
}

func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Write the product store to the backup CSV and exit",
		Args:  cobra.NoArgs,
		RunE: withStore(func(ctx context.Context, cmd *cobra.Command, cfg *config.Config, store *app.Store, _ clock.Clock) error {
			products, err := store.Products.ListAll(ctx)
			if err != nil {
				return fmt.Errorf("backup: %w", err)
			}
			if err := backup.WriteFile(cfg.Files.Backup, products); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backed up %d products to %s\n", len(products), cfg.Files.Backup)
			return nil
		}),
	}
}

func withStore(run runFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		clk := clock.NewRealClock()
		store, err := app.OpenStore(ctx, cfg, clk)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				fmt.Fprintln(os.Stderr, "close store:", err)
			}
		}()

		return run(ctx, cmd, cfg, store, clk)
	}
}
