// Package app wires configuration into a ready product store and menu.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rogerio-castellano/inventory-console/internal/clock"
	"github.com/rogerio-castellano/inventory-console/internal/config"
	"github.com/rogerio-castellano/inventory-console/internal/console"
	"github.com/rogerio-castellano/inventory-console/internal/db"
	"github.com/rogerio-castellano/inventory-console/internal/redissvc"
	"github.com/rogerio-castellano/inventory-console/internal/repo"
)

// Store is the product repository selected by configuration together with
// the connections it owns.
type Store struct {
	Products repo.ProductRepository
	closers  []func() error
}

// Close releases every connection held by the store.
func (s *Store) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenStore builds the configured store, creating its table if needed and
// wrapping it with the redis cache when one is configured.
func OpenStore(ctx context.Context, cfg *config.Config, clk clock.Clock) (*Store, error) {
	s := &Store{}

	switch cfg.Store.Driver {
	case config.DriverSQLite:
		verbose := strings.EqualFold(cfg.Logging.Level, "debug")
		gdb, err := db.OpenSQLite(cfg.Store.SQLitePath, verbose)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func() error { return db.CloseGorm(gdb) })
		s.Products = repo.NewGormProductRepository(gdb, clk, cfg.Store.QueryTimeout)

	case config.DriverPostgres:
		database, err := db.Connect(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, database.Close)
		if err := db.EnsureSchema(ctx, database); err != nil {
			s.Close()
			return nil, err
		}
		s.Products = repo.NewPostgresProductRepository(database, clk, cfg.Store.QueryTimeout)

	case config.DriverMemory:
		s.Products = repo.NewInMemoryProductRepository(clk)

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	slog.Debug("product store opened", "driver", cfg.Store.Driver)

	if cfg.Cache.RedisAddr != "" {
		rdb, err := redissvc.Connect(ctx, cfg.Cache.RedisAddr)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.closers = append(s.closers, rdb.Close)
		s.Products = repo.NewCachedProductRepository(s.Products, rdb, cfg.Cache.TTL)
		slog.Debug("product cache enabled", "addr", cfg.Cache.RedisAddr, "ttl", cfg.Cache.TTL)
	}

	return s, nil
}

// NewMenu builds the interactive menu with the view, add and backup actions.
func NewMenu(products repo.ProductRepository, cfg *config.Config, clk clock.Clock, in io.Reader, out io.Writer) *console.Menu {
	return console.NewMenu(console.NewPrompter(in, out),
		console.NewViewAction(products),
		console.NewAddAction(products, clk),
		console.NewBackupAction(products, cfg.Files.Backup),
	)
}
