package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rogerio-castellano/inventory-console/internal/repo"
)

// Summary counts what a seeding pass did.
type Summary struct {
	Inserted int
	Updated  int
}

func (s Summary) Total() int {
	return s.Inserted + s.Updated
}

// Seed upserts every record, one independent write per row.
func Seed(ctx context.Context, store repo.ProductRepository, records []Record) (Summary, error) {
	var sum Summary
	for _, rec := range records {
		_, created, err := store.Upsert(ctx, rec.Name, rec.Price, rec.Quantity, rec.UpdatedAt)
		if err != nil {
			return sum, fmt.Errorf("seed %q: %w", rec.Name, err)
		}
		if created {
			sum.Inserted++
		} else {
			sum.Updated++
		}
	}

	slog.Info("inventory seeded", "inserted", sum.Inserted, "updated", sum.Updated)
	return sum, nil
}

// SeedFile loads path and seeds the store with it.
func SeedFile(ctx context.Context, store repo.ProductRepository, path string) (Summary, error) {
	records, err := LoadFile(path)
	if err != nil {
		return Summary{}, err
	}
	return Seed(ctx, store, records)
}
