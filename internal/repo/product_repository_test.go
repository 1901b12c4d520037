package repo_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/clock"
	"github.com/rogerio-castellano/inventory-console/internal/db"
	"github.com/rogerio-castellano/inventory-console/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	seedTime = time.Date(2018, 11, 1, 0, 0, 0, 0, time.UTC)
	now      = time.Date(2024, 5, 17, 14, 30, 0, 0, time.UTC)
)

type repoFactory func(t *testing.T, clk clock.Clock) repo.ProductRepository

func factories() map[string]repoFactory {
	f := map[string]repoFactory{
		"memory": func(t *testing.T, clk clock.Clock) repo.ProductRepository {
			return repo.NewInMemoryProductRepository(clk)
		},
		"sqlite": func(t *testing.T, clk clock.Clock) repo.ProductRepository {
			gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "inventory.db"), false)
			require.NoError(t, err)
			t.Cleanup(func() { db.CloseGorm(gdb) })
			return repo.NewGormProductRepository(gdb, clk, time.Second)
		},
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		f["postgres"] = func(t *testing.T, clk clock.Clock) repo.ProductRepository {
			ctx := context.Background()
			database, err := db.Connect(ctx, url)
			require.NoError(t, err)
			require.NoError(t, db.EnsureSchema(ctx, database))
			_, err = database.ExecContext(ctx, "TRUNCATE products RESTART IDENTITY")
			require.NoError(t, err)
			t.Cleanup(func() { database.Close() })
			return repo.NewPostgresProductRepository(database, clk, time.Second)
		}
	}
	return f
}

func forEachRepo(t *testing.T, fn func(t *testing.T, r repo.ProductRepository, clk *clock.MockClock)) {
	for name, factory := range factories() {
		t.Run(name, func(t *testing.T) {
			clk := clock.NewMockClock(now)
			fn(t, factory(t, clk), clk)
		})
	}
}

func TestProductRepository_UpsertCreatesThenOverwrites(t *testing.T) {
	forEachRepo(t, func(t *testing.T, r repo.ProductRepository, _ *clock.MockClock) {
		ctx := context.Background()

		p, created, err := r.Upsert(ctx, "Widget", 329, 5, seedTime)
		require.NoError(t, err)
		assert.True(t, created)
		assert.NotZero(t, p.ID)

		later := seedTime.Add(48 * time.Hour)
		again, created, err := r.Upsert(ctx, "Widget", 450, 0, later)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, p.ID, again.ID)

		got, err := r.GetByName(ctx, "Widget")
		require.NoError(t, err)
		assert.Equal(t, int64(450), got.Price)
		assert.Equal(t, 0, got.Quantity)
		assert.True(t, later.Equal(got.UpdatedAt), "updated_at = %v, want %v", got.UpdatedAt, later)

		all, err := r.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestProductRepository_UpsertIsIdempotent(t *testing.T) {
	forEachRepo(t, func(t *testing.T, r repo.ProductRepository, _ *clock.MockClock) {
		ctx := context.Background()
		rows := []struct {
			name  string
			price int64
			qty   int
		}{
			{"Banana", 79, 12},
			{"Apple", 129, 40},
			{"Cherry", 499, 3},
		}

		for i := 0; i < 2; i++ {
			for _, row := range rows {
				_, _, err := r.Upsert(ctx, row.name, row.price, row.qty, seedTime)
				require.NoError(t, err)
			}
		}

		all, err := r.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, len(rows))
		for i, row := range rows {
			assert.Equal(t, row.name, all[i].Name)
			assert.Equal(t, row.price, all[i].Price)
			assert.Equal(t, row.qty, all[i].Quantity)
			assert.Equal(t, i+1, all[i].ID)
		}
	})
}

func TestProductRepository_Insert(t *testing.T) {
	forEachRepo(t, func(t *testing.T, r repo.ProductRepository, clk *clock.MockClock) {
		ctx := context.Background()

		p, err := r.Insert(ctx, "Widget", 329, 5)
		require.NoError(t, err)
		assert.Equal(t, "Widget", p.Name)
		assert.True(t, clk.Now().Equal(p.UpdatedAt))

		got, err := r.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(329), got.Price)
		assert.Equal(t, 5, got.Quantity)

		_, err = r.Insert(ctx, "Widget", 100, 1)
		assert.ErrorIs(t, err, repo.ErrDuplicateName)

		all, err := r.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestProductRepository_NotFound(t *testing.T) {
	forEachRepo(t, func(t *testing.T, r repo.ProductRepository, _ *clock.MockClock) {
		ctx := context.Background()

		_, err := r.GetByID(ctx, 42)
		assert.ErrorIs(t, err, repo.ErrProductNotFound)

		_, err = r.GetByName(ctx, "Nothing")
		assert.ErrorIs(t, err, repo.ErrProductNotFound)
	})
}

func TestProductRepository_Update(t *testing.T) {
	forEachRepo(t, func(t *testing.T, r repo.ProductRepository, clk *clock.MockClock) {
		ctx := context.Background()

		p, err := r.Insert(ctx, "Widget", 329, 5)
		require.NoError(t, err)

		clk.Advance(time.Hour)
		p.Price = 399
		p.Quantity = 0
		p.UpdatedAt = clk.Now()

		updated, err := r.Update(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, int64(399), updated.Price)
		assert.Equal(t, 0, updated.Quantity)
		assert.True(t, clk.Now().Equal(updated.UpdatedAt))

		p.ID = 999
		_, err = r.Update(ctx, p)
		assert.ErrorIs(t, err, repo.ErrProductNotFound)
	})
}
