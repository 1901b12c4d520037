package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const productsSchema = `
CREATE TABLE IF NOT EXISTS products (
	id         SERIAL PRIMARY KEY,
	name       VARCHAR(255) NOT NULL UNIQUE,
	quantity   INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
	price      BIGINT NOT NULL CHECK (price >= 0),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Connect opens a PostgreSQL database through the pgx stdlib driver and
// verifies it is reachable.
func Connect(ctx context.Context, dbURL string) (*sql.DB, error) {
	if dbURL == "" {
		return nil, fmt.Errorf("database URL is empty")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// EnsureSchema creates the products table if it does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, productsSchema); err != nil {
		return fmt.Errorf("create products table: %w", err)
	}
	return nil
}
