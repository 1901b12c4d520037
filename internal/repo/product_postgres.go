package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rogerio-castellano/inventory-console/internal/clock"
	"github.com/rogerio-castellano/inventory-console/internal/models"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

const productColumns = `id, name, quantity, price, updated_at`

type PostgresProductRepository struct {
	db      *sql.DB
	clock   clock.Clock
	timeout time.Duration
}

func NewPostgresProductRepository(db *sql.DB, clk clock.Clock, timeout time.Duration) *PostgresProductRepository {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &PostgresProductRepository{db: db, clock: clk, timeout: timeout}
}

// Upsert relies on ON CONFLICT so a re-seed is a single statement per row.
// xmax is zero only for a freshly inserted tuple.
func (r *PostgresProductRepository) Upsert(ctx context.Context, name string, price int64, quantity int, updatedAt time.Time) (models.Product, bool, error) {
	query := `INSERT INTO products (name, quantity, price, updated_at) VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE
		SET quantity = EXCLUDED.quantity, price = EXCLUDED.price, updated_at = EXCLUDED.updated_at
		RETURNING ` + productColumns + `, (xmax = 0) AS inserted`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var p models.Product
	var inserted bool
	err := r.db.QueryRowContext(ctx, query, name, quantity, price, updatedAt).
		Scan(&p.ID, &p.Name, &p.Quantity, &p.Price, &p.UpdatedAt, &inserted)
	if err != nil {
		return models.Product{}, false, err
	}
	return p, inserted, nil
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, id int) (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.queryOne(ctx, query, id)
}

func (r *PostgresProductRepository) GetByName(ctx context.Context, name string) (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE name = $1`
	return r.queryOne(ctx, query, name)
}

func (r *PostgresProductRepository) Insert(ctx context.Context, name string, price int64, quantity int) (models.Product, error) {
	query := `INSERT INTO products (name, quantity, price, updated_at) VALUES ($1, $2, $3, $4) RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	p := models.Product{Name: name, Quantity: quantity, Price: price, UpdatedAt: r.clock.Now()}
	err := r.db.QueryRowContext(ctx, query, p.Name, p.Quantity, p.Price, p.UpdatedAt).Scan(&p.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.Product{}, ErrDuplicateName
		}
		return models.Product{}, err
	}
	return p, nil
}

func (r *PostgresProductRepository) Update(ctx context.Context, p models.Product) (models.Product, error) {
	query := `UPDATE products SET price = $1, quantity = $2, updated_at = $3 WHERE id = $4 RETURNING ` + productColumns
	return r.queryOne(ctx, query, p.Price, p.Quantity, p.UpdatedAt, p.ID)
}

func (r *PostgresProductRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.Price, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresProductRepository) queryOne(ctx context.Context, query string, args ...any) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.Name, &p.Quantity, &p.Price, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}
