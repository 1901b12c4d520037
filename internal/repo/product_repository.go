package repo

import (
	"context"
	"errors"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/models"
)

var (
	// ErrProductNotFound is returned when a product is not found in the repository.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateName is returned when inserting a product whose name is already taken.
	ErrDuplicateName = errors.New("product name already exists")
)

// ProductRepository defines the interface for product data operations.
// Products are keyed by ID and, as a natural key, by their unique name.
type ProductRepository interface {
	// Upsert creates the product when no product has the given name and
	// otherwise overwrites its price, quantity and timestamp. The returned
	// bool reports whether a new product was created.
	Upsert(ctx context.Context, name string, price int64, quantity int, updatedAt time.Time) (models.Product, bool, error)
	GetByID(ctx context.Context, id int) (models.Product, error)
	GetByName(ctx context.Context, name string) (models.Product, error)
	// Insert creates a product stamped with the current time. It returns
	// ErrDuplicateName if the name exists.
	Insert(ctx context.Context, name string, price int64, quantity int) (models.Product, error)
	// Update overwrites price, quantity and timestamp of the product with p.ID.
	Update(ctx context.Context, p models.Product) (models.Product, error)
	// ListAll returns every product ordered by ID.
	ListAll(ctx context.Context) ([]models.Product, error)
}
