package repo

import (
	"context"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/clock"
	"github.com/rogerio-castellano/inventory-console/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	products []models.Product
	nextID   int
	clock    clock.Clock
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository(clk clock.Clock) *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
		nextID:   1,
		clock:    clk,
	}
}

// Upsert implements ProductRepository.
func (r *InMemoryProductRepository) Upsert(_ context.Context, name string, price int64, quantity int, updatedAt time.Time) (models.Product, bool, error) {
	if i := r.indexByName(name); i >= 0 {
		r.products[i].Price = price
		r.products[i].Quantity = quantity
		r.products[i].UpdatedAt = updatedAt
		return r.products[i], false, nil
	}
	return r.create(name, price, quantity, updatedAt), true, nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(_ context.Context, id int) (models.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// GetByName retrieves a product by its exact name.
func (r *InMemoryProductRepository) GetByName(_ context.Context, name string) (models.Product, error) {
	if i := r.indexByName(name); i >= 0 {
		return r.products[i], nil
	}
	return models.Product{}, ErrProductNotFound
}

// Insert adds a new product to the repository.
func (r *InMemoryProductRepository) Insert(_ context.Context, name string, price int64, quantity int) (models.Product, error) {
	if r.indexByName(name) >= 0 {
		return models.Product{}, ErrDuplicateName
	}
	return r.create(name, price, quantity, r.clock.Now()), nil
}

// Update modifies an existing product in the repository.
func (r *InMemoryProductRepository) Update(_ context.Context, product models.Product) (models.Product, error) {
	for i, p := range r.products {
		if p.ID == product.ID {
			r.products[i].Price = product.Price
			r.products[i].Quantity = product.Quantity
			r.products[i].UpdatedAt = product.UpdatedAt
			return r.products[i], nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// ListAll returns a copy of every stored product.
func (r *InMemoryProductRepository) ListAll(_ context.Context) ([]models.Product, error) {
	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *InMemoryProductRepository) Clear() {
	r.products = []models.Product{}
	r.nextID = 1
}

func (r *InMemoryProductRepository) create(name string, price int64, quantity int, updatedAt time.Time) models.Product {
	p := models.Product{
		ID:        r.nextID,
		Name:      name,
		Price:     price,
		Quantity:  quantity,
		UpdatedAt: updatedAt,
	}
	r.nextID++
	r.products = append(r.products, p)
	return p
}

func (r *InMemoryProductRepository) indexByName(name string) int {
	for i, p := range r.products {
		if p.Name == name {
			return i
		}
	}
	return -1
}
