package repo

import (
	"context"
	"errors"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/clock"
	"github.com/rogerio-castellano/inventory-console/internal/models"
	"gorm.io/gorm"
)

// GormProductRepository stores products through GORM. It backs the default
// local SQLite database.
type GormProductRepository struct {
	db      *gorm.DB
	clock   clock.Clock
	timeout time.Duration
}

func NewGormProductRepository(db *gorm.DB, clk clock.Clock, timeout time.Duration) *GormProductRepository {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &GormProductRepository{db: db, clock: clk, timeout: timeout}
}

// Upsert implements ProductRepository.
func (r *GormProductRepository) Upsert(ctx context.Context, name string, price int64, quantity int, updatedAt time.Time) (models.Product, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var p models.Product
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&p).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		p = models.Product{Name: name, Price: price, Quantity: quantity, UpdatedAt: updatedAt}
		if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
			return models.Product{}, false, err
		}
		return p, true, nil
	case err != nil:
		return models.Product{}, false, err
	}

	p.Price = price
	p.Quantity = quantity
	p.UpdatedAt = updatedAt
	if err := r.save(ctx, p); err != nil {
		return models.Product{}, false, err
	}
	return p, false, nil
}

// GetByID retrieves a product by its ID.
func (r *GormProductRepository) GetByID(ctx context.Context, id int) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var p models.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

// GetByName retrieves a product by its exact name.
func (r *GormProductRepository) GetByName(ctx context.Context, name string) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var p models.Product
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

// Insert adds a new product stamped with the repository clock.
func (r *GormProductRepository) Insert(ctx context.Context, name string, price int64, quantity int) (models.Product, error) {
	if _, err := r.GetByName(ctx, name); err == nil {
		return models.Product{}, ErrDuplicateName
	} else if !errors.Is(err, ErrProductNotFound) {
		return models.Product{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	p := models.Product{Name: name, Price: price, Quantity: quantity, UpdatedAt: r.clock.Now()}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Product{}, ErrDuplicateName
		}
		return models.Product{}, err
	}
	return p, nil
}

// Update modifies price, quantity and timestamp of an existing product.
func (r *GormProductRepository) Update(ctx context.Context, p models.Product) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.save(ctx, p); err != nil {
		return models.Product{}, err
	}
	var updated models.Product
	if err := r.db.WithContext(ctx).First(&updated, p.ID).Error; err != nil {
		return models.Product{}, err
	}
	return updated, nil
}

// ListAll returns every product ordered by ID.
func (r *GormProductRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var products []models.Product
	err := r.db.WithContext(ctx).Order("id").Find(&products).Error
	return products, err
}

// save writes the mutable columns with a map so zero quantities are not skipped.
func (r *GormProductRepository) save(ctx context.Context, p models.Product) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", p.ID).Updates(map[string]any{
		"price":      p.Price,
		"quantity":   p.Quantity,
		"updated_at": p.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
