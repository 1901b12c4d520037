package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/inventory-console/internal/models"
)

const cacheKeyPrefix = "inventory:product:"

// CachedProductRepository is a read-through redis cache in front of another
// ProductRepository. Lookups by ID and name are cached; every write evicts the
// keys of the product it touched. Redis failures degrade to the inner store.
type CachedProductRepository struct {
	inner ProductRepository
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedProductRepository(inner ProductRepository, rdb *redis.Client, ttl time.Duration) *CachedProductRepository {
	return &CachedProductRepository{inner: inner, rdb: rdb, ttl: ttl}
}

func idKey(id int) string {
	return fmt.Sprintf("%sid:%d", cacheKeyPrefix, id)
}

func nameKey(name string) string {
	return cacheKeyPrefix + "name:" + name
}

func (r *CachedProductRepository) Upsert(ctx context.Context, name string, price int64, quantity int, updatedAt time.Time) (models.Product, bool, error) {
	p, created, err := r.inner.Upsert(ctx, name, price, quantity, updatedAt)
	if err != nil {
		return p, created, err
	}
	r.evict(ctx, p)
	return p, created, nil
}

func (r *CachedProductRepository) GetByID(ctx context.Context, id int) (models.Product, error) {
	return r.readThrough(ctx, idKey(id), func() (models.Product, error) {
		return r.inner.GetByID(ctx, id)
	})
}

func (r *CachedProductRepository) GetByName(ctx context.Context, name string) (models.Product, error) {
	return r.readThrough(ctx, nameKey(name), func() (models.Product, error) {
		return r.inner.GetByName(ctx, name)
	})
}

func (r *CachedProductRepository) Insert(ctx context.Context, name string, price int64, quantity int) (models.Product, error) {
	p, err := r.inner.Insert(ctx, name, price, quantity)
	if err != nil {
		return p, err
	}
	r.evict(ctx, p)
	return p, nil
}

func (r *CachedProductRepository) Update(ctx context.Context, p models.Product) (models.Product, error) {
	updated, err := r.inner.Update(ctx, p)
	if err != nil {
		return updated, err
	}
	r.evict(ctx, updated)
	return updated, nil
}

// ListAll is never cached: backups must see the store itself.
func (r *CachedProductRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	return r.inner.ListAll(ctx)
}

func (r *CachedProductRepository) readThrough(ctx context.Context, key string, load func() (models.Product, error)) (models.Product, error) {
	raw, err := r.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var p models.Product
		if jsonErr := json.Unmarshal(raw, &p); jsonErr == nil {
			return p, nil
		}
		slog.Warn("discarding unreadable cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		slog.Warn("product cache read failed", "key", key, "error", err)
	}

	p, err := load()
	if err != nil {
		return p, err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return p, nil
	}
	if err := r.rdb.Set(ctx, key, data, r.ttl).Err(); err != nil {
		slog.Warn("product cache write failed", "key", key, "error", err)
	}
	return p, nil
}

func (r *CachedProductRepository) evict(ctx context.Context, p models.Product) {
	if err := r.rdb.Del(ctx, idKey(p.ID), nameKey(p.Name)).Err(); err != nil {
		slog.Warn("product cache eviction failed", "id", p.ID, "error", err)
	}
}
