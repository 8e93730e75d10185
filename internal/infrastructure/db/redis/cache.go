package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/invensys/inventory-api/internal/core/domain"
)

const productCacheTTL = 5 * time.Minute

// ProductCache is a Redis-backed read cache for single-product lookups.
// Entries expire after productCacheTTL and are dropped eagerly on mutation.
// Key format: product:<id>
type ProductCache struct {
	client *redis.Client
}

// NewProductCache creates a ProductCache wrapping the given Redis client.
func NewProductCache(client *redis.Client) *ProductCache {
	return &ProductCache{client: client}
}

// Get returns the cached product, or nil on a miss.
func (c *ProductCache) Get(ctx context.Context, id string) (*domain.Product, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var product domain.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &product, nil
}

// Set stores the product under its id with the cache TTL.
func (c *ProductCache) Set(ctx context.Context, product *domain.Product) error {
	raw, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(product.ID), raw, productCacheTTL).Err()
}

// Invalidate drops the cached entry for id.
func (c *ProductCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *ProductCache) key(id string) string {
	return fmt.Sprintf("product:%s", id)
}
