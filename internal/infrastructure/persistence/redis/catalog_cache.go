package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mkravets/storefront-service/internal/application/ports"
	"github.com/mkravets/storefront-service/internal/domain/catalog"
	"github.com/mkravets/storefront-service/internal/pkg/logger"
)

// CatalogCache is a read-through cache in front of the remote catalog.
// Cache failures never fail a lookup; they fall through to the backend.
type CatalogCache struct {
	client *redis.Client
	next   ports.CatalogGateway
	logger *logger.Logger
	ttl    time.Duration
}

func NewCatalogCache(conn *Connection, next ports.CatalogGateway, log *logger.Logger, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		client: conn.GetClient(),
		next:   next,
		logger: log,
		ttl:    ttl,
	}
}

func (c *CatalogCache) GetProduct(ctx context.Context, productID int) (*catalog.Product, error) {
	key := fmt.Sprintf("catalog:product:%d", productID)

	var product catalog.Product
	if c.lookup(ctx, key, &product) {
		return &product, nil
	}

	fetched, err := c.next.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, fetched)
	return fetched, nil
}

func (c *CatalogCache) SearchProducts(ctx context.Context, query string) ([]catalog.Product, error) {
	key := fmt.Sprintf("catalog:search:%s", query)

	var products []catalog.Product
	if c.lookup(ctx, key, &products) {
		return products, nil
	}

	fetched, err := c.next.SearchProducts(ctx, query)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, fetched)
	return fetched, nil
}

func (c *CatalogCache) GetRelatedProducts(ctx context.Context, productID int) ([]catalog.Product, error) {
	key := fmt.Sprintf("catalog:related:%d", productID)

	var products []catalog.Product
	if c.lookup(ctx, key, &products) {
		return products, nil
	}

	fetched, err := c.next.GetRelatedProducts(ctx, productID)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, fetched)
	return fetched, nil
}

func (c *CatalogCache) lookup(ctx context.Context, key string, out interface{}) bool {
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.logger.Warn("Catalog cache read failed", "error", err, "key", key)
		return false
	}

	if err := json.Unmarshal([]byte(data), out); err != nil {
		c.logger.Warn("Catalog cache entry corrupt", "error", err, "key", key)
		return false
	}

	return true
}

func (c *CatalogCache) store(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Catalog cache write failed", "error", err, "key", key)
	}
}
