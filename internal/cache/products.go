package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Skotchmaster/storefront/internal/models"
)

const (
	productsKey        = "storefront:products:all"
	productsVersionKey = "storefront:products:version"
)

type RedisProducts struct {
	client *redis.Client
	ttl    time.Duration
}

func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

func NewRedisProducts(client *redis.Client, ttl time.Duration) *RedisProducts {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisProducts{client: client, ttl: ttl}
}

// GetProducts reports ok=false on a cache miss.
func (c *RedisProducts) GetProducts(ctx context.Context) ([]models.Product, bool, error) {
	raw, err := c.client.Get(ctx, productsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis: get products: %w", err)
	}

	var items []cachedProduct
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, fmt.Errorf("redis: decode products: %w", err)
	}
	return fromCached(items), true, nil
}

// ProductsVersion returns the generation a reader must hand back to SetProducts.
// Read it before loading the list from the store.
func (c *RedisProducts) ProductsVersion(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, productsVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis: get products version: %w", err)
	}
	return v, nil
}

// SetProducts stores items only while the generation is still version. It reports
// false when an invalidation happened since the caller read the version.
func (c *RedisProducts) SetProducts(ctx context.Context, version int64, items []models.Product) (bool, error) {
	raw, err := json.Marshal(toCached(items))
	if err != nil {
		return false, fmt.Errorf("redis: encode products: %w", err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, productsVersionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != version {
			return errStaleVersion
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, productsKey, raw, c.ttl)
			return nil
		})
		return err
	}, productsVersionKey)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errStaleVersion), errors.Is(err, redis.TxFailedErr):
		return false, nil
	default:
		return false, fmt.Errorf("redis: set products: %w", err)
	}
}

// InvalidateProducts bumps the generation before dropping the list, so in-flight
// readers holding the old generation cannot write it back.
func (c *RedisProducts) InvalidateProducts(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, productsVersionKey)
		pipe.Del(ctx, productsKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: invalidate products: %w", err)
	}
	return nil
}

var errStaleVersion = errors.New("products version changed")

// cachedProduct keeps CreatedAt, which models.Product hides from clients.
type cachedProduct struct {
	models.Product
	CreatedAt time.Time `json:"created_at"`
}

func toCached(items []models.Product) []cachedProduct {
	out := make([]cachedProduct, len(items))
	for i, p := range items {
		out[i] = cachedProduct{Product: p, CreatedAt: p.CreatedAt}
	}
	return out
}

func fromCached(items []cachedProduct) []models.Product {
	out := make([]models.Product, len(items))
	for i, c := range items {
		p := c.Product
		p.CreatedAt = c.CreatedAt
		out[i] = p
	}
	return out
}
