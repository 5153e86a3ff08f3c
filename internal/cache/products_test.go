package cache

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
)

func TestCachedProduct_RoundTripKeepsCreatedAt(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	in := []models.Product{{ID: uuid.New(), Name: "Widget", Price: 5, Img: models.DefaultProductImage, CreatedAt: created}}

	raw, err := json.Marshal(toCached(in))
	require.NoError(t, err)

	var decoded []cachedProduct
	require.NoError(t, json.Unmarshal(raw, &decoded))

	out := fromCached(decoded)
	require.Len(t, out, 1)
	assert.Equal(t, in[0], out[0])
}

func TestRedisProducts_UnreachableReturnsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	c := NewRedisProducts(client, 0)
	assert.Equal(t, 30*time.Second, c.ttl)

	_, ok, err := c.GetProducts(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, c.InvalidateProducts(context.Background()))
}

func TestConnect_BadURL(t *testing.T) {
	_, err := Connect(context.Background(), "://nope")
	assert.Error(t, err)
}

func newRedisProducts(t *testing.T) *RedisProducts {
	t.Helper()

	url := os.Getenv("STOREFRONT_TEST_REDIS_URL")
	if url == "" {
		t.Skip("STOREFRONT_TEST_REDIS_URL is required for tests")
	}
	client, err := Connect(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Del(context.Background(), productsKey, productsVersionKey).Err()
		_ = client.Close()
	})
	require.NoError(t, client.Del(context.Background(), productsKey, productsVersionKey).Err())
	return NewRedisProducts(client, time.Minute)
}

func TestRedisProducts_SetRejectedAfterInvalidation(t *testing.T) {
	c := newRedisProducts(t)
	ctx := context.Background()
	items := []models.Product{{ID: uuid.New(), Name: "Lamp", Price: 10, Img: models.DefaultProductImage}}

	v, err := c.ProductsVersion(ctx)
	require.NoError(t, err)
	require.NoError(t, c.InvalidateProducts(ctx))

	stored, err := c.SetProducts(ctx, v, items)
	require.NoError(t, err)
	assert.False(t, stored)
	_, ok, err := c.GetProducts(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	v, err = c.ProductsVersion(ctx)
	require.NoError(t, err)
	stored, err = c.SetProducts(ctx, v, items)
	require.NoError(t, err)
	assert.True(t, stored)

	got, ok, err := c.GetProducts(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Lamp", got[0].Name)
}
