package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

func TestCreateProduct_Defaults(t *testing.T) {
	f := newFixture(t)

	prod, err := f.catalog.CreateProduct(context.Background(), transport.CreateProductRequest{
		Name:  strptr("Lamp"),
		Price: f64ptr(19.9),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, prod.ID)
	assert.Equal(t, "Lamp", prod.Name)
	assert.Equal(t, 19.9, prod.Price)
	assert.Equal(t, 0.0, prod.Amount)
	assert.Equal(t, models.DefaultProductImage, prod.Img)
}

func TestCreateProduct_ExplicitValues(t *testing.T) {
	f := newFixture(t)

	prod, err := f.catalog.CreateProduct(context.Background(), transport.CreateProductRequest{
		Name:   strptr("Chair"),
		Price:  f64ptr(0),
		Amount: f64ptr(7),
		Img:    strptr("images/chair.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, prod.Price)
	assert.Equal(t, 7.0, prod.Amount)
	assert.Equal(t, "images/chair.png", prod.Img)
}

func TestCreateProduct_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, req := range []transport.CreateProductRequest{
		{Price: f64ptr(1)},
		{Name: strptr(""), Price: f64ptr(1)},
		{Name: strptr("Lamp")},
	} {
		_, err := f.catalog.CreateProduct(ctx, req)
		assert.ErrorIs(t, err, service.ErrValidation)
	}

	items, err := f.catalog.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdateProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	prod, err := f.catalog.CreateProduct(ctx, transport.CreateProductRequest{Name: strptr("Lamp"), Price: f64ptr(10), Amount: f64ptr(2)})
	require.NoError(t, err)

	updated, err := f.catalog.UpdateProduct(ctx, prod.ID.String(), transport.UpdateProductRequest{Price: f64ptr(12.5)})
	require.NoError(t, err)
	assert.Equal(t, "Lamp", updated.Name)
	assert.Equal(t, 12.5, updated.Price)
	assert.Equal(t, 2.0, updated.Amount)
	assert.Equal(t, models.DefaultProductImage, updated.Img)

	_, err = f.catalog.UpdateProduct(ctx, prod.ID.String(), transport.UpdateProductRequest{Name: strptr("")})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = f.catalog.UpdateProduct(ctx, "not-an-id", transport.UpdateProductRequest{Price: f64ptr(1)})
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = f.catalog.UpdateProduct(ctx, uuid.NewString(), transport.UpdateProductRequest{Price: f64ptr(1)})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	prod, err := f.catalog.CreateProduct(ctx, transport.CreateProductRequest{Name: strptr("Lamp"), Price: f64ptr(10)})
	require.NoError(t, err)

	id, err := f.catalog.DeleteProduct(ctx, prod.ID.String())
	require.NoError(t, err)
	assert.Equal(t, prod.ID.String(), id)

	_, err = f.catalog.DeleteProduct(ctx, prod.ID.String())
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = f.catalog.DeleteProduct(ctx, "12345")
	assert.ErrorIs(t, err, service.ErrNotFound)

	assert.Equal(t, []string{"product_created", "product_deleted"}, f.events.types())
}

func TestListProducts_CacheInvalidatedOnWrite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.catalog.CreateProduct(ctx, transport.CreateProductRequest{Name: strptr("Lamp"), Price: f64ptr(10)})
	require.NoError(t, err)

	items, err := f.catalog.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, err = f.catalog.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, f.cache.hits)

	_, err = f.catalog.CreateProduct(ctx, transport.CreateProductRequest{Name: strptr("Chair"), Price: f64ptr(5)})
	require.NoError(t, err)

	items, err = f.catalog.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 1, f.cache.hits)
}

func TestListProducts_WithoutCache(t *testing.T) {
	f := newFixture(t)
	f.catalog.Cache = nil
	f.catalog.Events = nil
	ctx := context.Background()

	_, err := f.catalog.CreateProduct(ctx, transport.CreateProductRequest{Name: strptr("Lamp"), Price: f64ptr(10)})
	require.NoError(t, err)

	items, err := f.catalog.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Empty(t, f.events.types())
}

func TestMemoryCache_RejectsSetAfterInvalidation(t *testing.T) {
	c := &memoryCache{}
	ctx := context.Background()

	v, err := c.ProductsVersion(ctx)
	require.NoError(t, err)
	require.NoError(t, c.InvalidateProducts(ctx))

	stored, err := c.SetProducts(ctx, v, []models.Product{{Name: "stale"}})
	require.NoError(t, err)
	assert.False(t, stored)

	_, ok, err := c.GetProducts(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListProducts_DeleteDuringReadDoesNotPoisonCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	prod, err := f.catalog.CreateProduct(ctx, transport.CreateProductRequest{Name: strptr("Lamp"), Price: f64ptr(10)})
	require.NoError(t, err)

	// the delete commits after this reader loaded the list and before it fills the cache
	f.cache.beforeSet = func() {
		_, err := f.catalog.DeleteProduct(ctx, prod.ID.String())
		require.NoError(t, err)
	}

	items, err := f.catalog.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, f.cache.skipped)

	items, err = f.catalog.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCreateProduct_EmptyImageIsKept(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	prod, err := f.catalog.CreateProduct(ctx, transport.CreateProductRequest{Name: strptr("Lamp"), Price: f64ptr(10), Img: strptr("")})
	require.NoError(t, err)
	assert.Equal(t, "", prod.Img)

	stored, err := f.repo.GetProduct(ctx, prod.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "", stored.Img)
}

func TestUpdateProduct_PartialUpdatesDoNotClobber(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	prod, err := f.catalog.CreateProduct(ctx, transport.CreateProductRequest{Name: strptr("Lamp"), Price: f64ptr(10), Amount: f64ptr(1)})
	require.NoError(t, err)
	id := prod.ID.String()

	_, err = f.catalog.UpdateProduct(ctx, id, transport.UpdateProductRequest{Price: f64ptr(12)})
	require.NoError(t, err)
	_, err = f.catalog.UpdateProduct(ctx, id, transport.UpdateProductRequest{Amount: f64ptr(5)})
	require.NoError(t, err)

	got, err := f.repo.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 12.0, got.Price)
	assert.Equal(t, 5.0, got.Amount)
	assert.Equal(t, "Lamp", got.Name)
}
