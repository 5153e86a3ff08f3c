package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

// ProductCache holds the full product list. Every invalidation moves the cache to a
// new version; SetProducts only stores a list read under the current one.
type ProductCache interface {
	GetProducts(ctx context.Context) ([]models.Product, bool, error)
	ProductsVersion(ctx context.Context) (int64, error)
	SetProducts(ctx context.Context, version int64, items []models.Product) (bool, error)
	InvalidateProducts(ctx context.Context) error
}

type CatalogService struct {
	Repo   *repo.GormRepo
	Cache  ProductCache
	Events EventPublisher
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	prod := models.Product{
		Name:   *req.Name,
		Price:  *req.Price,
		Amount: 0,
		Img:    models.DefaultProductImage,
	}
	if req.Amount != nil {
		prod.Amount = *req.Amount
	}
	if req.Img != nil {
		prod.Img = *req.Img
	}

	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.invalidate(ctx)
	publish(ctx, s.Events, mykafka.TopicProductEvents, prod.ID.String(), map[string]any{
		"type":  "product_created",
		"id":    prod.ID.String(),
		"name":  prod.Name,
		"price": prod.Price,
	})
	return &prod, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	l := logging.FromContext(ctx)

	cacheable := false
	var version int64
	if s.Cache != nil {
		items, ok, err := s.Cache.GetProducts(ctx)
		switch {
		case err != nil:
			l.Warn("products_cache_read_failed", "error", err)
		case ok:
			return items, nil
		}

		if version, err = s.Cache.ProductsVersion(ctx); err != nil {
			l.Warn("products_cache_version_failed", "error", err)
		} else {
			cacheable = true
		}
	}

	items, err := s.Repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if cacheable {
		stored, err := s.Cache.SetProducts(ctx, version, items)
		switch {
		case err != nil:
			l.Warn("products_cache_write_failed", "error", err)
		case !stored:
			l.Debug("products_cache_write_skipped", "reason", "invalidated during read")
		}
	}
	return items, nil
}

// UpdateProduct reports a malformed id the same way as a missing product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, req transport.UpdateProductRequest) (*models.Product, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Amount != nil {
		fields["amount"] = *req.Amount
	}
	if req.Img != nil {
		fields["img"] = *req.Img
	}

	prod, err := s.Repo.UpdateProductFields(ctx, id, fields)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.invalidate(ctx)
	publish(ctx, s.Events, mykafka.TopicProductEvents, prod.ID.String(), map[string]any{
		"type":   "product_updated",
		"id":     prod.ID.String(),
		"price":  prod.Price,
		"amount": prod.Amount,
	})
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) (string, error) {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if repo.IsNotFound(err) {
			return "", fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return "", fmt.Errorf("delete product: %w", err)
	}

	s.invalidate(ctx)
	publish(ctx, s.Events, mykafka.TopicProductEvents, id, map[string]any{
		"type": "product_deleted",
		"id":   id,
	})
	return id, nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.InvalidateProducts(ctx); err != nil {
		logging.FromContext(ctx).Warn("products_cache_invalidate_failed", "error", err)
	}
}
