package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.Metrics.ObserveDB("products.create", func() error {
		return r.DB.WithContext(ctx).Create(prod).Error
	})
}

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	items := make([]models.Product, 0)
	err := r.Metrics.ObserveDB("products.list", func() error {
		return r.DB.WithContext(ctx).Order("created_at ASC").Find(&items).Error
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetProduct treats an id that cannot be parsed as a missing record.
func (r *GormRepo) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}

	var prod models.Product
	err = r.Metrics.ObserveDB("products.get", func() error {
		return r.DB.WithContext(ctx).Where("id = ?", pid).First(&prod).Error
	})
	if err != nil {
		return nil, err
	}
	return &prod, nil
}

// UpdateProductFields writes only the given columns in one statement and never inserts.
func (r *GormRepo) UpdateProductFields(ctx context.Context, id string, fields map[string]any) (*models.Product, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}

	if len(fields) > 0 {
		err = r.Metrics.ObserveDB("products.update", func() error {
			res := r.DB.WithContext(ctx).Model(&models.Product{}).
				Where("id = ?", pid).
				Updates(fields)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return r.GetProduct(ctx, id)
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id string) error {
	pid, err := uuid.Parse(id)
	if err != nil {
		return gorm.ErrRecordNotFound
	}

	return r.Metrics.ObserveDB("products.delete", func() error {
		res := r.DB.WithContext(ctx).Where("id = ?", pid).Delete(&models.Product{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
