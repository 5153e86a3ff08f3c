package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) AdminExists(ctx context.Context) (bool, error) {
	var count int64
	err := r.Metrics.ObserveDB("users.admin_exists", func() error {
		return r.DB.WithContext(ctx).Model(&models.User{}).
			Where("role = ?", models.RoleAdmin).
			Count(&count).Error
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	return r.Metrics.ObserveDB("users.create", func() error {
		return r.DB.WithContext(ctx).Create(u).Error
	})
}

// FindUserByEmailAndRole returns gorm.ErrRecordNotFound when no user of that role has the email.
func (r *GormRepo) FindUserByEmailAndRole(ctx context.Context, email, role string) (*models.User, error) {
	var user models.User
	err := r.Metrics.ObserveDB("users.find_by_email", func() error {
		return r.DB.WithContext(ctx).
			Where("email = ? AND role = ?", email, role).
			First(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers never reads the password column.
func (r *GormRepo) ListUsers(ctx context.Context) ([]models.PublicUser, error) {
	users := make([]models.PublicUser, 0)
	err := r.Metrics.ObserveDB("users.list", func() error {
		return r.DB.WithContext(ctx).Model(&models.User{}).
			Select("id", "name", "email", "role").
			Order("created_at ASC").
			Find(&users).Error
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.Metrics.ObserveDB("users.get", func() error {
		return r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserFields writes only the given columns in one statement and never inserts.
// An empty fields map just checks that the row exists.
func (r *GormRepo) UpdateUserFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.User, error) {
	if len(fields) > 0 {
		err := r.Metrics.ObserveDB("users.update", func() error {
			res := r.DB.WithContext(ctx).Model(&models.User{}).
				Where("id = ?", id).
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
	return r.GetUserByID(ctx, id)
}

func (r *GormRepo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return r.Metrics.ObserveDB("users.delete", func() error {
		res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
