package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/metrics"
	"github.com/Skotchmaster/storefront/internal/models"
)

const (
	IndexEmail       = "idx_users_email"
	IndexSingleAdmin = "idx_users_single_admin"
)

type GormRepo struct {
	DB      *gorm.DB
	Metrics *metrics.Prom
}

// Migrate creates the tables and the store-side invariants: unique email and at most
// one row with role = 'admin'.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Product{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS " + IndexSingleAdmin + " ON users (role) WHERE role = 'admin'",
	).Error; err != nil {
		return fmt.Errorf("create %s: %w", IndexSingleAdmin, err)
	}
	return nil
}

func (r *GormRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// ClassifyUnique reports which unique index a write violated.
// Postgres errors carry the constraint name; SQLite only names the columns.
func ClassifyUnique(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != "23505" {
			return "", false
		}
		return pgErr.ConstraintName, true
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", true
	}

	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return "", false
	}
	switch {
	case strings.Contains(msg, "users.email"):
		return IndexEmail, true
	case strings.Contains(msg, "users.role"):
		return IndexSingleAdmin, true
	}
	return "", true
}
