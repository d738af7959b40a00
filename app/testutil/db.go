// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/Rakhulsr/go-edumarket/app/configs"
	"github.com/Rakhulsr/go-edumarket/app/models"
	"github.com/Rakhulsr/go-edumarket/app/models/migrations"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB returns a migrated in-memory SQLite database. A single connection keeps every
// statement on the same memory database.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := configs.GormConfig()
	cfg.Logger = logger.Default.LogMode(logger.Silent)

	db, err := gorm.Open(sqlite.Open(":memory:"), cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, name, role string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@example.com", Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

type ProductOption func(*models.Product)

func WithCategory(category, subject string) ProductOption {
	return func(p *models.Product) {
		p.Category = category
		p.Subject = subject
	}
}

func WithStatus(status string) ProductOption {
	return func(p *models.Product) { p.Status = status }
}

func WithGrades(grades ...string) ProductOption {
	return func(p *models.Product) { p.GradeLevel = grades }
}

func WithCreatedAt(at time.Time) ProductOption {
	return func(p *models.Product) { p.CreatedAt = at }
}

func CreateProduct(t *testing.T, db *gorm.DB, author *models.User, title, price string, opts ...ProductOption) *models.Product {
	t.Helper()
	p := &models.Product{
		AuthorID: author.ID,
		Title:    title,
		Price:    decimal.RequireFromString(price),
		Category: "Matemática",
		Subject:  "Álgebra",
		Status:   models.ProductStatusActive,
	}
	for _, opt := range opts {
		opt(p)
	}
	require.NoError(t, db.Create(p).Error)
	return p
}
