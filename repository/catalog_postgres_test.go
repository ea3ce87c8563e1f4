//go:build postgres

package repository

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"furniture-catalog/database"
	"furniture-catalog/dtos"
	"furniture-catalog/logger"
	"furniture-catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Run with: TEST_DATABASE_URL=postgres://... go test -tags postgres ./repository/

func setupPostgresRepo(t *testing.T) (*CatalogRepository, *gorm.DB) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.Connect(dsn)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(25)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	require.NoError(t, db.Exec("TRUNCATE variants, products, categories CASCADE").Error)
	return NewCatalogRepository(db, logger.Nop()), db
}

// Each writer locks the parent product before demoting, so none of them
// trips the one-default index even though they overlap.
func TestPostgresConcurrentSetDefaultSerializesOnProductLock(t *testing.T) {
	repo, db := setupPostgresRepo(t)
	cat := createCategory(t, repo, "chairs")
	p := createProduct(t, repo, cat.ID, "chair")

	const n = 20
	variants := make([]*models.Variant, n)
	for i := range variants {
		variants[i] = createVariant(t, repo, p.ID, fmt.Sprintf("V%d", i), false)
	}

	var wg sync.WaitGroup
	yes := true
	for _, v := range variants {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := repo.UpdateVariant(context.Background(), id, dtos.UpdateVariantInput{IsDefault: &yes})
			assert.NoError(t, err)
		}(v.ID.String())
	}
	wg.Wait()

	assert.Equal(t, int64(1), defaultCount(t, db, p.ID))
}

func TestPostgresConcurrentCreateDefaultSerializesOnProductLock(t *testing.T) {
	repo, db := setupPostgresRepo(t)
	cat := createCategory(t, repo, "chairs")
	p := createProduct(t, repo, cat.ID, "chair")

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.CreateVariant(context.Background(), p.ID.String(), dtos.CreateVariantInput{
				Name:      fmt.Sprintf("V%d", i),
				ColorHex:  "#D4A574",
				IsDefault: true,
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	var total int64
	require.NoError(t, db.Model(&models.Variant{}).Where("product_id = ?", p.ID).Count(&total).Error)
	assert.Equal(t, int64(n), total)
	assert.Equal(t, int64(1), defaultCount(t, db, p.ID))
}

func TestPostgresRestrictAndUniqueViolationsAreTyped(t *testing.T) {
	repo, _ := setupPostgresRepo(t)
	cat := createCategory(t, repo, "chairs")
	createProduct(t, repo, cat.ID, "chair")

	_, err := repo.CreateProduct(context.Background(), productInput(cat.ID, "chair"))
	assert.ErrorIs(t, err, ErrDuplicateSlug)
	assert.ErrorIs(t, repo.DeleteCategory(context.Background(), cat.ID.String()), ErrInvalidReference)
}
