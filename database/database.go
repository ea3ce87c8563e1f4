package database

import (
	"fmt"

	"furniture-catalog/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=furniture_catalog port=5432 sslmode=disable"

// Connect opens the Postgres database. Constraint violations come back as
// gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated.
func Connect(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = defaultDSN
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates the catalog tables and the index that stops a product from
// having two default variants. It works on Postgres and SQLite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Variant{},
	); err != nil {
		return fmt.Errorf("failed to migrate catalog tables: %w", err)
	}

	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_variants_one_default
		ON variants (product_id)
		WHERE is_default = true
	`).Error; err != nil {
		return fmt.Errorf("failed to create default variant index: %w", err)
	}

	return nil
}
