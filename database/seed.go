package database

import (
	"fmt"
	"time"

	"furniture-catalog/logger"
	"furniture-catalog/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type seedVariant struct {
	name      string
	colorHex  string
	isDefault bool
}

type seedProduct struct {
	name         string
	slug         string
	description  string
	categorySlug string
	asset        string
	baseColor    string
	age          time.Duration
	variants     []seedVariant
}

var seedCategories = []models.Category{
	{Name: "Chairs", Slug: "chairs"},
	{Name: "Armchairs", Slug: "armchairs"},
}

// Products are listed newest first; age is subtracted from the seed time so
// the storefront shows them in this order.
var seedProducts = []seedProduct{
	{
		name:         "Modern Dining Chair",
		slug:         "modern-dining-chair",
		description:  "Elegant dining chair with clean lines and comfortable seating. Perfect for contemporary dining rooms.",
		categorySlug: "chairs",
		asset:        "dining-chair",
		baseColor:    "#8B4513",
		variants: []seedVariant{
			{"Natural Oak", "#D4A574", true},
			{"Walnut Brown", "#5C4033", false},
			{"Charcoal Black", "#2C2C2C", false},
		},
	},
	{
		name:         "Ergonomic Office Chair",
		slug:         "ergonomic-office-chair",
		description:  "Professional ergonomic chair with lumbar support and adjustable armrests. Designed for long work sessions.",
		categorySlug: "chairs",
		asset:        "office-chair",
		baseColor:    "#1A1A1A",
		age:          time.Hour,
		variants: []seedVariant{
			{"Midnight Black", "#1A1A1A", true},
			{"Steel Gray", "#6B7280", false},
		},
	},
	{
		name:         "Classic Velvet Armchair",
		slug:         "classic-velvet-armchair",
		description:  "Luxurious velvet armchair with deep cushioning and elegant curved arms. A statement piece for any living room.",
		categorySlug: "armchairs",
		asset:        "velvet-armchair",
		baseColor:    "#2D5A4A",
		age:          2 * time.Hour,
		variants: []seedVariant{
			{"Emerald Green", "#2D5A4A", true},
			{"Royal Blue", "#1E3A5F", false},
			{"Burgundy Red", "#722F37", false},
		},
	},
	{
		name:         "Scandinavian Lounge Armchair",
		slug:         "scandinavian-lounge-armchair",
		description:  "Minimalist Scandinavian design with natural wood frame and premium fabric upholstery. Timeless comfort meets modern aesthetics.",
		categorySlug: "armchairs",
		asset:        "lounge-armchair",
		baseColor:    "#E8DCC4",
		age:          3 * time.Hour,
		variants: []seedVariant{
			{"Cream White", "#E8DCC4", true},
			{"Light Gray", "#B8B8B8", false},
			{"Soft Pink", "#E8C4C4", false},
		},
	},
}

// Seed fills an empty catalog with the demo categories, products and
// variants. It does nothing when any category already exists.
func Seed(db *gorm.DB, log *logger.Logger) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		log.Info("catalog already populated, skipping seed", "categories", count)
		return nil
	}

	now := time.Now()
	var productCount, variantCount int

	err := db.Transaction(func(tx *gorm.DB) error {
		categoryIDs := make(map[string]models.Category, len(seedCategories))
		for _, c := range seedCategories {
			category := c
			if err := tx.Omit(clause.Associations).Create(&category).Error; err != nil {
				return fmt.Errorf("failed to create category %s: %w", c.Slug, err)
			}
			categoryIDs[category.Slug] = category
		}

		for _, sp := range seedProducts {
			baseColor := sp.baseColor
			product := models.Product{
				Name:         sp.name,
				Slug:         sp.slug,
				Description:  sp.description,
				CategoryID:   categoryIDs[sp.categorySlug].ID,
				ModelURL:     "/models/" + sp.asset + ".glb",
				ThumbnailURL: "/thumbnails/" + sp.asset + ".webp",
				BaseColor:    &baseColor,
				IsFeatured:   true,
				CreatedAt:    now.Add(-sp.age),
			}
			if err := tx.Omit(clause.Associations).Create(&product).Error; err != nil {
				return fmt.Errorf("failed to create product %s: %w", sp.slug, err)
			}
			productCount++

			for i, sv := range sp.variants {
				variant := models.Variant{
					ProductID: product.ID,
					Name:      sv.name,
					ColorHex:  sv.colorHex,
					IsDefault: sv.isDefault,
					CreatedAt: now.Add(time.Duration(i) * time.Millisecond),
				}
				if err := tx.Create(&variant).Error; err != nil {
					return fmt.Errorf("failed to create variant %s/%s: %w", sp.slug, sv.name, err)
				}
				variantCount++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("catalog seeded",
		"categories", len(seedCategories),
		"products", productCount,
		"variants", variantCount,
	)
	return nil
}
