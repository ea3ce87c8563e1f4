package repository

import (
	"context"
	"errors"

	"furniture-catalog/dtos"
	"furniture-catalog/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	msgCategoryNotFound  = "Category not found"
	msgCategorySlugTaken = "Category with this slug already exists"
	msgCategoryInUse     = "Category still has products and cannot be deleted"
)

var categoryStoreMessages = storeErrorMessages{
	duplicate: msgCategorySlugTaken,
	reference: msgCategoryInUse,
}

// productSummaries preloads the minimal product fields shown under a
// category, newest first.
func productSummaries(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "slug", "thumbnail_url", "is_featured", "category_id", "created_at").
		Scopes(newestFirst)
}

func ensureCategorySlugFree(tx *gorm.DB, op, slug string, except uuid.UUID) error {
	var count int64
	q := tx.Model(&models.Category{}).Where("slug = ?", slug)
	if except != uuid.Nil {
		q = q.Where("id <> ?", except)
	}
	if err := q.Count(&count).Error; err != nil {
		return mapStoreError(op, err, storeErrorMessages{})
	}
	if count > 0 {
		return duplicateSlug(op, msgCategorySlugTaken)
	}
	return nil
}

func loadCategory(tx *gorm.DB, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := tx.Preload("Products", productSummaries).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListCategories returns every category alphabetically, each with its
// product summaries.
func (r *CatalogRepository) ListCategories(ctx context.Context) (categories []models.Category, err error) {
	const op = "ListCategories"
	ctx, span := r.startSpan(ctx, op)
	defer func() { r.endSpan(span, op, err) }()

	err = r.db.WithContext(ctx).
		Preload("Products", productSummaries).
		Order("name ASC").
		Order("id ASC").
		Find(&categories).Error
	if err != nil {
		return nil, mapStoreError(op, err, storeErrorMessages{})
	}
	return categories, nil
}

func (r *CatalogRepository) GetCategory(ctx context.Context, id string) (result *models.Category, err error) {
	const op = "GetCategory"
	ctx, span := r.startSpan(ctx, op)
	defer func() { r.endSpan(span, op, err) }()

	categoryID, ok := parseID(id)
	if !ok {
		return nil, notFound(op, msgCategoryNotFound)
	}
	result, err = loadCategory(r.db.WithContext(ctx), categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(op, msgCategoryNotFound)
		}
		return nil, mapStoreError(op, err, storeErrorMessages{})
	}
	return result, nil
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, in dtos.CreateCategoryInput) (result *models.Category, err error) {
	const op = "CreateCategory"
	ctx, span := r.startSpan(ctx, op)
	defer func() { r.endSpan(span, op, err) }()

	if err := in.Validate(); err != nil {
		return nil, validationFailure(op, err)
	}

	category := models.Category{Name: in.Name, Slug: in.Slug}
	err = r.transaction(ctx, func(tx *gorm.DB) error {
		if err := ensureCategorySlugFree(tx, op, in.Slug, uuid.Nil); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&category).Error; err != nil {
			return mapStoreError(op, err, categoryStoreMessages)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	category.Products = []models.Product{}
	r.log.Info("category created", "id", category.ID, "slug", category.Slug)
	return &category, nil
}

func (r *CatalogRepository) UpdateCategory(ctx context.Context, id string, in dtos.UpdateCategoryInput) (result *models.Category, err error) {
	const op = "UpdateCategory"
	ctx, span := r.startSpan(ctx, op)
	defer func() { r.endSpan(span, op, err) }()

	if err := in.Validate(); err != nil {
		return nil, validationFailure(op, err)
	}
	categoryID, ok := parseID(id)
	if !ok {
		return nil, notFound(op, msgCategoryNotFound)
	}

	err = r.transaction(ctx, func(tx *gorm.DB) error {
		var existing models.Category
		if err := forUpdate(tx).First(&existing, "id = ?", categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(op, msgCategoryNotFound)
			}
			return mapStoreError(op, err, categoryStoreMessages)
		}

		updates := map[string]interface{}{}
		if in.Name != nil {
			updates["name"] = *in.Name
		}
		if in.Slug != nil {
			if *in.Slug != existing.Slug {
				if err := ensureCategorySlugFree(tx, op, *in.Slug, categoryID); err != nil {
					return err
				}
			}
			updates["slug"] = *in.Slug
		}
		if err := tx.Model(&models.Category{ID: categoryID}).Updates(updates).Error; err != nil {
			return mapStoreError(op, err, categoryStoreMessages)
		}

		loaded, err := loadCategory(tx, categoryID)
		if err != nil {
			return mapStoreError(op, err, categoryStoreMessages)
		}
		result = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteCategory refuses to remove a category that products still reference.
func (r *CatalogRepository) DeleteCategory(ctx context.Context, id string) (err error) {
	const op = "DeleteCategory"
	ctx, span := r.startSpan(ctx, op)
	defer func() { r.endSpan(span, op, err) }()

	categoryID, ok := parseID(id)
	if !ok {
		return notFound(op, msgCategoryNotFound)
	}

	err = r.transaction(ctx, func(tx *gorm.DB) error {
		var existing models.Category
		if err := forUpdate(tx).Select("id").First(&existing, "id = ?", categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(op, msgCategoryNotFound)
			}
			return mapStoreError(op, err, categoryStoreMessages)
		}

		var products int64
		if err := tx.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&products).Error; err != nil {
			return mapStoreError(op, err, categoryStoreMessages)
		}
		if products > 0 {
			return invalidReference(op, msgCategoryInUse)
		}

		if err := tx.Delete(&models.Category{}, "id = ?", categoryID).Error; err != nil {
			return mapStoreError(op, err, categoryStoreMessages)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.log.Info("category deleted", "id", categoryID)
	return nil
}
