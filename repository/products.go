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
	msgProductNotFound   = "Product not found"
	msgProductSlugTaken  = "Product with this slug already exists"
	msgInvalidCategoryID = "Invalid categoryId"
	msgBaseColorRequired = "baseColor is required unless useOriginalColor is true"
)

var productStoreMessages = storeErrorMessages{
	duplicate: msgProductSlugTaken,
	reference: msgInvalidCategoryID,
}

// variantOrder puts the default variant first, then oldest first.
func variantOrder(db *gorm.DB) *gorm.DB {
	return db.Order("is_default DESC").Order("created_at ASC").Order("id ASC")
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}

// loadProduct reads a product with its category and all variants.
func loadProduct(tx *gorm.DB, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := tx.Preload("Category").
		Preload("Variants", variantOrder).
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func requireCategory(tx *gorm.DB, op string, id uuid.UUID) error {
	var count int64
	if err := tx.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return mapStoreError(op, err, storeErrorMessages{})
	}
	if count == 0 {
		return invalidReference(op, msgInvalidCategoryID)
	}
	return nil
}

func ensureProductSlugFree(tx *gorm.DB, op, slug string, except uuid.UUID) error {
	var count int64
	q := tx.Model(&models.Product{}).Where("slug = ?", slug)
	if except != uuid.Nil {
		q = q.Where("id <> ?", except)
	}
	if err := q.Count(&count).Error; err != nil {
		return mapStoreError(op, err, storeErrorMessages{})
	}
	if count > 0 {
		return duplicateSlug(op, msgProductSlugTaken)
	}
	return nil
}

// nullable turns an explicitly sent Field into a column value.
func nullable[T any](f dtos.Field[T]) interface{} {
	if !f.Valid {
		return nil
	}
	return f.Value
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// CreateProduct inserts a product. The returned product carries its category
// and an empty variant list.
func (r *CatalogRepository) CreateProduct(ctx context.Context, in dtos.CreateProductInput) (result *models.Product, err error) {
	const op = "CreateProduct"
	ctx, span := r.startSpan(ctx, op)
	defer func() { r.endSpan(span, op, err) }()

	if err := in.Validate(); err != nil {
		return nil, validationFailure(op, err)
	}
	categoryID, ok := parseID(in.CategoryID)
	if !ok {
		return nil, invalidReference(op, msgInvalidCategoryID)
	}

	product := models.Product{
		Name:                 in.Name,
		Slug:                 in.Slug,
		Description:          in.Description,
		CategoryID:           categoryID,
		ModelURL:             in.ModelURL,
		ThumbnailURL:         in.ThumbnailURL,
		BaseColor:            emptyToNil(in.BaseColor),
		UseOriginalColor:     in.UseOriginalColor,
		OriginalColorName:    emptyToNil(in.OriginalColorName),
		OriginalColorPreview: emptyToNil(in.OriginalColorPreview),
		IsFeatured:           in.IsFeatured,
		WidthCm:              in.WidthCm,
		HeightCm:             in.HeightCm,
		DepthCm:              in.DepthCm,
		WeightKg:             in.WeightKg,
		Material:             in.Material,
		MaxLoadKg:            in.MaxLoadKg,
	}

	err = r.transaction(ctx, func(tx *gorm.DB) error {
		if err := requireCategory(tx, op, categoryID); err != nil {
			return err
		}
		if err := ensureProductSlugFree(tx, op, in.Slug, uuid.Nil); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&product).Error; err != nil {
			return mapStoreError(op, err, productStoreMessages)
		}

		loaded, err := loadProduct(tx, product.ID)
		if err != nil {
			return mapStoreError(op, err, productStoreMessages)
		}
		result = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.log.Info("product created", "id", result.ID, "slug", result.Slug)
	return result, nil
}

// UpdateProduct applies a partial update. Fields absent from in keep their
// stored values.
func (r *CatalogRepository) UpdateProduct(ctx context.Context, id string, in dtos.UpdateProductInput) (result *models.Product, err error) {
	const op = "UpdateProduct"
	ctx, span := r.startSpan(ctx, op)
	defer func() { r.endSpan(span, op, err) }()

	if err := in.Validate(); err != nil {
		return nil, validationFailure(op, err)
	}
	productID, ok := parseID(id)
	if !ok {
		return nil, notFound(op, msgProductNotFound)
	}

	err = r.transaction(ctx, func(tx *gorm.DB) error {
		var existing models.Product
		if err := forUpdate(tx).First(&existing, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(op, msgProductNotFound)
			}
			return mapStoreError(op, err, productStoreMessages)
		}

		updates, err := productUpdates(tx, op, &existing, in)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.Product{ID: productID}).Updates(updates).Error; err != nil {
			return mapStoreError(op, err, productStoreMessages)
		}

		loaded, err := loadProduct(tx, productID)
		if err != nil {
			return mapStoreError(op, err, productStoreMessages)
		}
		result = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// productUpdates builds the column map for an update and checks the
// references and uniqueness it would introduce.
func productUpdates(tx *gorm.DB, op string, existing *models.Product, in dtos.UpdateProductInput) (map[string]interface{}, error) {
	updates := map[string]interface{}{}

	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Slug != nil {
		if *in.Slug != existing.Slug {
			if err := ensureProductSlugFree(tx, op, *in.Slug, existing.ID); err != nil {
				return nil, err
			}
		}
		updates["slug"] = *in.Slug
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.CategoryID != nil {
		categoryID, ok := parseID(*in.CategoryID)
		if !ok {
			return nil, invalidReference(op, msgInvalidCategoryID)
		}
		if err := requireCategory(tx, op, categoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = categoryID
	}
	if in.ModelURL != nil {
		updates["model_url"] = *in.ModelURL
	}
	if in.ThumbnailURL != nil {
		updates["thumbnail_url"] = *in.ThumbnailURL
	}
	if in.IsFeatured != nil {
		updates["is_featured"] = *in.IsFeatured
	}

	useOriginal := existing.UseOriginalColor
	if in.UseOriginalColor != nil {
		useOriginal = *in.UseOriginalColor
		updates["use_original_color"] = useOriginal
	}
	hasBaseColor := existing.BaseColor != nil
	if in.BaseColor.Set {
		hasBaseColor = in.BaseColor.Valid
		updates["base_color"] = nullable(in.BaseColor)
	}
	if !useOriginal && !hasBaseColor {
		return nil, newError(KindValidation, op, msgBaseColorRequired, nil)
	}

	nullableColumns := []struct {
		column string
		set    bool
		value  interface{}
	}{
		{"original_color_name", in.OriginalColorName.Set, nullable(in.OriginalColorName)},
		{"original_color_preview", in.OriginalColorPreview.Set, nullable(in.OriginalColorPreview)},
		{"width_cm", in.WidthCm.Set, nullable(in.WidthCm)},
		{"height_cm", in.HeightCm.Set, nullable(in.HeightCm)},
		{"depth_cm", in.DepthCm.Set, nullable(in.DepthCm)},
		{"weight_kg", in.WeightKg.Set, nullable(in.WeightKg)},
		{"material", in.Material.Set, nullable(in.Material)},
		{"max_load_kg", in.MaxLoadKg.Set, nullable(in.MaxLoadKg)},
	}
	for _, c := range nullableColumns {
		if c.set {
			updates[c.column] = c.value
		}
	}

	return updates, nil
}

// DeleteProduct removes a product together with all of its variants.
func (r *CatalogRepository) DeleteProduct(ctx context.Context, id string) (err error) {
	const op = "DeleteProduct"
	ctx, span := r.startSpan(ctx, op)
	defer func() { r.endSpan(span, op, err) }()

	productID, ok := parseID(id)
	if !ok {
		return notFound(op, msgProductNotFound)
	}

	err = r.transaction(ctx, func(tx *gorm.DB) error {
		var existing models.Product
		if err := forUpdate(tx).Select("id").First(&existing, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(op, msgProductNotFound)
			}
			return mapStoreError(op, err, storeErrorMessages{})
		}
		if err := tx.Where("product_id = ?", productID).Delete(&models.Variant{}).Error; err != nil {
			return mapStoreError(op, err, storeErrorMessages{})
		}
		if err := tx.Delete(&models.Product{}, "id = ?", productID).Error; err != nil {
			return mapStoreError(op, err, storeErrorMessages{})
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.log.Info("product deleted", "id", productID)
	return nil
}

// ListProducts returns every product newest first. Each product's Variants
// holds at most its default variant.
func (r *CatalogRepository) ListProducts(ctx context.Context) (products []models.Product, err error) {
	const op = "ListProducts"
	ctx, span := r.startSpan(ctx, op)
	defer func() { r.endSpan(span, op, err) }()

	err = r.db.WithContext(ctx).
		Preload("Category").
		Preload("Variants", "is_default = ?", true).
		Scopes(newestFirst).
		Find(&products).Error
	if err != nil {
		return nil, mapStoreError(op, err, storeErrorMessages{})
	}
	return products, nil
}

// ListProductsWithVariants returns every product newest first with all of
// its variants, default first.
func (r *CatalogRepository) ListProductsWithVariants(ctx context.Context) (products []models.Product, err error) {
	const op = "ListProductsWithVariants"
	ctx, span := r.startSpan(ctx, op)
	defer func() { r.endSpan(span, op, err) }()

	err = r.db.WithContext(ctx).
		Preload("Category").
		Preload("Variants", variantOrder).
		Scopes(newestFirst).
		Find(&products).Error
	if err != nil {
		return nil, mapStoreError(op, err, storeErrorMessages{})
	}
	return products, nil
}

// GetProduct returns one product with all of its variants, default first.
func (r *CatalogRepository) GetProduct(ctx context.Context, id string) (result *models.Product, err error) {
	const op = "GetProduct"
	ctx, span := r.startSpan(ctx, op)
	defer func() { r.endSpan(span, op, err) }()

	productID, ok := parseID(id)
	if !ok {
		return nil, notFound(op, msgProductNotFound)
	}

	result, err = loadProduct(r.db.WithContext(ctx), productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(op, msgProductNotFound)
		}
		return nil, mapStoreError(op, err, storeErrorMessages{})
	}
	return result, nil
}
