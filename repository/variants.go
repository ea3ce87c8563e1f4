package repository

import (
	"context"
	"errors"

	"furniture-catalog/dtos"
	"furniture-catalog/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	msgVariantNotFound  = "Variant not found"
	msgInvalidProductID = "Invalid productId"
)

// A duplicate key on variants can only come from the one-default index,
// which the parent lock should make unreachable. Report it as storage.
var variantStoreMessages = storeErrorMessages{
	reference: msgInvalidProductID,
}

// lockProduct takes a row lock on the parent product. Writers that change
// which variant is the default serialize on this lock.
func lockProduct(tx *gorm.DB, productID uuid.UUID) error {
	var product models.Product
	return forUpdate(tx).Select("id").First(&product, "id = ?", productID).Error
}

// demoteDefaults clears is_default on every variant of the product except
// keep (uuid.Nil keeps none).
func demoteDefaults(tx *gorm.DB, productID, keep uuid.UUID) error {
	q := tx.Model(&models.Variant{}).Where("product_id = ? AND is_default = ?", productID, true)
	if keep != uuid.Nil {
		q = q.Where("id <> ?", keep)
	}
	return q.Update("is_default", false).Error
}

// CreateVariant adds a variant to a product. When in.IsDefault is set the
// previous default is demoted in the same transaction.
func (r *CatalogRepository) CreateVariant(ctx context.Context, productID string, in dtos.CreateVariantInput) (result *models.Variant, err error) {
	const op = "CreateVariant"
	ctx, span := r.startSpan(ctx, op)
	defer func() { r.endSpan(span, op, err) }()

	if err := in.Validate(); err != nil {
		return nil, validationFailure(op, err)
	}
	pid, ok := parseID(productID)
	if !ok {
		return nil, invalidReference(op, msgInvalidProductID)
	}

	variant := models.Variant{
		ProductID:  pid,
		Name:       in.Name,
		ColorHex:   in.ColorHex,
		TextureURL: emptyToNil(in.TextureURL),
		IsDefault:  in.IsDefault,
	}

	err = r.transaction(ctx, func(tx *gorm.DB) error {
		var lookup error
		if in.IsDefault {
			lookup = lockProduct(tx, pid)
		} else {
			var product models.Product
			lookup = tx.Select("id").First(&product, "id = ?", pid).Error
		}
		if lookup != nil {
			if errors.Is(lookup, gorm.ErrRecordNotFound) {
				return invalidReference(op, msgInvalidProductID)
			}
			return mapStoreError(op, lookup, variantStoreMessages)
		}

		if in.IsDefault {
			if err := demoteDefaults(tx, pid, uuid.Nil); err != nil {
				return mapStoreError(op, err, variantStoreMessages)
			}
		}
		if err := tx.Create(&variant).Error; err != nil {
			return mapStoreError(op, err, variantStoreMessages)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.log.Info("variant created", "id", variant.ID, "product_id", pid, "is_default", variant.IsDefault)
	return &variant, nil
}

// UpdateVariant applies a partial update. Setting isDefault to true demotes
// the product's other variants; setting it to false touches no sibling.
func (r *CatalogRepository) UpdateVariant(ctx context.Context, id string, in dtos.UpdateVariantInput) (result *models.Variant, err error) {
	const op = "UpdateVariant"
	ctx, span := r.startSpan(ctx, op)
	defer func() { r.endSpan(span, op, err) }()

	if err := in.Validate(); err != nil {
		return nil, validationFailure(op, err)
	}
	variantID, ok := parseID(id)
	if !ok {
		return nil, notFound(op, msgVariantNotFound)
	}

	err = r.transaction(ctx, func(tx *gorm.DB) error {
		var existing models.Variant
		if err := tx.First(&existing, "id = ?", variantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(op, msgVariantNotFound)
			}
			return mapStoreError(op, err, variantStoreMessages)
		}

		updates := map[string]interface{}{}
		if in.Name != nil {
			updates["name"] = *in.Name
		}
		if in.ColorHex != nil {
			updates["color_hex"] = *in.ColorHex
		}
		if in.TextureURL.Set {
			updates["texture_url"] = nullable(in.TextureURL)
		}
		if in.IsDefault != nil {
			if *in.IsDefault {
				if err := lockProduct(tx, existing.ProductID); err != nil {
					return mapStoreError(op, err, variantStoreMessages)
				}
				if err := demoteDefaults(tx, existing.ProductID, variantID); err != nil {
					return mapStoreError(op, err, variantStoreMessages)
				}
			}
			updates["is_default"] = *in.IsDefault
		}

		if err := tx.Model(&models.Variant{ID: variantID}).Updates(updates).Error; err != nil {
			return mapStoreError(op, err, variantStoreMessages)
		}

		var updated models.Variant
		if err := tx.First(&updated, "id = ?", variantID).Error; err != nil {
			return mapStoreError(op, err, variantStoreMessages)
		}
		result = &updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteVariant removes one variant. Deleting the default leaves the product
// with no default; nothing is promoted.
func (r *CatalogRepository) DeleteVariant(ctx context.Context, id string) (err error) {
	const op = "DeleteVariant"
	ctx, span := r.startSpan(ctx, op)
	defer func() { r.endSpan(span, op, err) }()

	variantID, ok := parseID(id)
	if !ok {
		return notFound(op, msgVariantNotFound)
	}

	res := r.db.WithContext(ctx).Delete(&models.Variant{}, "id = ?", variantID)
	if res.Error != nil {
		return mapStoreError(op, res.Error, variantStoreMessages)
	}
	if res.RowsAffected == 0 {
		return notFound(op, msgVariantNotFound)
	}
	return nil
}
