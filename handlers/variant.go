package handlers

import (
	"context"
	"net/http"

	"furniture-catalog/cache"
	"furniture-catalog/dtos"
	"furniture-catalog/logger"
	"furniture-catalog/models"
	"furniture-catalog/projection"

	"github.com/gin-gonic/gin"
)

type VariantStore interface {
	CreateVariant(ctx context.Context, productID string, in dtos.CreateVariantInput) (*models.Variant, error)
	UpdateVariant(ctx context.Context, id string, in dtos.UpdateVariantInput) (*models.Variant, error)
	DeleteVariant(ctx context.Context, id string) error
}

// VariantHandler serves the admin variant routes. Variant changes alter the
// storefront list, so each success drops the cached list.
type VariantHandler struct {
	Repo  VariantStore
	Cache cache.ProductListCache
	Log   *logger.Logger
}

func (h *VariantHandler) invalidate(ctx context.Context) {
	if h.Cache != nil {
		h.Cache.Invalidate(ctx)
	}
}

func (h *VariantHandler) CreateVariant(c *gin.Context) {
	var input dtos.CreateVariantInput
	if !bindJSON(c, &input) {
		return
	}

	variant, err := h.Repo.CreateVariant(c.Request.Context(), c.Param("productId"), input)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	h.invalidate(c.Request.Context())

	c.JSON(http.StatusCreated, projection.Variant(variant))
}

func (h *VariantHandler) UpdateVariant(c *gin.Context) {
	var input dtos.UpdateVariantInput
	if !bindJSON(c, &input) {
		return
	}

	variant, err := h.Repo.UpdateVariant(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	h.invalidate(c.Request.Context())

	c.JSON(http.StatusOK, projection.Variant(variant))
}

func (h *VariantHandler) DeleteVariant(c *gin.Context) {
	if err := h.Repo.DeleteVariant(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.Log, err)
		return
	}
	h.invalidate(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"message": "Variant deleted successfully"})
}
