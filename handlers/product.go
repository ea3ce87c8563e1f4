package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"furniture-catalog/cache"
	"furniture-catalog/dtos"
	"furniture-catalog/logger"
	"furniture-catalog/models"
	"furniture-catalog/projection"

	"github.com/gin-gonic/gin"
)

type ProductStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListProductsWithVariants(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, in dtos.CreateProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, in dtos.UpdateProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type ProductHandler struct {
	Repo  ProductStore
	Cache cache.ProductListCache
	Log   *logger.Logger
}

func (h *ProductHandler) listCache() cache.ProductListCache {
	if h.Cache == nil {
		return cache.Nop{}
	}
	return h.Cache
}

// GetProducts serves the storefront list, each product with its default
// variant or null. The cache generation is read before the store so a list
// built from rows older than a concurrent mutation is never cached.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	ctx := c.Request.Context()
	body, generation, ok := h.listCache().Get(ctx)
	if ok {
		c.Header("X-Cache", "HIT")
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	products, err := h.Repo.ListProducts(ctx)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}

	body, err = json.Marshal(projection.ListItems(products))
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	h.listCache().Set(ctx, generation, body)

	c.Header("X-Cache", "MISS")
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.Repo.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Log, err)
		return
	}

	c.JSON(http.StatusOK, projection.Detail(product))
}

// GetAdminProducts lists every product with all of its variants.
func (h *ProductHandler) GetAdminProducts(c *gin.Context) {
	products, err := h.Repo.ListProductsWithVariants(c.Request.Context())
	if err != nil {
		respondError(c, h.Log, err)
		return
	}

	c.JSON(http.StatusOK, projection.Details(products))
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var input dtos.CreateProductInput
	if !bindJSON(c, &input) {
		return
	}

	product, err := h.Repo.CreateProduct(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	h.listCache().Invalidate(c.Request.Context())

	c.JSON(http.StatusCreated, projection.Detail(product))
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var input dtos.UpdateProductInput
	if !bindJSON(c, &input) {
		return
	}

	product, err := h.Repo.UpdateProduct(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	h.listCache().Invalidate(c.Request.Context())

	c.JSON(http.StatusOK, projection.Detail(product))
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.Repo.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.Log, err)
		return
	}
	h.listCache().Invalidate(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
