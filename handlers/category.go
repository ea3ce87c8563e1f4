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

type CategoryStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, in dtos.CreateCategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, in dtos.UpdateCategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type CategoryHandler struct {
	Repo  CategoryStore
	Cache cache.ProductListCache
	Log   *logger.Logger
}

// invalidate drops the cached product list; list entries embed their category.
func (h *CategoryHandler) invalidate(ctx context.Context) {
	if h.Cache != nil {
		h.Cache.Invalidate(ctx)
	}
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.Repo.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, h.Log, err)
		return
	}

	c.JSON(http.StatusOK, projection.Categories(categories))
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, err := h.Repo.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Log, err)
		return
	}

	c.JSON(http.StatusOK, projection.Category(category))
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var input dtos.CreateCategoryInput
	if !bindJSON(c, &input) {
		return
	}

	category, err := h.Repo.CreateCategory(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	h.invalidate(c.Request.Context())

	c.JSON(http.StatusCreated, projection.Category(category))
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var input dtos.UpdateCategoryInput
	if !bindJSON(c, &input) {
		return
	}

	category, err := h.Repo.UpdateCategory(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	h.invalidate(c.Request.Context())

	c.JSON(http.StatusOK, projection.Category(category))
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.Repo.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.Log, err)
		return
	}
	h.invalidate(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
