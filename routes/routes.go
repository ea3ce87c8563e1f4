package routes

import (
	"furniture-catalog/cache"
	"furniture-catalog/handlers"
	"furniture-catalog/logger"
	"furniture-catalog/middleware"
	"furniture-catalog/repository"
	"furniture-catalog/utils"

	"github.com/gin-gonic/gin"
)

// SetupRoutes mounts the storefront and admin surfaces. A nil limiter leaves
// the admin routes unthrottled.
func SetupRoutes(r *gin.Engine, repo *repository.CatalogRepository, listCache cache.ProductListCache, limiter *middleware.RateLimiter, log *logger.Logger) {
	utils.RegisterBindingFieldNames()

	if listCache == nil {
		listCache = cache.Nop{}
	}

	// Initialize handlers
	productHandler := &handlers.ProductHandler{Repo: repo, Cache: listCache, Log: log}
	variantHandler := &handlers.VariantHandler{Repo: repo, Cache: listCache, Log: log}
	categoryHandler := &handlers.CategoryHandler{Repo: repo, Cache: listCache, Log: log}

	// Public routes
	api := r.Group("/api")
	api.Use(middleware.NoCache())
	{
		api.GET("/products", productHandler.GetProducts)
		api.GET("/products/:id", productHandler.GetProduct)

		api.GET("/categories", categoryHandler.GetCategories)
		api.GET("/categories/:id", categoryHandler.GetCategory)
	}

	// Admin routes
	admin := api.Group("/admin")
	if limiter != nil {
		admin.Use(limiter.Middleware())
	}
	{
		// Product management
		admin.GET("/products", productHandler.GetAdminProducts)
		admin.POST("/products", productHandler.CreateProduct)
		admin.PUT("/products/:id", productHandler.UpdateProduct)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)

		// Variant management
		admin.POST("/variants/:productId", variantHandler.CreateVariant)
		admin.PUT("/variants/:id", variantHandler.UpdateVariant)
		admin.DELETE("/variants/:id", variantHandler.DeleteVariant)

		// Category management
		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.PUT("/categories/:id", categoryHandler.UpdateCategory)
		admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
