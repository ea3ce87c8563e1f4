package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"furniture-catalog/cache"
	"furniture-catalog/config"
	"furniture-catalog/database"
	"furniture-catalog/logger"
	"furniture-catalog/middleware"
	"furniture-catalog/observability"
	"furniture-catalog/repository"
	"furniture-catalog/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "furniture-catalog"

func main() {
	// Load environment variables
	if err := config.LoadEnv(); err != nil {
		log.Fatal("Error loading .env file:", err)
	}
	cfg := config.Load()

	appLog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer appLog.Sync()

	// Validate critical environment variables
	if err := config.ValidateEnv(appLog); err != nil {
		appLog.Fatal("Environment validation failed", "error", err)
	}

	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, appLog, observability.TracingConfig{
		ServiceName: serviceName,
		Environment: cfg.AppEnv,
		Enabled:     cfg.TracingEnabled,
	})
	if err != nil {
		appLog.Fatal("Failed to initialize tracing", "error", err)
	}

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("Failed to connect to database", "error", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		appLog.Fatal("Failed to run migrations", "error", err)
	}

	if cfg.SeedOnStart {
		if err := database.Seed(db, appLog); err != nil {
			appLog.Warn("Could not seed catalog", "error", err)
		}
	}

	// Product list cache, optional
	var listCache cache.ProductListCache = cache.Nop{}
	var redisCache *cache.RedisCache
	if cfg.RedisURL != "" {
		redisCache, err = cache.NewRedis(ctx, cfg.RedisURL, cfg.CacheTTL, appLog)
		if err != nil {
			appLog.Warn("Redis unavailable, product list cache disabled", "error", err)
		} else {
			listCache = redisCache
			appLog.Info("Product list cache enabled", "ttl", cfg.CacheTTL)
		}
	}

	repo := repository.NewCatalogRepository(db, appLog)
	limiter := middleware.NewRateLimiter(cfg.AdminRateLimit, time.Minute, appLog)
	defer limiter.Stop()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware(serviceName))
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Cache"},
		AllowCredentials: true,
	}))

	// Setup routes
	routes.SetupRoutes(r, repo, listCache, limiter, appLog)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Run server in a goroutine
	go func() {
		appLog.Info("Server starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Server forced to shutdown", "error", err)
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		appLog.Error("Error flushing traces", "error", err)
	}

	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			appLog.Error("Error closing redis client", "error", err)
		}
	}

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			appLog.Error("Error closing database connection", "error", err)
		} else {
			appLog.Info("Database connection closed")
		}
	}

	appLog.Info("Server exited gracefully")
}
