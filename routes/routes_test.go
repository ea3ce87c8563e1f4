package routes

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"furniture-catalog/database"
	"furniture-catalog/logger"
	"furniture-catalog/middleware"
	"furniture-catalog/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatal(err)
	}
	return db
}

func setupRouter(t *testing.T, limiter *middleware.RateLimiter) *gin.Engine {
	db := setupTestDB(t)
	r := gin.New()
	SetupRoutes(r, repository.NewCatalogRepository(db, logger.Nop()), nil, limiter, logger.Nop())
	return r
}

func TestHealthCheck(t *testing.T) {
	r := setupRouter(t, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Body.String() != `{"status":"ok"}` {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestPublicRoutes(t *testing.T) {
	r := setupRouter(t, nil)
	for _, path := range []string{"/api/products", "/api/categories", "/api/admin/products"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d: %s", path, w.Code, w.Body.String())
		}
		if w.Body.String() != "[]" {
			t.Errorf("%s: expected empty array, got %s", path, w.Body.String())
		}
	}
}

func TestAPIResponsesAreNotCacheable(t *testing.T) {
	r := setupRouter(t, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/categories", nil))
	if got := w.Header().Get("Cache-Control"); got == "" {
		t.Error("expected Cache-Control header on API response")
	}
	if got := w.Header().Get("Pragma"); got != "no-cache" {
		t.Errorf("expected Pragma no-cache, got %q", got)
	}
}

func TestVariantRoutesAreMounted(t *testing.T) {
	r := setupRouter(t, nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/admin/variants/not-a-product",
		bytes.NewBufferString(`{"name":"Oak","colorHex":"#D4A574"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown product, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminRoutesAreRateLimited(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Hour, logger.Nop())
	defer limiter.Stop()
	r := setupRouter(t, limiter)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/admin/products", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/admin/products", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}

	// public routes stay open
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/products", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected public route to stay 200, got %d", w.Code)
	}
}
