package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stallcraft/backend/api/controllers"
	"github.com/stallcraft/backend/api/responses"
	authsvc "github.com/stallcraft/backend/internal/auth"
	blogsvc "github.com/stallcraft/backend/internal/blogs"
	leadsvc "github.com/stallcraft/backend/internal/leads"
	productsvc "github.com/stallcraft/backend/internal/products"
	rashifalsvc "github.com/stallcraft/backend/internal/rashifal"
	testimonialsvc "github.com/stallcraft/backend/internal/testimonials"
	"github.com/stallcraft/backend/pkg/config"
	"github.com/stallcraft/backend/pkg/db/models"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "stallcraft-api",
			ExpirationMinutes: 60,
		},
		Password: config.PasswordConfig{
			ArgonMemoryKB:    8,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     8,
			ArgonKeyLen:      16,
		},
		Cache: config.CacheConfig{
			TTL:                  30 * time.Second,
			BlogBatchSize:        10,
			TestimonialBatchSize: 20,
			DefaultBatchSize:     20,
		},
	}
}

func newTestRouter(t *testing.T) (http.Handler, authsvc.Service) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(
		&models.Blog{}, &models.Product{}, &models.Testimonial{},
		&models.Lead{}, &models.Rashifal{}, &models.AdminUser{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	cfg := testConfig()

	auth, err := authsvc.NewService(authsvc.NewRepository(conn), cfg.JWT, cfg.Password, nil)
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}
	blogs, err := blogsvc.NewService(blogsvc.NewRepository(conn), cfg.Cache, nil, nil)
	if err != nil {
		t.Fatalf("blog service: %v", err)
	}
	products, err := productsvc.NewService(productsvc.NewRepository(conn), cfg.Cache, nil, nil)
	if err != nil {
		t.Fatalf("product service: %v", err)
	}
	testimonials, err := testimonialsvc.NewService(testimonialsvc.NewRepository(conn), cfg.Cache, nil, nil)
	if err != nil {
		t.Fatalf("testimonial service: %v", err)
	}
	leads, err := leadsvc.NewService(leadsvc.NewRepository(conn), cfg.Cache, nil)
	if err != nil {
		t.Fatalf("lead service: %v", err)
	}
	rashifal, err := rashifalsvc.NewService(rashifalsvc.NewRepository(conn), cfg.Cache, nil)
	if err != nil {
		t.Fatalf("rashifal service: %v", err)
	}

	router := NewRouter(cfg, nil, nil, nil, map[string]controllers.Pinger{}, Services{
		Auth:         auth,
		Blogs:        blogs,
		Products:     products,
		Testimonials: testimonials,
		Leads:        leads,
		Rashifal:     rashifal,
	})
	return router, auth
}

func TestPublicRoutesServeWithoutAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{
		"/health/live",
		"/api/v1/blogs",
		"/api/v1/products",
		"/api/v1/testimonials",
		"/api/v1/rashifal",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d", path, rec.Code)
		}
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/leads", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestLoginThenAdminAccess(t *testing.T) {
	router, auth := newTestRouter(t)

	if _, err := auth.CreateAdmin(context.Background(), "reader@example.com", "crystal-ball-7"); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	body := `{"email":"reader@example.com","password":"crystal-ball-7"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var env responses.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	data, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("unexpected data shape: %T", env.Data)
	}
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatal("expected token in login response")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/v1/leads", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin list status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
