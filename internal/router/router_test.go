package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func TestRouter_PathValue(t *testing.T) {
	r := New()

	var gotID string
	r.Get("/api/products/{id}", func(w http.ResponseWriter, req *http.Request) {
		gotID = req.PathValue("id")
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products/42cc4c3c-a31a-4a9d-9dfc-3e5506cae174", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42cc4c3c-a31a-4a9d-9dfc-3e5506cae174", gotID)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	r := New()
	r.Get("/api/coupons", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/coupons", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouter_MiddlewareOrder(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				order = append(order, "before "+name)
				next.ServeHTTP(w, req)
				order = append(order, "after "+name)
			})
		}
	}

	r := New(tag("global"))
	r.Post("/api/cart/items", func(w http.ResponseWriter, req *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusCreated)
	}, tag("route"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/cart/items", nil))

	// Globals run outermost, route middleware inside them.
	assert.Equal(t, []string{"before global", "before route", "handler", "after route", "after global"}, order)
}

func TestRouter_GroupScopesMiddleware(t *testing.T) {
	roleCheck := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.Header.Get("Authorization") == "" {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, req)
		})
	}

	r := New()
	r.Get("/api/products", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	admin := r.Group(roleCheck)
	admin.Get("/api/admin/orders", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// The storefront route stays open.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// The admin group enforces its extra chain.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer token")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_StaticServesUploads(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeFile(dir+"/images/mug.webp", "not-really-a-webp"))

	r := New()
	r.Static("/uploads/", dir)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/images/mug.webp", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "not-really-a-webp", w.Body.String())
}
