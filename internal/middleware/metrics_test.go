package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func Test_NormalizePath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/api/products", "/api/products"},
		{"/api/products/2f5b0c6e-9a1d-4e64-8c0a-1f9f3a6f7b21", "/api/products/:id"},
		{"/api/products/another-uuid", "/api/products/:id"},
		{"/api/categories", "/api/categories"},
		{"/api/categories/2f5b0c6e-9a1d-4e64-8c0a-1f9f3a6f7b21", "/api/categories/:id"},
		{"/api/images/products/abc123.jpg", "/api/images/*"},
		{"/api/cart/quote", "/api/cart/quote"},
		{"/api/admin/login", "/api/admin/login"},
		{"/healthz", "/healthz"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizePath(tt.path))
		})
	}
}

// Requests for distinct record IDs must collapse into one label set, so the
// registry stays bounded no matter how many records exist.
func Test_Metrics_BoundedPathLabels(t *testing.T) {
	m := NewMetrics("middlewaretest")

	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, path := range []string{
		"/api/products/0b54d4d2-5bb6-4f7e-8a3f-0f3f1f2a9c01",
		"/api/products/6a7c2d10-93a4-4e0b-b8a9-b6f6f3b0d702",
		"/api/products/f5e9a8b4-1c2d-4f3e-9a0b-7c8d9e0f1a03",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, 1, testutil.CollectAndCount(m.requestsTotal),
		"distinct product IDs must share one series")
	assert.Equal(t, float64(3), testutil.ToFloat64(
		m.requestsTotal.WithLabelValues(http.MethodGet, "/api/products/:id", "200")))
}
