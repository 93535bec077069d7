// Package routes wires handlers onto the router.
package routes

import (
	"net/http"

	"github.com/lvargas/dulceria/internal/middleware"
	"github.com/lvargas/dulceria/internal/router"
)

// RegisterAPI registers all API routes. Catalog reads, images, and cart
// endpoints are public; catalog writes require an admin session.
func RegisterAPI(r *router.Router, deps APIDeps) {
	requireAdmin := middleware.RequireAdmin(deps.Sessions)

	// CORS preflight for the whole API surface
	r.Handle(http.MethodOptions, "/", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	// Categories
	r.Get("/api/categories", deps.CategoryHandler.List)
	r.Get("/api/categories/{id}", deps.CategoryHandler.Get)
	r.Post("/api/categories", deps.CategoryHandler.Create, requireAdmin)
	r.Put("/api/categories/{id}", deps.CategoryHandler.Update, requireAdmin)
	r.Delete("/api/categories/{id}", deps.CategoryHandler.Delete, requireAdmin)

	// Products
	r.Get("/api/products", deps.ProductHandler.List)
	r.Get("/api/products/{id}", deps.ProductHandler.Get)
	r.Post("/api/products", deps.ProductHandler.Create, requireAdmin)
	r.Put("/api/products/{id}", deps.ProductHandler.Update, requireAdmin)
	r.Delete("/api/products/{id}", deps.ProductHandler.Delete, requireAdmin)

	// Images
	r.Get("/api/images/{key...}", deps.ImageHandler.Get)

	// Cart
	r.Post("/api/cart/quote", deps.CartHandler.Quote)
	r.Post("/api/cart/checkout", deps.CartHandler.Checkout)

	// Admin auth
	r.Post("/api/admin/login", deps.AdminHandler.Login)
	r.Post("/api/admin/logout", deps.AdminHandler.Logout)

	// Health and metrics
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if deps.Metrics != nil {
		r.Handle(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}
}
