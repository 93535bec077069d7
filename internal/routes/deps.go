package routes

import (
	"github.com/lvargas/dulceria/internal/auth"
	"github.com/lvargas/dulceria/internal/handler/api"
	"github.com/lvargas/dulceria/internal/middleware"
)

// APIDeps contains dependencies for the JSON API routes.
type APIDeps struct {
	// Catalog
	CategoryHandler *api.CategoryHandler
	ProductHandler  *api.ProductHandler
	ImageHandler    *api.ImageHandler

	// Cart (stateless quote/checkout)
	CartHandler *api.CartHandler

	// Admin auth
	AdminHandler *api.AdminHandler
	Sessions     *auth.SessionManager

	// Observability
	Metrics *middleware.Metrics
}
