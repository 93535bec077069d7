package domain

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CATALOG DOMAIN TYPES
// =============================================================================

// Product is a catalog record. Prices are in the base currency unit.
//
// A product may offer a pack variant: PackSize units sold together, with an
// optional percentage discount applied to the aggregate pack price. Dietary
// variants (gluten-free, sugar-free) are opt-in per product; when available,
// selecting one adds a fixed up-charge at pricing time.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Images      []string        `json:"images"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"categoryId"`

	IsPack       bool             `json:"isPack,omitempty"`
	PackSize     *int             `json:"packSize,omitempty"`
	PackDiscount *decimal.Decimal `json:"packDiscount,omitempty"`

	GlutenFreeAvailable bool `json:"glutenFreeAvailable"`
	SugarFreeAvailable  bool `json:"sugarFreeAvailable"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Category groups products for display. Referential integrity is not
// enforced; products with a dangling CategoryID degrade to "uncategorized".
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ImageUpload is a pending image attachment for a product write.
type ImageUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// =============================================================================
// PARAMETER TYPES
// =============================================================================

// CreateProductParams contains parameters for creating a product.
// Pack fields must be coherent: PackSize and PackDiscount are only valid when
// IsPack is set, and PackSize must be at least 1.
type CreateProductParams struct {
	Name                string `validate:"required"`
	Description         string
	Price               decimal.Decimal
	CategoryID          string
	IsPack              bool
	PackSize            *int
	PackDiscount        *decimal.Decimal
	GlutenFreeAvailable bool
	SugarFreeAvailable  bool
	Images              []ImageUpload
}

// UpdateProductParams contains parameters for updating a product.
// Updates are full replacements (PUT semantics): every field is written.
// KeepImages lists existing image refs to retain; NewImages are uploaded and
// appended. The two dietary availability flags are independent.
type UpdateProductParams struct {
	Name                string `validate:"required"`
	Description         string
	Price               decimal.Decimal
	CategoryID          string
	IsPack              bool
	PackSize            *int
	PackDiscount        *decimal.Decimal
	GlutenFreeAvailable bool
	SugarFreeAvailable  bool
	KeepImages          []string
	NewImages           []ImageUpload
}

// CreateCategoryParams contains parameters for creating a category.
type CreateCategoryParams struct {
	Name        string `validate:"required"`
	Description string
}

// UpdateCategoryParams contains parameters for updating a category.
type UpdateCategoryParams struct {
	Name        string `validate:"required"`
	Description string
}

// =============================================================================
// SERVICE INTERFACE
// =============================================================================

// CatalogService provides business logic for catalog CRUD operations.
// Records live in a key-addressable store; writes are validated here and
// last-write-wins (no concurrent-edit conflict resolution).
type CatalogService interface {
	// ListCategories returns all categories sorted by name.
	ListCategories(ctx context.Context) ([]Category, error)

	// GetCategory retrieves a category by ID.
	GetCategory(ctx context.Context, id string) (*Category, error)

	// CreateCategory creates a new category with a server-assigned ID.
	CreateCategory(ctx context.Context, params CreateCategoryParams) (*Category, error)

	// UpdateCategory updates an existing category.
	UpdateCategory(ctx context.Context, id string, params UpdateCategoryParams) (*Category, error)

	// DeleteCategory deletes a category. Idempotent if absent.
	// Products referencing it are left untouched.
	DeleteCategory(ctx context.Context, id string) error

	// ListProducts returns all products, newest first.
	ListProducts(ctx context.Context) ([]Product, error)

	// ListProductsByCategory returns products in a category, newest first.
	ListProductsByCategory(ctx context.Context, categoryID string) ([]Product, error)

	// GetProduct retrieves a product by ID.
	GetProduct(ctx context.Context, id string) (*Product, error)

	// CreateProduct validates params, uploads images, and stores the product.
	CreateProduct(ctx context.Context, params CreateProductParams) (*Product, error)

	// UpdateProduct replaces a product's fields, uploading any new images.
	UpdateProduct(ctx context.Context, id string, params UpdateProductParams) (*Product, error)

	// DeleteProduct deletes a product and its stored images (best effort).
	DeleteProduct(ctx context.Context, id string) error
}

// =============================================================================
// DOMAIN ERRORS
// =============================================================================

var (
	ErrProductNotFound  = &Error{Code: ENOTFOUND, Message: "Product not found"}
	ErrCategoryNotFound = &Error{Code: ENOTFOUND, Message: "Category not found"}
)
