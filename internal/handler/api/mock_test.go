package api

import (
	"context"

	"github.com/lvargas/dulceria/internal/domain"
)

// mockCatalogService implements domain.CatalogService with overridable
// functions, so each test stubs only what it needs.
type mockCatalogService struct {
	ListCategoriesFn  func(ctx context.Context) ([]domain.Category, error)
	GetCategoryFn     func(ctx context.Context, id string) (*domain.Category, error)
	CreateCategoryFn  func(ctx context.Context, params domain.CreateCategoryParams) (*domain.Category, error)
	UpdateCategoryFn  func(ctx context.Context, id string, params domain.UpdateCategoryParams) (*domain.Category, error)
	DeleteCategoryFn  func(ctx context.Context, id string) error
	ListProductsFn    func(ctx context.Context) ([]domain.Product, error)
	ListByCategoryFn  func(ctx context.Context, categoryID string) ([]domain.Product, error)
	GetProductFn      func(ctx context.Context, id string) (*domain.Product, error)
	CreateProductFn   func(ctx context.Context, params domain.CreateProductParams) (*domain.Product, error)
	UpdateProductFn   func(ctx context.Context, id string, params domain.UpdateProductParams) (*domain.Product, error)
	DeleteProductFn   func(ctx context.Context, id string) error
}

func (m *mockCatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return m.ListCategoriesFn(ctx)
}

func (m *mockCatalogService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return m.GetCategoryFn(ctx, id)
}

func (m *mockCatalogService) CreateCategory(ctx context.Context, params domain.CreateCategoryParams) (*domain.Category, error) {
	return m.CreateCategoryFn(ctx, params)
}

func (m *mockCatalogService) UpdateCategory(ctx context.Context, id string, params domain.UpdateCategoryParams) (*domain.Category, error) {
	return m.UpdateCategoryFn(ctx, id, params)
}

func (m *mockCatalogService) DeleteCategory(ctx context.Context, id string) error {
	return m.DeleteCategoryFn(ctx, id)
}

func (m *mockCatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return m.ListProductsFn(ctx)
}

func (m *mockCatalogService) ListProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	return m.ListByCategoryFn(ctx, categoryID)
}

func (m *mockCatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return m.GetProductFn(ctx, id)
}

func (m *mockCatalogService) CreateProduct(ctx context.Context, params domain.CreateProductParams) (*domain.Product, error) {
	return m.CreateProductFn(ctx, params)
}

func (m *mockCatalogService) UpdateProduct(ctx context.Context, id string, params domain.UpdateProductParams) (*domain.Product, error) {
	return m.UpdateProductFn(ctx, id, params)
}

func (m *mockCatalogService) DeleteProduct(ctx context.Context, id string) error {
	return m.DeleteProductFn(ctx, id)
}
