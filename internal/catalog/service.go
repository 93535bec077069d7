// Package catalog implements CRUD for products and categories on top of the
// key-value store, plus the image lifecycle against blob storage.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/lvargas/dulceria/internal/domain"
	"github.com/lvargas/dulceria/internal/kv"
	"github.com/lvargas/dulceria/internal/storage"
)

const (
	productKeyPrefix  = "product:"
	categoryKeyPrefix = "category:"
)

type service struct {
	store    kv.Store
	blobs    storage.Storage
	validate *validator.Validate
	now      func() time.Time
}

// NewService creates a CatalogService backed by the given stores.
func NewService(store kv.Store, blobs storage.Storage) domain.CatalogService {
	return &service{
		store:    store,
		blobs:    blobs,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// =============================================================================
// CATEGORIES
// =============================================================================

func (s *service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	values, err := s.store.List(ctx, categoryKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]domain.Category, 0, len(values))
	for _, value := range values {
		var category domain.Category
		if err := json.Unmarshal(value, &category); err != nil {
			return nil, fmt.Errorf("failed to decode category record: %w", err)
		}
		categories = append(categories, category)
	}

	sort.Slice(categories, func(i, j int) bool {
		return strings.ToLower(categories[i].Name) < strings.ToLower(categories[j].Name)
	})
	return categories, nil
}

func (s *service) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	value, err := s.store.Get(ctx, categoryKeyPrefix+id)
	if err != nil {
		if err == kv.ErrNotFound {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	var category domain.Category
	if err := json.Unmarshal(value, &category); err != nil {
		return nil, fmt.Errorf("failed to decode category record: %w", err)
	}
	return &category, nil
}

func (s *service) CreateCategory(ctx context.Context, params domain.CreateCategoryParams) (*domain.Category, error) {
	if err := s.validate.Struct(params); err != nil {
		return nil, fieldErrors("catalog.create_category", err)
	}

	now := s.now()
	category := domain.Category{
		ID:          uuid.NewString(),
		Name:        params.Name,
		Description: params.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.putCategory(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *service) UpdateCategory(ctx context.Context, id string, params domain.UpdateCategoryParams) (*domain.Category, error) {
	if err := s.validate.Struct(params); err != nil {
		return nil, fieldErrors("catalog.update_category", err)
	}

	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = params.Name
	category.Description = params.Description
	category.UpdatedAt = s.now()

	if err := s.putCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *service) DeleteCategory(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, categoryKeyPrefix+id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func (s *service) putCategory(ctx context.Context, category *domain.Category) error {
	value, err := json.Marshal(category)
	if err != nil {
		return fmt.Errorf("failed to encode category record: %w", err)
	}
	if err := s.store.Set(ctx, categoryKeyPrefix+category.ID, value); err != nil {
		return fmt.Errorf("failed to store category: %w", err)
	}
	return nil
}

// =============================================================================
// PRODUCTS
// =============================================================================

func (s *service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	values, err := s.store.List(ctx, productKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]domain.Product, 0, len(values))
	for _, value := range values {
		var product domain.Product
		if err := json.Unmarshal(value, &product); err != nil {
			return nil, fmt.Errorf("failed to decode product record: %w", err)
		}
		products = append(products, product)
	}

	sortProductsNewestFirst(products)
	return products, nil
}

func (s *service) ListProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	filtered := products[:0]
	for _, product := range products {
		if product.CategoryID == categoryID {
			filtered = append(filtered, product)
		}
	}
	return filtered, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	value, err := s.store.Get(ctx, productKeyPrefix+id)
	if err != nil {
		if err == kv.ErrNotFound {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	var product domain.Product
	if err := json.Unmarshal(value, &product); err != nil {
		return nil, fmt.Errorf("failed to decode product record: %w", err)
	}
	return &product, nil
}

func (s *service) CreateProduct(ctx context.Context, params domain.CreateProductParams) (*domain.Product, error) {
	const op = "catalog.create_product"
	if err := s.validate.Struct(params); err != nil {
		return nil, fieldErrors(op, err)
	}
	if err := validatePackFields(op, params.Price, params.IsPack, params.PackSize, params.PackDiscount); err != nil {
		return nil, err
	}

	images, err := s.uploadImages(ctx, params.Images)
	if err != nil {
		return nil, err
	}

	now := s.now()
	product := domain.Product{
		ID:                  uuid.NewString(),
		Name:                params.Name,
		Description:         params.Description,
		Images:              images,
		Price:               params.Price,
		CategoryID:          params.CategoryID,
		IsPack:              params.IsPack,
		PackSize:            params.PackSize,
		PackDiscount:        params.PackDiscount,
		GlutenFreeAvailable: params.GlutenFreeAvailable,
		SugarFreeAvailable:  params.SugarFreeAvailable,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.putProduct(ctx, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *service) UpdateProduct(ctx context.Context, id string, params domain.UpdateProductParams) (*domain.Product, error) {
	const op = "catalog.update_product"
	if err := s.validate.Struct(params); err != nil {
		return nil, fieldErrors(op, err)
	}
	if err := validatePackFields(op, params.Price, params.IsPack, params.PackSize, params.PackDiscount); err != nil {
		return nil, err
	}

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	uploaded, err := s.uploadImages(ctx, params.NewImages)
	if err != nil {
		return nil, err
	}

	product.Name = params.Name
	product.Description = params.Description
	product.Images = append(append([]string{}, params.KeepImages...), uploaded...)
	product.Price = params.Price
	product.CategoryID = params.CategoryID
	product.IsPack = params.IsPack
	product.PackSize = params.PackSize
	product.PackDiscount = params.PackDiscount
	// The two availability flags are written independently.
	product.GlutenFreeAvailable = params.GlutenFreeAvailable
	product.SugarFreeAvailable = params.SugarFreeAvailable
	product.UpdatedAt = s.now()

	if err := s.putProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	// Best effort: a missing blob must not block catalog deletion.
	for _, ref := range product.Images {
		_ = s.blobs.Delete(ctx, ref)
	}

	if err := s.store.Delete(ctx, productKeyPrefix+id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (s *service) putProduct(ctx context.Context, product *domain.Product) error {
	value, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to encode product record: %w", err)
	}
	if err := s.store.Set(ctx, productKeyPrefix+product.ID, value); err != nil {
		return fmt.Errorf("failed to store product: %w", err)
	}
	return nil
}

// uploadImages stores each pending upload and returns the blob keys in
// upload order. Keys (not URLs) are what Product.Images holds; the image
// route serves them back.
func (s *service) uploadImages(ctx context.Context, uploads []domain.ImageUpload) ([]string, error) {
	keys := make([]string, 0, len(uploads))
	for _, upload := range uploads {
		ext := path.Ext(upload.Filename)
		if ext == "" {
			ext = ".jpg"
		}
		contentType := upload.ContentType
		if contentType == "" {
			contentType = "image/jpeg"
		}

		key := fmt.Sprintf("products/%s%s", uuid.NewString(), ext)
		if _, err := s.blobs.Put(ctx, key, upload.Content, contentType); err != nil {
			return nil, fmt.Errorf("failed to upload image %q: %w", upload.Filename, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func sortProductsNewestFirst(products []domain.Product) {
	sort.Slice(products, func(i, j int) bool {
		if !products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		}
		return products[i].ID < products[j].ID
	})
}
