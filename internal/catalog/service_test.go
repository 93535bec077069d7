package catalog_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvargas/dulceria/internal/catalog"
	"github.com/lvargas/dulceria/internal/domain"
	"github.com/lvargas/dulceria/internal/kv"
	"github.com/lvargas/dulceria/internal/storage"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func intPtr(v int) *int { return &v }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// memBlobs is an in-memory Storage for tests. It records deletions so tests
// can assert on the image cleanup path.
type memBlobs struct {
	blobs   map[string][]byte
	deleted []string
}

func newMemBlobs() *memBlobs {
	return &memBlobs{blobs: make(map[string][]byte)}
}

func (m *memBlobs) Put(_ context.Context, key string, content io.Reader, _ string) (string, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	m.blobs[key] = data
	return m.URL(key), nil
}

func (m *memBlobs) Get(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := m.blobs[key]
	if !ok {
		return nil, storage.ErrFileNotFound(key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memBlobs) Delete(_ context.Context, key string) error {
	delete(m.blobs, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *memBlobs) URL(key string) string {
	return "/api/images/" + key
}

func (m *memBlobs) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.blobs[key]
	return ok, nil
}

func newTestService(t *testing.T) (domain.CatalogService, *memBlobs) {
	t.Helper()
	blobs := newMemBlobs()
	return catalog.NewService(kv.NewMemoryStore(), blobs), blobs
}

func productParams(name string) domain.CreateProductParams {
	return domain.CreateProductParams{
		Name:  name,
		Price: dec("10"),
	}
}

// =============================================================================
// CATEGORIES
// =============================================================================

func Test_Category_CRUD(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, domain.CreateCategoryParams{
		Name:        "Tortas",
		Description: "Tortas enteras por encargo",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Tortas", created.Name)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := svc.GetCategory(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Tortas enteras por encargo", got.Description)

	updated, err := svc.UpdateCategory(ctx, created.ID, domain.UpdateCategoryParams{Name: "Tortas y Tartas"})
	require.NoError(t, err)
	assert.Equal(t, "Tortas y Tartas", updated.Name)
	assert.Empty(t, updated.Description, "update is a full replacement")
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))

	require.NoError(t, svc.DeleteCategory(ctx, created.ID))

	_, err = svc.GetCategory(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, svc.DeleteCategory(ctx, created.ID))
}

func Test_CreateCategory_RequiresName(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateCategory(context.Background(), domain.CreateCategoryParams{})
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
	assert.Contains(t, domain.GetValidationFields(err), "name")
}

func Test_ListCategories_SortedByName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"Galletas", "alfajores", "Brownies"} {
		_, err := svc.CreateCategory(ctx, domain.CreateCategoryParams{Name: name})
		require.NoError(t, err)
	}

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 3)

	names := []string{categories[0].Name, categories[1].Name, categories[2].Name}
	assert.Equal(t, []string{"alfajores", "Brownies", "Galletas"}, names, "sort is case-insensitive")
}

func Test_UpdateCategory_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateCategory(context.Background(), "missing", domain.UpdateCategoryParams{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

// =============================================================================
// PRODUCTS
// =============================================================================

func Test_Product_CRUD(t *testing.T) {
	svc, blobs := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, domain.CreateProductParams{
		Name:                "Alfajor de Maicena",
		Description:         "Relleno de dulce de leche",
		Price:               dec("3.50"),
		CategoryID:          "cat-1",
		GlutenFreeAvailable: true,
		Images: []domain.ImageUpload{
			{Filename: "alfajor.png", ContentType: "image/png", Content: strings.NewReader("png-bytes")},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Len(t, created.Images, 1)
	assert.True(t, strings.HasPrefix(created.Images[0], "products/"))
	assert.True(t, strings.HasSuffix(created.Images[0], ".png"))

	exists, err := blobs.Exists(ctx, created.Images[0])
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := svc.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alfajor de Maicena", got.Name)
	assert.True(t, got.Price.Equal(dec("3.50")))
	assert.True(t, got.GlutenFreeAvailable)
	assert.False(t, got.SugarFreeAvailable)

	require.NoError(t, svc.DeleteProduct(ctx, created.ID))

	_, err = svc.GetProduct(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Equal(t, created.Images, blobs.deleted, "stored images are cleaned up on delete")
}

func Test_CreateProduct_Validation(t *testing.T) {
	tests := []struct {
		name          string
		params        domain.CreateProductParams
		expectedField string
	}{
		{
			name:          "name is required",
			params:        domain.CreateProductParams{Price: dec("1")},
			expectedField: "name",
		},
		{
			name: "price must not be negative",
			params: domain.CreateProductParams{
				Name:  "x",
				Price: dec("-1"),
			},
			expectedField: "price",
		},
		{
			name: "pack requires a size",
			params: domain.CreateProductParams{
				Name:   "x",
				Price:  dec("1"),
				IsPack: true,
			},
			expectedField: "packSize",
		},
		{
			name: "pack size must be at least 1",
			params: domain.CreateProductParams{
				Name:     "x",
				Price:    dec("1"),
				IsPack:   true,
				PackSize: intPtr(0),
			},
			expectedField: "packSize",
		},
		{
			name: "pack size without pack flag",
			params: domain.CreateProductParams{
				Name:     "x",
				Price:    dec("1"),
				PackSize: intPtr(6),
			},
			expectedField: "packSize",
		},
		{
			name: "pack discount without pack flag",
			params: domain.CreateProductParams{
				Name:         "x",
				Price:        dec("1"),
				PackDiscount: decPtr("10"),
			},
			expectedField: "packDiscount",
		},
		{
			name: "pack discount over 100",
			params: domain.CreateProductParams{
				Name:         "x",
				Price:        dec("1"),
				IsPack:       true,
				PackSize:     intPtr(6),
				PackDiscount: decPtr("120"),
			},
			expectedField: "packDiscount",
		},
		{
			name: "negative pack discount",
			params: domain.CreateProductParams{
				Name:         "x",
				Price:        dec("1"),
				IsPack:       true,
				PackSize:     intPtr(6),
				PackDiscount: decPtr("-5"),
			},
			expectedField: "packDiscount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)

			_, err := svc.CreateProduct(context.Background(), tt.params)
			require.Error(t, err)
			assert.True(t, domain.IsValidationError(err), "expected a validation error, got %v", err)
			assert.Contains(t, domain.GetValidationFields(err), tt.expectedField)
		})
	}
}

func Test_CreateProduct_PackDiscountZeroIsValid(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateProduct(context.Background(), domain.CreateProductParams{
		Name:         "Alfajor",
		Price:        dec("10"),
		IsPack:       true,
		PackSize:     intPtr(6),
		PackDiscount: decPtr("0"),
	})
	require.NoError(t, err)
	require.NotNil(t, created.PackDiscount)
	assert.True(t, created.PackDiscount.IsZero())
}

func Test_UpdateProduct_FullReplace(t *testing.T) {
	svc, blobs := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, domain.CreateProductParams{
		Name:     "Alfajor",
		Price:    dec("10"),
		IsPack:   true,
		PackSize: intPtr(6),
		Images: []domain.ImageUpload{
			{Filename: "a.jpg", Content: strings.NewReader("a")},
			{Filename: "b.jpg", Content: strings.NewReader("b")},
		},
	})
	require.NoError(t, err)
	require.Len(t, created.Images, 2)

	updated, err := svc.UpdateProduct(ctx, created.ID, domain.UpdateProductParams{
		Name:       "Alfajor Premium",
		Price:      dec("12"),
		KeepImages: created.Images[:1],
		NewImages: []domain.ImageUpload{
			{Filename: "c.webp", ContentType: "image/webp", Content: strings.NewReader("c")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Alfajor Premium", updated.Name)
	assert.True(t, updated.Price.Equal(dec("12")))
	assert.False(t, updated.IsPack, "omitting the pack fields clears them")
	assert.Nil(t, updated.PackSize)
	require.Len(t, updated.Images, 2)
	assert.Equal(t, created.Images[0], updated.Images[0], "kept refs come first, in order")
	assert.True(t, strings.HasSuffix(updated.Images[1], ".webp"))
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	exists, err := blobs.Exists(ctx, updated.Images[1])
	require.NoError(t, err)
	assert.True(t, exists)
}

// Dietary availability flags must be written independently: flipping one must
// never drag the other along.
func Test_UpdateProduct_DietaryFlagsIndependent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, domain.CreateProductParams{
		Name:                "Brownie",
		Price:               dec("4"),
		GlutenFreeAvailable: true,
		SugarFreeAvailable:  false,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(ctx, created.ID, domain.UpdateProductParams{
		Name:                "Brownie",
		Price:               dec("4"),
		GlutenFreeAvailable: false,
		SugarFreeAvailable:  true,
	})
	require.NoError(t, err)

	assert.False(t, updated.GlutenFreeAvailable)
	assert.True(t, updated.SugarFreeAvailable)

	got, err := svc.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.GlutenFreeAvailable)
	assert.True(t, got.SugarFreeAvailable)
}

func Test_UpdateProduct_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateProduct(context.Background(), "missing", domain.UpdateProductParams{
		Name:  "x",
		Price: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func Test_DeleteProduct_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.DeleteProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func Test_ListProducts_NewestFirst(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		created, err := svc.CreateProduct(ctx, productParams(fmt.Sprintf("Producto %d", i)))
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, ids[2], products[0].ID)
	assert.Equal(t, ids[1], products[1].ID)
	assert.Equal(t, ids[0], products[2].ID)
}

func Test_ListProductsByCategory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	inCat := productParams("Galleta")
	inCat.CategoryID = "cat-1"
	_, err := svc.CreateProduct(ctx, inCat)
	require.NoError(t, err)

	other := productParams("Torta")
	other.CategoryID = "cat-2"
	_, err = svc.CreateProduct(ctx, other)
	require.NoError(t, err)

	products, err := svc.ListProductsByCategory(ctx, "cat-1")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Galleta", products[0].Name)

	empty, err := svc.ListProductsByCategory(ctx, "cat-none")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
