package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvargas/dulceria/internal/domain"
)

// buildProductForm encodes fields and image files as the multipart body the
// admin panel submits.
func buildProductForm(t *testing.T, fields map[string]string, images map[string][]byte) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, mw.WriteField(name, value))
	}
	for filename, content := range images {
		part, err := mw.CreateFormFile("images", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func Test_ProductList(t *testing.T) {
	catalog := &mockCatalogService{
		ListProductsFn: func(_ context.Context) ([]domain.Product, error) {
			return []domain.Product{{ID: "p1", Name: "Alfajor", Price: dec("3")}}, nil
		},
	}
	h := NewProductHandler(catalog, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()
	h.List(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got []domain.Product
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
}

func Test_ProductList_FiltersByCategory(t *testing.T) {
	var gotCategoryID string
	catalog := &mockCatalogService{
		ListByCategoryFn: func(_ context.Context, categoryID string) ([]domain.Product, error) {
			gotCategoryID = categoryID
			return nil, nil
		},
	}
	h := NewProductHandler(catalog, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products?categoryId=cat-1", nil)
	w := httptest.NewRecorder()
	h.List(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cat-1", gotCategoryID)
}

func Test_ProductGet_NotFound(t *testing.T) {
	catalog := &mockCatalogService{
		GetProductFn: func(_ context.Context, id string) (*domain.Product, error) {
			return nil, domain.ErrProductNotFound
		},
	}
	h := NewProductHandler(catalog, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products/missing", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()
	h.Get(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func Test_ProductCreate(t *testing.T) {
	var gotParams domain.CreateProductParams
	catalog := &mockCatalogService{
		CreateProductFn: func(_ context.Context, params domain.CreateProductParams) (*domain.Product, error) {
			gotParams = params
			return &domain.Product{ID: "p1", Name: params.Name, Price: params.Price}, nil
		},
	}
	h := NewProductHandler(catalog, nil)

	body, contentType := buildProductForm(t, map[string]string{
		"name":                "Alfajor",
		"description":         "Relleno de dulce de leche",
		"price":               "10.50",
		"categoryId":          "cat-1",
		"isPack":              "true",
		"packSize":            "6",
		"packDiscount":        "10",
		"glutenFreeAvailable": "true",
	}, map[string][]byte{
		"alfajor.jpg": []byte("jpeg-bytes"),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/products", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	h.Create(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Equal(t, "Alfajor", gotParams.Name)
	assert.True(t, gotParams.Price.Equal(dec("10.50")))
	assert.Equal(t, "cat-1", gotParams.CategoryID)
	assert.True(t, gotParams.IsPack)
	require.NotNil(t, gotParams.PackSize)
	assert.Equal(t, 6, *gotParams.PackSize)
	require.NotNil(t, gotParams.PackDiscount)
	assert.True(t, gotParams.PackDiscount.Equal(dec("10")))
	assert.True(t, gotParams.GlutenFreeAvailable)
	assert.False(t, gotParams.SugarFreeAvailable)
	require.Len(t, gotParams.Images, 1)
	assert.Equal(t, "alfajor.jpg", gotParams.Images[0].Filename)
}

func Test_ProductCreate_BadPrice(t *testing.T) {
	h := NewProductHandler(&mockCatalogService{}, nil)

	body, contentType := buildProductForm(t, map[string]string{
		"name":  "Alfajor",
		"price": "diez",
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/products", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	h.Create(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Contains(t, resp.Fields, "price")
}

func Test_ProductUpdate_KeepsAndAddsImages(t *testing.T) {
	var gotID string
	var gotParams domain.UpdateProductParams
	catalog := &mockCatalogService{
		UpdateProductFn: func(_ context.Context, id string, params domain.UpdateProductParams) (*domain.Product, error) {
			gotID = id
			gotParams = params
			return &domain.Product{ID: id, Name: params.Name, Price: params.Price}, nil
		},
	}
	h := NewProductHandler(catalog, nil)

	body, contentType := buildProductForm(t, map[string]string{
		"name":           "Alfajor",
		"price":          "10",
		"existingImages": `["products/a.jpg","products/b.jpg"]`,
	}, map[string][]byte{
		"c.png": []byte("png-bytes"),
	})

	req := httptest.NewRequest(http.MethodPut, "/api/products/p1", body)
	req.Header.Set("Content-Type", contentType)
	req.SetPathValue("id", "p1")
	w := httptest.NewRecorder()
	h.Update(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "p1", gotID)
	assert.Equal(t, []string{"products/a.jpg", "products/b.jpg"}, gotParams.KeepImages)
	require.Len(t, gotParams.NewImages, 1)
	assert.Equal(t, "c.png", gotParams.NewImages[0].Filename)
}

func Test_ProductDelete(t *testing.T) {
	var deletedID string
	catalog := &mockCatalogService{
		DeleteProductFn: func(_ context.Context, id string) error {
			deletedID = id
			return nil
		},
	}
	h := NewProductHandler(catalog, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/products/p1", nil)
	req.SetPathValue("id", "p1")
	w := httptest.NewRecorder()
	h.Delete(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "p1", deletedID)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}
