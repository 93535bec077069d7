package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/lvargas/dulceria/internal/domain"
	"github.com/lvargas/dulceria/internal/handler"
)

// maxUploadBytes bounds a product write request (form fields plus images).
const maxUploadBytes = 32 << 20

// ProductHandler serves product CRUD endpoints. Create and update accept
// multipart forms so the admin panel can attach image files in the same
// request.
type ProductHandler struct {
	catalog domain.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(catalog domain.CatalogService, logger *slog.Logger) *ProductHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductHandler{catalog: catalog, logger: logger}
}

// List handles GET /api/products?categoryId=...
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		products []domain.Product
		err      error
	)
	if categoryID := r.URL.Query().Get("categoryId"); categoryID != "" {
		products, err = h.catalog.ListProductsByCategory(r.Context(), categoryID)
	} else {
		products, err = h.catalog.ListProducts(r.Context())
	}
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, products)
}

// Get handles GET /api/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, product)
}

// Create handles POST /api/products (multipart form)
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_product"
	form, err := parseProductForm(r, op)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), domain.CreateProductParams{
		Name:                form.name,
		Description:         form.description,
		Price:               form.price,
		CategoryID:          form.categoryID,
		IsPack:              form.isPack,
		PackSize:            form.packSize,
		PackDiscount:        form.packDiscount,
		GlutenFreeAvailable: form.glutenFreeAvailable,
		SugarFreeAvailable:  form.sugarFreeAvailable,
		Images:              form.images,
	})
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/products/{id} (multipart form)
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_product"
	form, err := parseProductForm(r, op)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	product, err := h.catalog.UpdateProduct(r.Context(), r.PathValue("id"), domain.UpdateProductParams{
		Name:                form.name,
		Description:         form.description,
		Price:               form.price,
		CategoryID:          form.categoryID,
		IsPack:              form.isPack,
		PackSize:            form.packSize,
		PackDiscount:        form.packDiscount,
		GlutenFreeAvailable: form.glutenFreeAvailable,
		SugarFreeAvailable:  form.sugarFreeAvailable,
		KeepImages:          form.keepImages,
		NewImages:           form.images,
	})
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		handler.RespondError(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// productForm is the decoded multipart payload for a product write.
type productForm struct {
	name                string
	description         string
	price               decimal.Decimal
	categoryID          string
	isPack              bool
	packSize            *int
	packDiscount        *decimal.Decimal
	glutenFreeAvailable bool
	sugarFreeAvailable  bool
	keepImages          []string
	images              []domain.ImageUpload
}

func parseProductForm(r *http.Request, op string) (*productForm, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, domain.Invalid(op, "invalid multipart form")
	}

	form := &productForm{
		name:                r.FormValue("name"),
		description:         r.FormValue("description"),
		categoryID:          r.FormValue("categoryId"),
		isPack:              r.FormValue("isPack") == "true",
		glutenFreeAvailable: r.FormValue("glutenFreeAvailable") == "true",
		sugarFreeAvailable:  r.FormValue("sugarFreeAvailable") == "true",
	}

	price, err := decimal.NewFromString(r.FormValue("price"))
	if err != nil {
		return nil, domain.NewValidationError(op, "price", "must be a decimal number")
	}
	form.price = price

	if v := r.FormValue("packSize"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return nil, domain.NewValidationError(op, "packSize", "must be an integer")
		}
		form.packSize = &size
	}

	if v := r.FormValue("packDiscount"); v != "" {
		discount, err := decimal.NewFromString(v)
		if err != nil {
			return nil, domain.NewValidationError(op, "packDiscount", "must be a decimal number")
		}
		form.packDiscount = &discount
	}

	if v := r.FormValue("existingImages"); v != "" {
		if err := json.Unmarshal([]byte(v), &form.keepImages); err != nil {
			return nil, domain.NewValidationError(op, "existingImages", "must be a JSON array of image refs")
		}
	}

	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["images"] {
			file, err := fh.Open()
			if err != nil {
				return nil, domain.Invalid(op, "failed to read uploaded image")
			}
			form.images = append(form.images, domain.ImageUpload{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Content:     file,
			})
		}
	}

	return form, nil
}
