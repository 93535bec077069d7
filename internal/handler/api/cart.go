package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/lvargas/dulceria/internal/cart"
	"github.com/lvargas/dulceria/internal/domain"
	"github.com/lvargas/dulceria/internal/handler"
	"github.com/lvargas/dulceria/internal/order"
	"github.com/lvargas/dulceria/internal/pricing"
)

// CartHandler prices selections and renders checkout messages. Carts are
// never stored server-side: each request builds a fresh aggregate from the
// submitted selections, runs it through the pricing engine, and returns the
// result.
type CartHandler struct {
	catalog domain.CatalogService
	calc    *pricing.Calculator
	phone   string
	logger  *slog.Logger
}

// NewCartHandler creates a CartHandler. phone is the configured WhatsApp
// order number; requests may override it.
func NewCartHandler(catalog domain.CatalogService, calc *pricing.Calculator, phone string, logger *slog.Logger) *CartHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartHandler{catalog: catalog, calc: calc, phone: phone, logger: logger}
}

type cartRequest struct {
	Items []cartRequestItem `json:"items"`
	// Phone optionally overrides the configured order number (checkout only).
	Phone string `json:"phone,omitempty"`
}

type cartRequestItem struct {
	ProductID    string `json:"productId"`
	IsPack       bool   `json:"isPack"`
	IsGlutenFree bool   `json:"isGlutenFree"`
	IsSugarFree  bool   `json:"isSugarFree"`
	// Quantity defaults to 1 when omitted.
	Quantity int `json:"quantity"`
}

type cartLineResponse struct {
	ProductID    string          `json:"productId"`
	Name         string          `json:"name"`
	IsPack       bool            `json:"isPack"`
	IsGlutenFree bool            `json:"isGlutenFree"`
	IsSugarFree  bool            `json:"isSugarFree"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type quoteResponse struct {
	Items []cartLineResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

type checkoutResponse struct {
	quoteResponse
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsappUrl"`
}

// Quote handles POST /api/cart/quote
func (h *CartHandler) Quote(w http.ResponseWriter, r *http.Request) {
	c, err := h.buildCart(r, "api.cart_quote")
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, h.quote(c))
}

// Checkout handles POST /api/cart/checkout
// Returns the quote plus the rendered order message and pre-filled
// WhatsApp link. Checkout of an empty cart is a user-input error.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	const op = "api.cart_checkout"

	var req cartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.RespondError(w, r, domain.Invalid(op, "invalid JSON body"))
		return
	}
	if len(req.Items) == 0 {
		handler.RespondError(w, r, domain.Invalid(op, "cart is empty"))
		return
	}

	phone := req.Phone
	if phone == "" {
		phone = h.phone
	}
	if phone == "" {
		handler.RespondError(w, r, domain.Invalid(op, "no order phone number configured"))
		return
	}

	c, err := h.fillCart(r, req.Items, op)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	message := order.FormatMessage(h.calc, c.Lines(), c.Total())
	handler.RespondJSON(w, http.StatusOK, checkoutResponse{
		quoteResponse: h.quote(c),
		Message:       message,
		WhatsAppURL:   order.WhatsAppLink(phone, message),
	})
}

func (h *CartHandler) buildCart(r *http.Request, op string) (*cart.Cart, error) {
	var req cartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, domain.Invalid(op, "invalid JSON body")
	}
	return h.fillCart(r, req.Items, op)
}

// fillCart replays the submitted selections through a fresh aggregate, so
// identical selections merge and line order follows first appearance.
func (h *CartHandler) fillCart(r *http.Request, items []cartRequestItem, op string) (*cart.Cart, error) {
	c := cart.New(h.calc)
	for _, item := range items {
		product, err := h.catalog.GetProduct(r.Context(), item.ProductID)
		if err != nil {
			return nil, err
		}

		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}

		sel := domain.Selection{Pack: item.IsPack, GlutenFree: item.IsGlutenFree, SugarFree: item.IsSugarFree}
		if err := c.AddLine(*product, sel, quantity); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (h *CartHandler) quote(c *cart.Cart) quoteResponse {
	lines := c.Lines()
	items := make([]cartLineResponse, 0, len(lines))
	for _, line := range lines {
		unitPrice := h.calc.LinePrice(line.Product, line.Selection())
		items = append(items, cartLineResponse{
			ProductID:    line.Product.ID,
			Name:         line.Product.Name,
			IsPack:       line.Pack,
			IsGlutenFree: line.GlutenFree,
			IsSugarFree:  line.SugarFree,
			Quantity:     line.Quantity,
			UnitPrice:    unitPrice,
			Subtotal:     unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
	}
	return quoteResponse{Items: items, Total: c.Total()}
}
