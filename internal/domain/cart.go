package domain

// =============================================================================
// CART DOMAIN TYPES
// =============================================================================

// Selection is the variant choice made when adding a product to the cart:
// unit vs. pack, plus the optional dietary add-ons.
type Selection struct {
	Pack       bool `json:"isPack"`
	GlutenFree bool `json:"isGlutenFree"`
	SugarFree  bool `json:"isSugarFree"`
}

// LineKey identifies a cart line. Two additions with equal keys merge into
// one line; any differing component yields a distinct line, even for the
// same product.
type LineKey struct {
	ProductID  string
	Pack       bool
	GlutenFree bool
	SugarFree  bool
}

// CartLine is one entry in a cart. Product is a snapshot captured at
// add-time: later catalog edits or deletions do not change lines already
// in the cart.
type CartLine struct {
	Product    Product
	Quantity   int
	Pack       bool
	GlutenFree bool
	SugarFree  bool
}

// Key returns the line's identity key.
func (l CartLine) Key() LineKey {
	return LineKey{
		ProductID:  l.Product.ID,
		Pack:       l.Pack,
		GlutenFree: l.GlutenFree,
		SugarFree:  l.SugarFree,
	}
}

// Selection returns the line's variant choice.
func (l CartLine) Selection() Selection {
	return Selection{Pack: l.Pack, GlutenFree: l.GlutenFree, SugarFree: l.SugarFree}
}

// =============================================================================
// CART DOMAIN ERRORS
// =============================================================================

var (
	ErrInvalidQuantity = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
	ErrLineNotFound    = &Error{Code: ENOTFOUND, Message: "Cart line not found"}
)
