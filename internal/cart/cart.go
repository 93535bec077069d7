// Package cart implements the session-local cart aggregate: an ordered,
// key-unique collection of product lines with a derived total.
//
// A Cart is constructed once per session and passed to whatever layer needs
// it; it is not safe for concurrent use and is never shared across sessions.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/lvargas/dulceria/internal/domain"
	"github.com/lvargas/dulceria/internal/pricing"
)

// Cart aggregates lines keyed by (product id, pack, gluten-free, sugar-free).
// Lines hold product snapshots by value, so catalog edits after add-time do
// not move prices of lines already in the cart. The total is a cached
// projection recomputed from the lines after every mutation; the lines are
// always the source of truth.
type Cart struct {
	calc  *pricing.Calculator
	lines []domain.CartLine
	total decimal.Decimal
}

// New creates an empty cart priced by calc.
func New(calc *pricing.Calculator) *Cart {
	return &Cart{calc: calc}
}

// AddLine adds quantity units of the selected variant. If a line with the
// same identity key exists its quantity is incremented; otherwise a new line
// is appended, preserving insertion order. Quantity must be positive: adds
// never decrement.
func (c *Cart) AddLine(p domain.Product, sel domain.Selection, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}

	key := domain.LineKey{ProductID: p.ID, Pack: sel.Pack, GlutenFree: sel.GlutenFree, SugarFree: sel.SugarFree}
	if i := c.index(key); i >= 0 {
		c.lines[i].Quantity += quantity
	} else {
		c.lines = append(c.lines, domain.CartLine{
			Product:    p,
			Quantity:   quantity,
			Pack:       sel.Pack,
			GlutenFree: sel.GlutenFree,
			SugarFree:  sel.SugarFree,
		})
	}

	c.recompute()
	return nil
}

// UpdateQuantity sets the matching line's quantity exactly. A quantity of
// zero or less removes the line; the cart never holds a non-positive
// quantity. Returns ErrLineNotFound if no line matches and the quantity is
// positive.
func (c *Cart) UpdateQuantity(key domain.LineKey, quantity int) error {
	if quantity <= 0 {
		c.RemoveLine(key)
		return nil
	}

	i := c.index(key)
	if i < 0 {
		return domain.ErrLineNotFound
	}

	c.lines[i].Quantity = quantity
	c.recompute()
	return nil
}

// RemoveLine deletes the matching line if present. Idempotent: removing an
// absent line is a no-op, so a stale double-tap in the UI never errors.
func (c *Cart) RemoveLine(key domain.LineKey) {
	i := c.index(key)
	if i < 0 {
		return
	}

	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.recompute()
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
	c.recompute()
}

// LineQuantity returns the quantity of the matching line, or 0 if absent.
func (c *Cart) LineQuantity(key domain.LineKey) int {
	if i := c.index(key); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

// Lines returns a copy of the cart's lines in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Total returns the cart total: the sum over all lines of the per-line-unit
// price times quantity.
func (c *Cart) Total() decimal.Decimal {
	return c.total
}

func (c *Cart) index(key domain.LineKey) int {
	for i, line := range c.lines {
		if line.Key() == key {
			return i
		}
	}
	return -1
}

func (c *Cart) recompute() {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(c.calc.LineSubtotal(line))
	}
	c.total = total
}
