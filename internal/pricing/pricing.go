package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/lvargas/dulceria/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Calculator computes per-line-unit prices from a product snapshot and a
// variant selection. It is pure and total: every well-formed input yields a
// price, never an error, so checkout can never fail inside pricing.
type Calculator struct {
	glutenFreeUpcharge decimal.Decimal
	sugarFreeUpcharge  decimal.Decimal
}

// NewCalculator creates a Calculator with the given fixed dietary up-charges.
func NewCalculator(glutenFreeUpcharge, sugarFreeUpcharge decimal.Decimal) *Calculator {
	return &Calculator{
		glutenFreeUpcharge: glutenFreeUpcharge,
		sugarFreeUpcharge:  sugarFreeUpcharge,
	}
}

// LinePrice computes the per-line-unit price. The order of operations is
// fixed: unit base, pack multiplier, pack discount, then dietary up-charges.
//
// The pack price is per pack (base price times pack size), so a quantity on
// the line multiplies whole packs. A pack selection on a product with no
// PackSize degrades to the unit price rather than failing; the write-time
// validator keeps such records out of the catalog in the first place.
// Requesting a dietary variant the product does not offer is a no-op.
func (c *Calculator) LinePrice(p domain.Product, sel domain.Selection) decimal.Decimal {
	base := p.Price

	if sel.Pack && p.IsPack && p.PackSize != nil {
		base = p.Price.Mul(decimal.NewFromInt(int64(*p.PackSize)))
		if p.PackDiscount != nil {
			base = base.Mul(hundred.Sub(*p.PackDiscount)).Div(hundred)
		}
	}

	if sel.GlutenFree && p.GlutenFreeAvailable {
		base = base.Add(c.glutenFreeUpcharge)
	}
	if sel.SugarFree && p.SugarFreeAvailable {
		base = base.Add(c.sugarFreeUpcharge)
	}

	return base
}

// LineSubtotal computes a line's contribution to the cart total:
// per-line-unit price times quantity.
func (c *Calculator) LineSubtotal(line domain.CartLine) decimal.Decimal {
	return c.LinePrice(line.Product, line.Selection()).Mul(decimal.NewFromInt(int64(line.Quantity)))
}
