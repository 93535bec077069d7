// Package order renders a finalized cart as the outbound WhatsApp order
// message. Formatting is pure and deterministic: the same lines in the same
// order always produce byte-identical text.
package order

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lvargas/dulceria/internal/domain"
	"github.com/lvargas/dulceria/internal/pricing"
)

// FormatMessage renders the order text for the given lines, in their stored
// order. Per-unit prices are re-derived through the calculator rather than
// trusted from any cached state, so the message always reflects the final
// cart at the moment of checkout.
func FormatMessage(calc *pricing.Calculator, lines []domain.CartLine, total decimal.Decimal) string {
	var b strings.Builder
	b.WriteString("🛒 *Nuevo Pedido*\n\n")

	for i, line := range lines {
		unitPrice := calc.LinePrice(line.Product, line.Selection())
		subtotal := unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))

		fmt.Fprintf(&b, "%d. *%s%s*\n", i+1, line.Product.Name, qualifiers(line))
		fmt.Fprintf(&b, "   Cantidad: %d\n", line.Quantity)
		fmt.Fprintf(&b, "   Precio unitario: $%s\n", unitPrice.StringFixed(2))
		fmt.Fprintf(&b, "   Subtotal: $%s\n\n", subtotal.StringFixed(2))
	}

	fmt.Fprintf(&b, "💰 *Total: $%s*", total.StringFixed(2))
	return b.String()
}

// WhatsAppLink builds the pre-filled message link for the given phone number
// (digits only, with country code). The message is percent-encoded for the
// URL query context.
func WhatsAppLink(phone, message string) string {
	// url.QueryEscape encodes spaces as "+", which WhatsApp renders
	// literally; the text parameter needs %20.
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, encoded)
}

func qualifiers(line domain.CartLine) string {
	var b strings.Builder
	if line.Pack {
		b.WriteString(" (Pack)")
	}
	if line.GlutenFree {
		b.WriteString(" (Sin Gluten)")
	}
	if line.SugarFree {
		b.WriteString(" (Sin Azúcar)")
	}
	return b.String()
}
