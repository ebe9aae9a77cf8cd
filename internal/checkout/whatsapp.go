package checkout

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/cocobloom/storefront-backend/internal/cart"
	"github.com/cocobloom/storefront-backend/internal/pricing"
)

// BuildWhatsAppMessage renders the COD order summary the storefront sends
// to the shop's WhatsApp line.
func BuildWhatsAppMessage(items []cart.LineItem, breakdown pricing.Breakdown, customer CustomerInfo) string {
	lines := []string{
		"Hello, I'd like to place a COD order.",
		"Items:",
	}
	for _, item := range items {
		vars := ""
		if len(item.VariantSelections) > 0 {
			pairs := make([]string, 0, len(item.VariantSelections))
			for k, v := range item.VariantSelections {
				pairs = append(pairs, k+":"+v)
			}
			sort.Strings(pairs)
			vars = " (" + strings.Join(pairs, ", ") + ")"
		}
		lines = append(lines, fmt.Sprintf("- %s%s x%d = %d MAD", item.Name, vars, item.Qty, item.UnitPrice*item.Qty))
	}

	lines = append(lines, fmt.Sprintf("Subtotal: %d MAD", breakdown.Subtotal))
	if breakdown.Discount > 0 {
		lines = append(lines, fmt.Sprintf("Discount: -%d MAD", breakdown.Discount))
	}
	lines = append(lines,
		fmt.Sprintf("Shipping: %d MAD", breakdown.Shipping),
		fmt.Sprintf("VAT: %d MAD", breakdown.TaxIncluded),
		fmt.Sprintf("Total: %d MAD", breakdown.Total),
		"Name: "+customer.Name,
		"Phone: "+customer.Phone,
		"City: "+customer.City,
		"Address: "+customer.Address,
		// The notes line is always present, even when empty.
		"Notes: "+customer.Notes,
	)
	return strings.Join(lines, "\n")
}

// BuildWhatsAppURL wraps the message in a wa.me deep link.
func BuildWhatsAppURL(number, message string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, encoded)
}
