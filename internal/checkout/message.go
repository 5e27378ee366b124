package checkout

import (
	"fmt"
	"strings"

	"github.com/esihle/storefront-backend/internal/cart"
	"github.com/esihle/storefront-backend/internal/catalog"
	"github.com/shopspring/decimal"
)

// DefaultBrandName is the shop name written into checkout messages.
const DefaultBrandName = "Esihle Skin Hair"

// FormatCartMessage renders the checkout summary for the default brand.
func FormatCartMessage(items []cart.Item, total decimal.Decimal) string {
	return formatCartMessage(DefaultBrandName, items, total)
}

func formatCartMessage(brand string, items []cart.Item, total decimal.Decimal) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("• %s (%s) - Quantity: %d - $%s",
			item.Name, item.Size, item.Quantity, item.LineTotal().StringFixed(2)))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi! I would like to purchase the following items from %s:\n\n", brand)
	b.WriteString(strings.Join(lines, "\n"))
	fmt.Fprintf(&b, "\n\nTotal Amount: $%s\n\n", total.StringFixed(2))
	b.WriteString("Please let me know how to proceed with the payment and delivery.")
	return b.String()
}

// FormatInquiryMessage renders the single-product inquiry sentence. The price
// is written without padding, so 125.00 reads as 125.
func FormatInquiryMessage(product catalog.Product) string {
	return fmt.Sprintf("Hi! I'm interested in purchasing the %s (%s) for $%s. Could you please provide more information?",
		product.Name, product.Size, product.Price.String())
}
