package catalog

import (
	"github.com/esihle/storefront-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

type badgeRule struct {
	badge   enums.ProductBadge
	matches func(Product) bool
}

// badgeRules is evaluated in display priority order.
var badgeRules = []badgeRule{
	{badge: enums.ProductBadgeSale, matches: Product.OnSale},
	{badge: enums.ProductBadgeFeatured, matches: func(p Product) bool { return p.Featured }},
	{badge: enums.ProductBadgeOutOfStock, matches: func(p Product) bool { return !p.InStock }},
}

// Badges returns every badge that applies to p, highest priority first.
func Badges(p Product) []enums.ProductBadge {
	out := []enums.ProductBadge{}
	for _, rule := range badgeRules {
		if rule.matches(p) {
			out = append(out, rule.badge)
		}
	}
	return out
}

// PrimaryBadge is the badge that owns the card's corner slot, if any.
func PrimaryBadge(p Product) (enums.ProductBadge, bool) {
	for _, rule := range badgeRules {
		if rule.matches(p) {
			return rule.badge, true
		}
	}
	return "", false
}

// Savings is OriginalPrice - Price, or zero when the product is not on sale.
func Savings(p Product) decimal.Decimal {
	if p.OriginalPrice == nil {
		return decimal.Zero
	}
	return p.OriginalPrice.Sub(p.Price)
}
