package enums

import "fmt"

// ProductBadge is a display tag rendered on a product card.
type ProductBadge string

const (
	ProductBadgeSale       ProductBadge = "sale"
	ProductBadgeFeatured   ProductBadge = "featured"
	ProductBadgeOutOfStock ProductBadge = "out_of_stock"
)

// validProductBadges is ordered by display priority.
var validProductBadges = []ProductBadge{
	ProductBadgeSale,
	ProductBadgeFeatured,
	ProductBadgeOutOfStock,
}

// String implements fmt.Stringer.
func (b ProductBadge) String() string {
	return string(b)
}

// Label returns the upper-case text shown on the card.
func (b ProductBadge) Label() string {
	switch b {
	case ProductBadgeSale:
		return "SALE"
	case ProductBadgeFeatured:
		return "FEATURED"
	case ProductBadgeOutOfStock:
		return "OUT OF STOCK"
	}
	return ""
}

// IsValid reports whether the value is a known ProductBadge.
func (b ProductBadge) IsValid() bool {
	for _, candidate := range validProductBadges {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseProductBadge converts raw input into a ProductBadge.
func ParseProductBadge(value string) (ProductBadge, error) {
	for _, candidate := range validProductBadges {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product badge %q", value)
}
