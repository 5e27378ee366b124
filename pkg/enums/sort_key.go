package enums

import (
	"fmt"
	"strings"
)

// SortKey selects the ordering applied to catalog query results.
type SortKey string

const (
	SortKeyName      SortKey = "name"
	SortKeyPriceLow  SortKey = "price-low"
	SortKeyPriceHigh SortKey = "price-high"
	SortKeyRating    SortKey = "rating"
	SortKeyFeatured  SortKey = "featured"
)

// DefaultSortKey is applied when no sort is requested.
const DefaultSortKey = SortKeyName

var validSortKeys = []SortKey{
	SortKeyName,
	SortKeyPriceLow,
	SortKeyPriceHigh,
	SortKeyRating,
	SortKeyFeatured,
}

// sortKeyAliases maps labels used by older storefront builds onto the closed set.
var sortKeyAliases = map[string]SortKey{
	"price-ascending":   SortKeyPriceLow,
	"price-descending":  SortKeyPriceHigh,
	"rating-descending": SortKeyRating,
	"featured-first":    SortKeyFeatured,
	"newest":            SortKeyName,
}

// String implements fmt.Stringer.
func (s SortKey) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortKey.
func (s SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == s {
			return true
		}
	}
	return false
}

// SortKeys lists every supported key in display order.
func SortKeys() []SortKey {
	out := make([]SortKey, len(validSortKeys))
	copy(out, validSortKeys)
	return out
}

// ParseSortKey converts raw input into a SortKey. Empty input yields the default.
func ParseSortKey(value string) (SortKey, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return DefaultSortKey, nil
	}
	for _, candidate := range validSortKeys {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	if alias, ok := sortKeyAliases[normalized]; ok {
		return alias, nil
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}
