package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/esihle/storefront-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CategoryAll disables the category filter.
const CategoryAll = "All"

var (
	DefaultMinPrice = decimal.Zero
	DefaultMaxPrice = decimal.NewFromInt(200)
)

// PriceRange is an inclusive [Min, Max] bound. Min > Max matches nothing.
type PriceRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// DefaultPriceRange is the slider's full span.
func DefaultPriceRange() PriceRange {
	return PriceRange{Min: DefaultMinPrice, Max: DefaultMaxPrice}
}

// Contains reports Min <= price <= Max.
func (r PriceRange) Contains(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(r.Min) && price.LessThanOrEqual(r.Max)
}

// QueryConfig is the combined search, filter and sort selection.
type QueryConfig struct {
	SearchTerm string
	Category   string
	PriceRange PriceRange
	SortKey    enums.SortKey
}

// DefaultQueryConfig matches an untouched search panel.
func DefaultQueryConfig() QueryConfig {
	return QueryConfig{
		Category:   CategoryAll,
		PriceRange: DefaultPriceRange(),
		SortKey:    enums.DefaultSortKey,
	}
}

// Query filters by category, then search term, then price, and finally
// stable-sorts the survivors. The input slice is never modified.
func Query(products []Product, cfg QueryConfig) []Product {
	term := strings.ToLower(cfg.SearchTerm)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if cfg.Category != CategoryAll && p.Category != cfg.Category {
			continue
		}
		if term != "" && !matchesSearch(p, term) {
			continue
		}
		if !cfg.PriceRange.Contains(p.Price) {
			continue
		}
		out = append(out, p)
	}

	slices.SortStableFunc(out, comparator(cfg.SortKey))
	return out
}

func matchesSearch(p Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	for _, ingredient := range p.Ingredients {
		if strings.Contains(strings.ToLower(ingredient), term) {
			return true
		}
	}
	return false
}

func comparator(key enums.SortKey) func(a, b Product) int {
	switch key {
	case enums.SortKeyPriceLow:
		return func(a, b Product) int { return a.Price.Cmp(b.Price) }
	case enums.SortKeyPriceHigh:
		return func(a, b Product) int { return b.Price.Cmp(a.Price) }
	case enums.SortKeyRating:
		return func(a, b Product) int { return cmp.Compare(b.Rating, a.Rating) }
	case enums.SortKeyFeatured:
		// featured group first; the stable sort keeps catalog order inside each group
		return func(a, b Product) int {
			switch {
			case a.Featured == b.Featured:
				return 0
			case a.Featured:
				return -1
			default:
				return 1
			}
		}
	}
	// collators keep scratch buffers, so each query gets its own
	col := collate.New(language.English)
	return func(a, b Product) int { return col.CompareString(a.Name, b.Name) }
}

// ActiveFilterCount counts the knobs that differ from DefaultQueryConfig.
func ActiveFilterCount(cfg QueryConfig) int {
	count := 0
	if cfg.SearchTerm != "" {
		count++
	}
	if cfg.Category != CategoryAll {
		count++
	}
	if cfg.PriceRange.Min.GreaterThan(DefaultMinPrice) || cfg.PriceRange.Max.LessThan(DefaultMaxPrice) {
		count++
	}
	if cfg.SortKey != enums.DefaultSortKey && cfg.SortKey != "" {
		count++
	}
	return count
}
