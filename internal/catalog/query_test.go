package catalog

import (
	"testing"

	"github.com/esihle/storefront-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wideOpen() QueryConfig {
	cfg := DefaultQueryConfig()
	cfg.PriceRange = PriceRange{Min: decimal.Zero, Max: decimal.NewFromInt(100000)}
	return cfg
}

func TestQueryPriceRangeAscending(t *testing.T) {
	cfg := DefaultQueryConfig()
	cfg.PriceRange = PriceRange{Min: decimal.NewFromInt(50), Max: decimal.NewFromInt(100)}
	cfg.SortKey = enums.SortKeyPriceLow

	got := Query(fixtureProducts(t), cfg)

	require.Len(t, got, 2)
	assert.True(t, got[0].Price.Equal(price(t, "65.00")), "first price %s", got[0].Price)
	assert.True(t, got[1].Price.Equal(price(t, "89.99")), "second price %s", got[1].Price)
}

func TestQueryUnfilteredIsSortedPermutation(t *testing.T) {
	products := fixtureProducts(t)
	got := Query(products, wideOpen())

	require.Len(t, got, len(products))
	assert.ElementsMatch(t, ids(products), ids(got))
	assert.Equal(t, []string{
		"Advanced Vitamin C Serum",
		"Daily Defense Moisturizer SPF 30",
		"Gentle Purifying Cleanser",
		"Hydra-Repair Night Cream",
	}, names(got))
}

func TestQueryIsIdempotentAndLeavesInputAlone(t *testing.T) {
	products := fixtureProducts(t)
	before := ids(products)
	cfg := wideOpen()
	cfg.SortKey = enums.SortKeyPriceHigh

	first := Query(products, cfg)
	second := Query(products, cfg)

	assert.Equal(t, ids(first), ids(second))
	assert.Equal(t, before, ids(products))
}

func TestQuerySortKeys(t *testing.T) {
	tests := []struct {
		key  enums.SortKey
		want []string
	}{
		{key: enums.SortKeyName, want: []string{"1", "4", "3", "2"}},
		{key: enums.SortKeyPriceLow, want: []string{"3", "4", "1", "2"}},
		{key: enums.SortKeyPriceHigh, want: []string{"2", "1", "4", "3"}},
		{key: enums.SortKeyRating, want: []string{"2", "1", "3", "4"}},
		{key: enums.SortKeyFeatured, want: []string{"1", "2", "4", "3"}},
		{key: "unknown", want: []string{"1", "4", "3", "2"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			cfg := wideOpen()
			cfg.SortKey = tt.key
			assert.Equal(t, tt.want, ids(Query(fixtureProducts(t), cfg)))
		})
	}
}

func TestQueryFeaturedIsStablePartition(t *testing.T) {
	products := []Product{
		testProduct("a", "Zeta", "10"),
		testProduct("b", "Alpha", "10"),
		testProduct("c", "Mid", "10"),
		testProduct("d", "Beta", "10"),
		testProduct("e", "Omega", "10"),
	}
	products[1].Featured = true
	products[3].Featured = true

	cfg := wideOpen()
	cfg.SortKey = enums.SortKeyFeatured
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, ids(Query(products, cfg)))
}

func TestQueryRatingTiesKeepCatalogOrder(t *testing.T) {
	products := []Product{
		testProduct("a", "A", "10"),
		testProduct("b", "B", "10"),
		testProduct("c", "C", "10"),
	}
	products[0].Rating = 4.5
	products[1].Rating = 4.9
	products[2].Rating = 4.5

	cfg := wideOpen()
	cfg.SortKey = enums.SortKeyRating
	assert.Equal(t, []string{"b", "a", "c"}, ids(Query(products, cfg)))
}

func TestQueryNameSortIsLocaleAware(t *testing.T) {
	products := []Product{
		testProduct("1", "cherry", "10"),
		testProduct("2", "Banana", "10"),
		testProduct("3", "apple", "10"),
	}
	assert.Equal(t, []string{"apple", "Banana", "cherry"}, names(Query(products, wideOpen())))
}

func TestQueryCategoryIsCaseSensitive(t *testing.T) {
	cfg := wideOpen()
	cfg.Category = "Moisturizers"
	assert.Equal(t, []string{"4", "2"}, ids(Query(fixtureProducts(t), cfg)))

	cfg.Category = "moisturizers"
	assert.Empty(t, Query(fixtureProducts(t), cfg))
}

func TestQuerySearch(t *testing.T) {
	tests := []struct {
		term string
		want []string
	}{
		{term: "GENTLE", want: []string{"3"}},
		{term: "sun protection", want: []string{"4"}},
		{term: "hyaluronic", want: []string{"1", "4"}},
		{term: "retinol", want: []string{"2"}},
		{term: "nothing-matches", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			cfg := wideOpen()
			cfg.SearchTerm = tt.term
			assert.Equal(t, tt.want, ids(Query(fixtureProducts(t), cfg)))
		})
	}
}

func TestQueryFiltersCompose(t *testing.T) {
	cfg := wideOpen()
	cfg.Category = "Moisturizers"
	cfg.SearchTerm = "vitamin e"
	cfg.PriceRange = PriceRange{Min: decimal.NewFromInt(60), Max: decimal.NewFromInt(70)}
	assert.Equal(t, []string{"4"}, ids(Query(fixtureProducts(t), cfg)))
}

func TestQueryInvertedPriceRangeIsEmpty(t *testing.T) {
	cfg := wideOpen()
	cfg.PriceRange = PriceRange{Min: decimal.NewFromInt(100), Max: decimal.NewFromInt(50)}
	got := Query(fixtureProducts(t), cfg)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPriceRangeIsInclusive(t *testing.T) {
	r := PriceRange{Min: decimal.NewFromInt(45), Max: decimal.NewFromInt(125)}
	assert.True(t, r.Contains(decimal.NewFromInt(45)))
	assert.True(t, r.Contains(decimal.NewFromInt(125)))
	assert.False(t, r.Contains(decimal.RequireFromString("125.01")))
}

func TestDefaultQueryDropsProductsAbovePriceCeiling(t *testing.T) {
	products := append(fixtureProducts(t), testProduct("5", "Luxury Elixir", "250"))
	got := Query(products, DefaultQueryConfig())
	assert.NotContains(t, ids(got), "5")
	assert.Len(t, got, 4)
}

func TestActiveFilterCount(t *testing.T) {
	cfg := DefaultQueryConfig()
	assert.Equal(t, 0, ActiveFilterCount(cfg))

	cfg.SearchTerm = "serum"
	cfg.Category = "Serums"
	assert.Equal(t, 2, ActiveFilterCount(cfg))

	cfg.PriceRange.Max = decimal.NewFromInt(150)
	cfg.SortKey = enums.SortKeyRating
	assert.Equal(t, 4, ActiveFilterCount(cfg))

	widened := DefaultQueryConfig()
	widened.PriceRange.Max = decimal.NewFromInt(500)
	assert.Equal(t, 0, ActiveFilterCount(widened))
}

func names(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}
