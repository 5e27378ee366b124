package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

func fixtureProducts(t *testing.T) []Product {
	t.Helper()
	products, err := FixtureSource{}.Products(context.Background())
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return products
}

func price(t *testing.T, raw string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(raw)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", raw, err)
	}
	return d
}

func ids(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func testProduct(id, name string, amount string) Product {
	return Product{
		ID:          id,
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString(amount),
		Category:    "Serums",
		Size:        "30ml",
		InStock:     true,
	}
}
