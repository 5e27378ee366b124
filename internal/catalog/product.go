// Package catalog holds the storefront's product list and the pure query
// engine that filters, searches and sorts it.
package catalog

import "github.com/shopspring/decimal"

// Product is a sellable catalog entry. Identity is ID.
type Product struct {
	ID              string           `json:"id" validate:"required"`
	Name            string           `json:"name" validate:"required"`
	Description     string           `json:"description" validate:"required"`
	LongDescription string           `json:"long_description"`
	Image           string           `json:"image"`
	Price           decimal.Decimal  `json:"price"`
	OriginalPrice   *decimal.Decimal `json:"original_price,omitempty"`
	Category        string           `json:"category" validate:"required,ne=All"`
	Ingredients     []string         `json:"ingredients" validate:"dive,required"`
	Benefits        []string         `json:"benefits" validate:"dive,required"`
	Usage           string           `json:"usage"`
	Size            string           `json:"size" validate:"required"`
	InStock         bool             `json:"in_stock"`
	Featured        bool             `json:"featured"`
	Rating          float64          `json:"rating" validate:"gte=0,lte=5"`
	Reviews         int              `json:"reviews" validate:"gte=0"`
}

// OnSale reports whether the product carries a strike-through original price.
func (p Product) OnSale() bool {
	return p.OriginalPrice != nil
}

// Clone returns a copy that shares no slices or pointers with p.
func (p Product) Clone() Product {
	out := p
	if p.OriginalPrice != nil {
		op := *p.OriginalPrice
		out.OriginalPrice = &op
	}
	if p.Ingredients != nil {
		out.Ingredients = append([]string(nil), p.Ingredients...)
	}
	if p.Benefits != nil {
		out.Benefits = append([]string(nil), p.Benefits...)
	}
	return out
}
