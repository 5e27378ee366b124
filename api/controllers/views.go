package controllers

import (
	"github.com/esihle/storefront-backend/internal/cart"
	"github.com/esihle/storefront-backend/internal/catalog"
	"github.com/esihle/storefront-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

type productView struct {
	catalog.Product
	Badges       []enums.ProductBadge `json:"badges"`
	PrimaryBadge enums.ProductBadge   `json:"primary_badge,omitempty"`
	Savings      decimal.Decimal      `json:"savings"`
}

func newProductView(p catalog.Product) productView {
	view := productView{
		Product: p,
		Badges:  catalog.Badges(p),
		Savings: catalog.Savings(p),
	}
	if badge, ok := catalog.PrimaryBadge(p); ok {
		view.PrimaryBadge = badge
	}
	return view
}

func newProductViews(products []catalog.Product) []productView {
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, newProductView(p))
	}
	return out
}

type productListView struct {
	Products      []productView `json:"products"`
	Total         int           `json:"total"`
	ActiveFilters int           `json:"active_filters"`
	Category      string        `json:"category"`
	Sort          enums.SortKey `json:"sort"`
}

type categoriesView struct {
	Categories []string `json:"categories"`
}

type cartItemView struct {
	catalog.Product
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type cartView struct {
	Items      []cartItemView  `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	IsEmpty    bool            `json:"is_empty"`
}

func newCartView(s cart.Snapshot) cartView {
	items := make([]cartItemView, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, cartItemView{
			Product:   item.Product,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal(),
		})
	}
	return cartView{
		Items:      items,
		TotalItems: s.TotalItems,
		TotalPrice: s.TotalPrice,
		IsEmpty:    len(items) == 0,
	}
}

type handoffView struct {
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsapp_url"`
}
