package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/esihle/storefront-backend/api/responses"
	"github.com/esihle/storefront-backend/api/validators"
	"github.com/esihle/storefront-backend/internal/catalog"
	"github.com/esihle/storefront-backend/internal/checkout"
	"github.com/esihle/storefront-backend/pkg/config"
	"github.com/esihle/storefront-backend/pkg/enums"
	pkgerrors "github.com/esihle/storefront-backend/pkg/errors"
	"github.com/esihle/storefront-backend/pkg/logger"
	"github.com/esihle/storefront-backend/pkg/metrics"
)

const (
	maxSearchLen   = 100
	maxCategoryLen = 64
)

// CatalogList runs the product query engine over the catalog.
// Unknown sort keys fall back to the default ordering.
func CatalogList(store *catalog.Store, m *metrics.StorefrontMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := parseQueryConfig(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		results := catalog.Query(store.All(), cfg)
		m.ObserveQuery(cfg.SortKey.String(), len(results))

		responses.WriteSuccess(w, productListView{
			Products:      newProductViews(results),
			Total:         len(results),
			ActiveFilters: catalog.ActiveFilterCount(cfg),
			Category:      cfg.Category,
			Sort:          cfg.SortKey,
		})
	}
}

func parseQueryConfig(r *http.Request) (catalog.QueryConfig, error) {
	cfg := catalog.DefaultQueryConfig()

	cfg.SearchTerm = validators.QueryString(r, "q", maxSearchLen)
	if category := validators.QueryString(r, "category", maxCategoryLen); category != "" {
		cfg.Category = category
	}

	minPrice, err := validators.ParseQueryDecimal(r, "min_price", catalog.DefaultMinPrice)
	if err != nil {
		return cfg, err
	}
	maxPrice, err := validators.ParseQueryDecimal(r, "max_price", catalog.DefaultMaxPrice)
	if err != nil {
		return cfg, err
	}
	cfg.PriceRange = catalog.PriceRange{Min: minPrice, Max: maxPrice}

	if key, err := enums.ParseSortKey(r.URL.Query().Get("sort")); err == nil {
		cfg.SortKey = key
	}
	return cfg, nil
}

func CatalogProduct(store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := productFromPath(store, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newProductView(product))
	}
}

func CatalogFeatured(store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, newProductViews(store.Featured()))
	}
}

func CatalogCategories(store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, categoriesView{Categories: store.Categories()})
	}
}

// CatalogInquiry hands a single-product question off to WhatsApp.
func CatalogInquiry(store *catalog.Store, svc checkout.Service, wa config.WhatsAppConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		product, err := productFromPath(store, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sink := newLinkSink(wa, logg)
		message, err := svc.Inquire(r.Context(), product, sink)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, handoffView{Message: message, WhatsAppURL: sink.url})
	}
}

func productFromPath(store *catalog.Store, r *http.Request) (catalog.Product, error) {
	id := strings.TrimSpace(chi.URLParam(r, "productId"))
	if id == "" {
		return catalog.Product{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, ok := store.Get(id)
	if !ok {
		return catalog.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}
