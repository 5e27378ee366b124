package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/esihle/storefront-backend/api/middleware"
	"github.com/esihle/storefront-backend/internal/cart"
	"github.com/esihle/storefront-backend/internal/catalog"
	"github.com/esihle/storefront-backend/internal/checkout"
	"github.com/esihle/storefront-backend/pkg/config"
	"github.com/esihle/storefront-backend/pkg/logger"
)

var testWhatsApp = config.WhatsAppConfig{PhoneNumber: "+27 82 000 0000", BaseURL: "https://wa.me"}

func price(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func testCatalog() *catalog.Store {
	original := price("29.99")
	return catalog.NewStore([]catalog.Product{
		{
			ID: "1", Name: "Vitamin C Serum", Description: "Brightening serum",
			Price: price("24.99"), OriginalPrice: &original, Category: "Serums",
			Ingredients: []string{"Vitamin C", "Hyaluronic Acid"}, Size: "30ml",
			InStock: true, Featured: true, Rating: 4.8, Reviews: 120,
		},
		{
			ID: "2", Name: "Shea Butter", Description: "Rich body butter",
			Price: price("18.00"), Category: "Moisturizers",
			Ingredients: []string{"Shea"}, Size: "200ml", InStock: true, Rating: 4.5,
		},
		{
			ID: "3", Name: "Night Cream", Description: "Overnight repair",
			Price: price("32.50"), Category: "Moisturizers",
			Ingredients: []string{"Retinol"}, Size: "50ml", InStock: false, Rating: 4.9,
		},
	})
}

type testEnv struct {
	store    *catalog.Store
	sessions *cart.Sessions
	router   http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logg := logger.Nop()
	store := testCatalog()
	sessions := cart.NewSessions(cart.SessionsParams{Logger: logg, Catalog: store})
	svc, err := checkout.NewService(checkout.ServiceParams{Logger: logg})
	if err != nil {
		t.Fatalf("checkout service: %v", err)
	}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := r.Header.Get("X-Test-Session")
			if sid == "" {
				sid = "sess-1"
			}
			next.ServeHTTP(w, r.WithContext(middleware.WithSessionID(r.Context(), sid)))
		})
	})
	r.Get("/products", CatalogList(store, nil, logg))
	r.Get("/products/{productId}", CatalogProduct(store, logg))
	r.Post("/products/{productId}/inquiry", CatalogInquiry(store, svc, testWhatsApp, logg))
	r.Get("/featured", CatalogFeatured(store))
	r.Get("/categories", CatalogCategories(store))
	r.Get("/cart", CartFetch(sessions, logg))
	r.Delete("/cart", CartClear(sessions, logg))
	r.Post("/cart/items", CartAddItem(sessions, store, logg))
	r.Patch("/cart/items/{productId}", CartUpdateItem(sessions, logg))
	r.Delete("/cart/items/{productId}", CartRemoveItem(sessions, logg))
	r.Post("/cart/checkout", CartCheckout(sessions, svc, testWhatsApp, logg))

	return &testEnv{store: store, sessions: sessions, router: r}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Data T `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response %s: %v", rec.Body.String(), err)
	}
	return envelope.Data
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error %s: %v", rec.Body.String(), err)
	}
	return envelope.Error.Code
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }
