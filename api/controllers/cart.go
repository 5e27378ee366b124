package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/esihle/storefront-backend/api/middleware"
	"github.com/esihle/storefront-backend/api/responses"
	"github.com/esihle/storefront-backend/api/validators"
	"github.com/esihle/storefront-backend/internal/cart"
	"github.com/esihle/storefront-backend/internal/catalog"
	"github.com/esihle/storefront-backend/internal/checkout"
	"github.com/esihle/storefront-backend/pkg/config"
	pkgerrors "github.com/esihle/storefront-backend/pkg/errors"
	"github.com/esihle/storefront-backend/pkg/logger"
)

// CartSessions resolves the cart bound to a session id.
type CartSessions interface {
	Cart(ctx context.Context, sessionID string) *cart.Store
}

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

func CartFetch(sessions CartSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := sessionCart(sessions, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(c.Snapshot()))
	}
}

// CartAddItem adds one unit of an in-stock catalog product.
func CartAddItem(sessions CartSessions, store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := sessionCart(sessions, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, ok := store.Get(strings.TrimSpace(payload.ProductID))
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		if !product.InStock {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeStateConflict, "product is out of stock").
					WithDetails(map[string]any{"product_id": product.ID}))
			return
		}

		c.AddItem(product)
		responses.WriteSuccess(w, newCartView(c.Snapshot()))
	}
}

// CartUpdateItem sets a line's quantity. Zero or less removes the line and
// unknown ids leave the cart unchanged.
func CartUpdateItem(sessions CartSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := sessionCart(sessions, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c.UpdateQuantity(productIDParam(r), *payload.Quantity)
		responses.WriteSuccess(w, newCartView(c.Snapshot()))
	}
}

func CartRemoveItem(sessions CartSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := sessionCart(sessions, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		c.RemoveItem(productIDParam(r))
		responses.WriteSuccess(w, newCartView(c.Snapshot()))
	}
}

func CartClear(sessions CartSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := sessionCart(sessions, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		c.Clear()
		responses.WriteSuccess(w, newCartView(c.Snapshot()))
	}
}

// CartCheckout sends the cart summary to WhatsApp and empties the cart.
func CartCheckout(sessions CartSessions, svc checkout.Service, wa config.WhatsAppConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		c, err := sessionCart(sessions, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sink := newLinkSink(wa, logg)
		message, err := svc.Checkout(r.Context(), c, sink)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, handoffView{Message: message, WhatsAppURL: sink.url})
	}
}

func sessionCart(sessions CartSessions, r *http.Request) (*cart.Store, error) {
	if sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart sessions unavailable")
	}
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart session missing")
	}
	return sessions.Cart(r.Context(), sessionID), nil
}

func productIDParam(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "productId"))
}
