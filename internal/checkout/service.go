package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/esihle/storefront-backend/internal/cart"
	"github.com/esihle/storefront-backend/internal/catalog"
	pkgerrors "github.com/esihle/storefront-backend/pkg/errors"
	"github.com/esihle/storefront-backend/pkg/logger"
	"github.com/esihle/storefront-backend/pkg/metrics"
)

// ErrEmptyCart is returned when checkout is attempted with nothing in the cart.
var ErrEmptyCart = pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")

// Cart is the part of the cart store checkout needs.
type Cart interface {
	Snapshot() cart.Snapshot
	Clear()
}

// Service runs the messaging handoff for carts and single products.
type Service interface {
	// Checkout sends the cart summary to sink once and then clears the cart,
	// whatever the sink did. It returns the message that was sent.
	Checkout(ctx context.Context, c Cart, sink CheckoutSink) (string, error)
	// Inquire sends the inquiry sentence for an in-stock product.
	Inquire(ctx context.Context, product catalog.Product, sink InquirySink) (string, error)
}

// ServiceParams configure the checkout service.
type ServiceParams struct {
	Logger    *logger.Logger
	Metrics   *metrics.StorefrontMetrics
	BrandName string
}

type service struct {
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
	brand   string
}

// NewService builds the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	brand := strings.TrimSpace(params.BrandName)
	if brand == "" {
		brand = DefaultBrandName
	}
	return &service{logg: params.Logger, metrics: params.Metrics, brand: brand}, nil
}

func (s *service) Checkout(ctx context.Context, c Cart, sink CheckoutSink) (string, error) {
	if c == nil || sink == nil {
		return "", fmt.Errorf("cart and sink required")
	}
	snapshot := c.Snapshot()
	if len(snapshot.Items) == 0 {
		s.logg.Warn(ctx, "checkout attempted with empty cart")
		return "", ErrEmptyCart
	}

	message := formatCartMessage(s.brand, snapshot.Items, snapshot.TotalPrice)
	sink.SendCheckoutMessage(ctx, message)
	c.Clear()

	s.metrics.IncHandoff("checkout")
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"lines":       len(snapshot.Items),
		"total_items": snapshot.TotalItems,
		"total":       snapshot.TotalPrice.StringFixed(2),
	}), "checkout handed off")
	return message, nil
}

func (s *service) Inquire(ctx context.Context, product catalog.Product, sink InquirySink) (string, error) {
	if sink == nil {
		return "", fmt.Errorf("sink required")
	}
	if !product.InStock {
		return "", pkgerrors.New(pkgerrors.CodeStateConflict, "product is out of stock").
			WithDetails(map[string]any{"product_id": product.ID})
	}

	message := FormatInquiryMessage(product)
	sink.SendInquiryMessage(ctx, message)

	s.metrics.IncHandoff("inquiry")
	s.logg.Info(s.logg.WithField(ctx, "product_id", product.ID), "inquiry handed off")
	return message, nil
}
