package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/esihle/storefront-backend/api/controllers"
	"github.com/esihle/storefront-backend/api/middleware"
	"github.com/esihle/storefront-backend/internal/catalog"
	"github.com/esihle/storefront-backend/internal/checkout"
	"github.com/esihle/storefront-backend/pkg/config"
	"github.com/esihle/storefront-backend/pkg/logger"
	"github.com/esihle/storefront-backend/pkg/metrics"
)

// NewRouter wires the storefront API. rateStore and gatherer are optional;
// without them handoffs are not throttled and /metrics is not served.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	catalogStore *catalog.Store,
	sessions controllers.CartSessions,
	checkoutService checkout.Service,
	storefrontMetrics *metrics.StorefrontMetrics,
	gatherer prometheus.Gatherer,
	rateStore middleware.RateLimitStore,
	readiness map[string]controllers.Pinger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	handoffLimit := middleware.RateLimit(
		middleware.NewRateLimitPolicy(
			"handoff",
			cfg.RateLimit.HandoffWindow,
			cfg.RateLimit.HandoffIPLimit,
			cfg.RateLimit.HandoffSessionLimit,
		),
		rateStore,
		logg,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products", controllers.CatalogList(catalogStore, storefrontMetrics, logg))
		r.Get("/products/{productId}", controllers.CatalogProduct(catalogStore, logg))
		r.Get("/featured", controllers.CatalogFeatured(catalogStore))
		r.Get("/categories", controllers.CatalogCategories(catalogStore))
		r.With(middleware.CartSession(cfg.Session, logg), handoffLimit).
			Post("/products/{productId}/inquiry", controllers.CatalogInquiry(catalogStore, checkoutService, cfg.WhatsApp, logg))
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(middleware.CartSession(cfg.Session, logg))

		r.Get("/", controllers.CartFetch(sessions, logg))
		r.Delete("/", controllers.CartClear(sessions, logg))
		r.Post("/items", controllers.CartAddItem(sessions, catalogStore, logg))
		r.Patch("/items/{productId}", controllers.CartUpdateItem(sessions, logg))
		r.Delete("/items/{productId}", controllers.CartRemoveItem(sessions, logg))
		r.With(handoffLimit).Post("/checkout", controllers.CartCheckout(sessions, checkoutService, cfg.WhatsApp, logg))
	})

	return r
}
