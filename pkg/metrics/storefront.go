package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics tracks catalog queries, cart mutations and messaging handoffs.
type StorefrontMetrics struct {
	queries        *prometheus.CounterVec
	queryResults   prometheus.Histogram
	cartMutations  *prometheus.CounterVec
	handoffs       *prometheus.CounterVec
	activeSessions prometheus.Gauge
}

// NewStorefrontMetrics registers the storefront collectors on reg. A nil
// registerer yields a no-op recorder.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	m := &StorefrontMetrics{
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_queries_total",
			Help: "Catalog queries served, by sort key.",
		}, []string{"sort"}),
		queryResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "catalog_query_results",
			Help:    "Number of products returned per catalog query.",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cart_mutations_total",
			Help: "Cart mutations applied, by event.",
		}, []string{"event"}),
		handoffs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "messaging_handoffs_total",
			Help: "Messaging handoffs dispatched, by kind.",
		}, []string{"kind"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cart_sessions_active",
			Help: "Cart sessions currently held in memory.",
		}),
	}
	reg.MustRegister(m.queries, m.queryResults, m.cartMutations, m.handoffs, m.activeSessions)
	return m
}

// ObserveQuery records one catalog query and its result size.
func (m *StorefrontMetrics) ObserveQuery(sort string, results int) {
	if m == nil || m.queries == nil {
		return
	}
	m.queries.WithLabelValues(normalizeLabel(sort)).Inc()
	m.queryResults.Observe(float64(results))
}

// IncCartMutation counts a cart change notification.
func (m *StorefrontMetrics) IncCartMutation(event string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(event)).Inc()
}

// IncHandoff counts a checkout or inquiry dispatch.
func (m *StorefrontMetrics) IncHandoff(kind string) {
	if m == nil || m.handoffs == nil {
		return
	}
	m.handoffs.WithLabelValues(normalizeLabel(kind)).Inc()
}

// SetActiveSessions reports the live session count.
func (m *StorefrontMetrics) SetActiveSessions(n int) {
	if m == nil || m.activeSessions == nil {
		return
	}
	m.activeSessions.Set(float64(n))
}
