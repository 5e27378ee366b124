package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestStorefrontMetricsRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStorefrontMetrics(reg)

	m.ObserveQuery("price-low", 2)
	m.ObserveQuery("", 0)
	m.IncCartMutation("item_added")
	m.IncCartMutation("item_added")
	m.IncHandoff("checkout")
	m.SetActiveSessions(3)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "catalog_queries_total", "sort", "price-low"); err != nil || got != 1 {
		t.Fatalf("expected one price-low query, got %v (%v)", got, err)
	}
	if got, err := fetchCounterValue(mfs, "catalog_queries_total", "sort", "unknown"); err != nil || got != 1 {
		t.Fatalf("expected empty sort to be labelled unknown, got %v (%v)", got, err)
	}
	if got, err := fetchCounterValue(mfs, "cart_mutations_total", "event", "item_added"); err != nil || got != 2 {
		t.Fatalf("expected two item_added, got %v (%v)", got, err)
	}
	if got, err := fetchCounterValue(mfs, "messaging_handoffs_total", "kind", "checkout"); err != nil || got != 1 {
		t.Fatalf("expected one checkout handoff, got %v (%v)", got, err)
	}
	gauge := findMetricFamily(mfs, "cart_sessions_active")
	if gauge == nil || gauge.GetMetric()[0].GetGauge().GetValue() != 3 {
		t.Fatalf("expected active sessions gauge at 3")
	}
}

func TestStorefrontMetricsNilSafe(t *testing.T) {
	var m *StorefrontMetrics
	m.ObserveQuery("name", 1)
	m.IncCartMutation("cleared")
	m.IncHandoff("inquiry")
	m.SetActiveSessions(1)

	empty := NewStorefrontMetrics(nil)
	empty.ObserveQuery("name", 1)
}
