package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/ecarion/voltroute/core/metrics"
)

func TestPromSink_RecordPlan(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}

	rec := coremetrics.PlanRecord{
		PlanID:          "p1",
		Feasible:        true,
		Stops:           3,
		TotalDistanceKm: 1150,
		ChargingMinutes: 85,
		Duration:        12 * time.Millisecond,
		Time:            time.Now(),
	}
	if err := sink.RecordPlan(rec); err != nil {
		t.Fatalf("record error: %v", err)
	}

	expected := `
# HELP route_plans_total Total number of route planning calls
# TYPE route_plans_total counter
route_plans_total{feasible="true"} 1
`
	if err := testutil.CollectAndCompare(sink.plans, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	if c := testutil.CollectAndCount(sink.duration); c == 0 {
		t.Errorf("duration not recorded")
	}

	if err := sink.RecordCatalogSize(812); err != nil {
		t.Fatalf("catalog size error: %v", err)
	}
	expectedCatalog := `
# HELP station_catalog_size Number of stations in the loaded catalog
# TYPE station_catalog_size gauge
station_catalog_size 812
`
	if err := testutil.CollectAndCompare(sink.catalog, strings.NewReader(expectedCatalog)); err != nil {
		t.Errorf("unexpected catalog metric: %v", err)
	}
}

func TestPromSink_RecordProviderCall(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}

	if err := sink.RecordProviderCall(coremetrics.ProviderEvent{
		Provider: "tomtom",
		Fallback: true,
		Duration: 80 * time.Millisecond,
		Time:     time.Now(),
	}); err != nil {
		t.Fatalf("record error: %v", err)
	}

	expected := `
# HELP routing_provider_calls_total Calls to external routing providers
# TYPE routing_provider_calls_total counter
routing_provider_calls_total{fallback="true",provider="tomtom"} 1
`
	if err := testutil.CollectAndCompare(sink.providers, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
}

func TestPromSink_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("second registration should reuse collectors: %v", err)
	}
}
