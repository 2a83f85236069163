// Package metrics defines the observability boundary for planning runs.
package metrics

import "time"

// PlanRecord captures the outcome of one planning call.
type PlanRecord struct {
	PlanID          string
	Feasible        bool
	Stops           int
	TotalDistanceKm float64
	ChargingMinutes float64
	EstimatedCost   float64
	Duration        time.Duration
	Time            time.Time
}

// PlanningSink records planning outcomes for observability purposes.
type PlanningSink interface {
	RecordPlan(rec PlanRecord) error
}

// CatalogSizeRecorder is implemented by sinks able to record the size of the
// loaded station catalog.
type CatalogSizeRecorder interface {
	RecordCatalogSize(size int) error
}

// ProviderEvent records one call to an external routing provider.
type ProviderEvent struct {
	Provider string
	Fallback bool
	Duration time.Duration
	Time     time.Time
}

// ProviderRecorder records external provider calls and fallbacks.
type ProviderRecorder interface {
	RecordProviderCall(ev ProviderEvent) error
}

// NopSink implements the sink interfaces with no-op methods.
type NopSink struct{}

func (NopSink) RecordPlan(PlanRecord) error            { return nil }
func (NopSink) RecordCatalogSize(int) error            { return nil }
func (NopSink) RecordProviderCall(ProviderEvent) error { return nil }
