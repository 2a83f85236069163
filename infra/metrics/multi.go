package metrics

import coremetrics "github.com/ecarion/voltroute/core/metrics"

// MultiSink fans planning records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.PlanningSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.PlanningSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPlan forwards the record to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordPlan(rec coremetrics.PlanRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordPlan(rec); err != nil {
			return err
		}
	}
	return nil
}

// RecordProviderCall forwards provider events when supported by the sink.
func (m *MultiSink) RecordProviderCall(ev coremetrics.ProviderEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.ProviderRecorder); ok {
			if err := rec.RecordProviderCall(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordCatalogSize forwards the catalog size when supported by the sink.
func (m *MultiSink) RecordCatalogSize(size int) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.CatalogSizeRecorder); ok {
			if err := rec.RecordCatalogSize(size); err != nil {
				return err
			}
		}
	}
	return nil
}
