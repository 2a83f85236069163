// Package metrics provides Prometheus and InfluxDB implementations of the
// core planning sinks, a fan-out sink and the /metrics HTTP server.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/ecarion/voltroute/core/metrics"
)

// PromSink records planning outcomes in Prometheus metrics.
type PromSink struct {
	plans     *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	providers *prometheus.CounterVec
	catalog   prometheus.Gauge
}

// NewPromSink registers planning metrics on the default Prometheus
// registerer. The Prometheus server should be started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	plans := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "route_plans_total",
		Help: "Total number of route planning calls",
	}, []string{"feasible"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "route_plan_duration_seconds",
		Help:    "Time spent computing one route plan",
		Buckets: prometheus.DefBuckets,
	}, []string{"feasible"})
	providers := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "routing_provider_calls_total",
		Help: "Calls to external routing providers",
	}, []string{"provider", "fallback"})
	catalog := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "station_catalog_size",
		Help: "Number of stations in the loaded catalog",
	})

	if err := reg.Register(plans); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			plans = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(providers); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			providers = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(catalog); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			catalog = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{plans: plans, duration: duration, providers: providers, catalog: catalog}, nil
}

// RecordPlan increments the plan counter and observes the duration.
func (s *PromSink) RecordPlan(rec coremetrics.PlanRecord) error {
	feasible := strconv.FormatBool(rec.Feasible)
	s.plans.WithLabelValues(feasible).Inc()
	s.duration.WithLabelValues(feasible).Observe(rec.Duration.Seconds())
	return nil
}

// RecordProviderCall counts an external routing-provider call.
func (s *PromSink) RecordProviderCall(ev coremetrics.ProviderEvent) error {
	s.providers.WithLabelValues(ev.Provider, strconv.FormatBool(ev.Fallback)).Inc()
	return nil
}

// RecordCatalogSize sets the catalog gauge.
func (s *PromSink) RecordCatalogSize(size int) error {
	if s.catalog != nil {
		s.catalog.Set(float64(size))
	}
	return nil
}
