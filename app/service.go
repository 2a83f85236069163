// Package app wires the configured components into a runnable service.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ecarion/voltroute/api"
	"github.com/ecarion/voltroute/api/plan"
	"github.com/ecarion/voltroute/api/stations"
	"github.com/ecarion/voltroute/config"
	"github.com/ecarion/voltroute/core/catalog"
	coremetrics "github.com/ecarion/voltroute/core/metrics"
	"github.com/ecarion/voltroute/core/model"
	"github.com/ecarion/voltroute/core/planner"
	"github.com/ecarion/voltroute/core/routing"
	"github.com/ecarion/voltroute/core/vehicles"
	"github.com/ecarion/voltroute/infra/availability"
	"github.com/ecarion/voltroute/infra/logger"
	"github.com/ecarion/voltroute/infra/metrics"
	infrarouting "github.com/ecarion/voltroute/infra/routing"
	"github.com/ecarion/voltroute/infra/stationdata"
	"github.com/ecarion/voltroute/infra/vehicledata"
)

// Service holds the wired components of the route-planning server.
type Service struct {
	Catalog  *catalog.Catalog
	Planner  *planner.Planner
	Vehicles *vehicles.Source

	router      http.Handler
	addr        string
	feed        *availability.Feed
	sink        coremetrics.PlanningSink
	log         logger.Logger
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	stationRecords, err := loadStations(cfg.Stations)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.New(stationRecords)
	if err != nil {
		return nil, err
	}

	profiles, err := vehicledata.LoadCSV(cfg.Vehicles.CSVPath)
	if err != nil {
		return nil, err
	}
	src, err := vehicles.NewSource(profiles)
	if err != nil {
		return nil, err
	}

	p, err := planner.New(cat, cfg.Planner, logger.New("planner"))
	if err != nil {
		return nil, err
	}

	sink := buildSink(cfg.Metrics)
	if rec, ok := sink.(coremetrics.CatalogSizeRecorder); ok {
		if err := rec.RecordCatalogSize(cat.Len()); err != nil {
			logg.Warnf("catalog metrics: %v", err)
		}
	}

	provider, err := buildProvider(cfg.Routing)
	if err != nil {
		return nil, err
	}

	svc := &Service{
		Catalog:     cat,
		Planner:     p,
		Vehicles:    src,
		addr:        cfg.Server.Addr,
		sink:        sink,
		log:         logg,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}

	if cfg.Availability.Enabled {
		feed, err := availability.Connect(cfg.Availability.Broker, cfg.Availability.ClientID,
			cfg.Availability.Topic, nil, logger.New("availability"))
		if err != nil {
			return nil, fmt.Errorf("availability feed: %w", err)
		}
		cat.SetOverlay(feed)
		svc.feed = feed
	}

	planHandler := plan.NewHandler(p, src, provider, sink, logger.New("api-plan"))
	stationHandler := stations.NewHandler(cat, src, logger.New("api-stations"))
	svc.router = api.NewRouter(planHandler, stationHandler, src)

	logg.Infof("service ready: %d stations, %d vehicle models", cat.Len(), src.Len())
	return svc, nil
}

func loadStations(cfg config.StationsConfig) ([]model.ChargingStation, error) {
	switch cfg.Source {
	case "postgres":
		db, err := stationdata.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return stationdata.LoadPostgres(ctx, db)
	default:
		return stationdata.LoadCSV(cfg.CSVPath)
	}
}

func buildSink(cfg coremetrics.Config) coremetrics.PlanningSink {
	var sinks []coremetrics.PlanningSink
	if cfg.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg)
		if err == nil {
			sinks = append(sinks, sink)
		} else {
			logger.New("metrics").Errorf("prom sink: %v", err)
		}
	}
	if cfg.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(
			cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket))
	}
	switch len(sinks) {
	case 0:
		return coremetrics.NopSink{}
	case 1:
		return sinks[0]
	default:
		return metrics.NewMultiSink(sinks...)
	}
}

func buildProvider(cfg config.RoutingConfig) (routing.Provider, error) {
	switch cfg.Provider {
	case "tomtom":
		return infrarouting.NewTomTom(cfg.BaseURL, cfg.APIKey, logger.New("tomtom")), nil
	case "google":
		return infrarouting.NewGoogle(cfg.APIKey, logger.New("google"))
	default:
		return nil, nil
	}
}

// Run serves HTTP until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router}

	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("http shutdown: %v", err)
		}
	}()

	s.log.Infof("listening on %s", s.addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.feed != nil {
		s.feed.Close()
	}
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	return nil
}
