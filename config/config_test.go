package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "config.yaml", `server:
  addr: ":9999"
planner:
  min_charge_percent: 15
  max_detour_km: 40
metrics:
  prometheus_enabled: true
  prometheus_port: ":2113"
stations:
  source: "csv"
  csv_path: "testdata/stations.csv"
vehicles:
  csv_path: "testdata/vehicles.csv"
routing:
  provider: "tomtom"
  api_key: "secret"
availability:
  enabled: true
  broker: "tcp://localhost:1883"
  topic: "stations/+/status"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"server.addr", cfg.Server.Addr, ":9999"},
		{"planner.min_charge_percent", cfg.Planner.MinChargePercent, 15.0},
		{"planner.max_detour_km", cfg.Planner.MaxDetourKm, 40.0},
		{"planner.max_stops default", cfg.Planner.MaxStops, 10},
		{"metrics.prometheus_enabled", cfg.Metrics.PrometheusEnabled, true},
		{"metrics.prometheus_port", cfg.Metrics.PrometheusPort, ":2113"},
		{"stations.csv_path", cfg.Stations.CSVPath, "testdata/stations.csv"},
		{"vehicles.csv_path", cfg.Vehicles.CSVPath, "testdata/vehicles.csv"},
		{"routing.provider", cfg.Routing.Provider, "tomtom"},
		{"availability.broker", cfg.Availability.Broker, "tcp://localhost:1883"},
		{"availability.client_id default", cfg.Availability.ClientID, "voltroute"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "config.yaml", "server: {}\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Stations.Source != "csv" || cfg.Stations.CSVPath == "" {
		t.Errorf("stations defaults: %+v", cfg.Stations)
	}
	if cfg.Routing.Provider != "none" {
		t.Errorf("routing default: %q", cfg.Routing.Provider)
	}
	if cfg.Planner.PreferredChargePercent != 80 {
		t.Errorf("planner default: %v", cfg.Planner.PreferredChargePercent)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("VR_SERVER__ADDR", ":7070")
	path := writeConfig(t, "config.yaml", "server:\n  addr: \":8080\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("env override not applied: %q", cfg.Server.Addr)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("unsupported extension", func(t *testing.T) {
		path := writeConfig(t, "config.toml", "x = 1\n")
		if _, err := Load(path); err == nil {
			t.Error("expected format error")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Error("expected read error")
		}
	})

	t.Run("invalid routing provider", func(t *testing.T) {
		path := writeConfig(t, "config.yaml", "routing:\n  provider: \"carrier-pigeon\"\n")
		if _, err := Load(path); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("availability without broker", func(t *testing.T) {
		path := writeConfig(t, "config.yaml", "availability:\n  enabled: true\n")
		if _, err := Load(path); err == nil {
			t.Error("expected validation error")
		}
	})
}
