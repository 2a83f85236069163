// Package config loads the service configuration from a YAML or JSON file
// with optional VR_-prefixed environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ecarion/voltroute/core/metrics"
	"github.com/ecarion/voltroute/core/planner"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr string `json:"addr"`
}

func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// StationsConfig selects the station data source.
type StationsConfig struct {
	// Source is "csv" or "postgres".
	Source      string `json:"source"`
	CSVPath     string `json:"csv_path"`
	DatabaseURL string `json:"database_url"`
}

func (c *StationsConfig) SetDefaults() {
	if c.Source == "" {
		c.Source = "csv"
	}
	if c.CSVPath == "" {
		c.CSVPath = "data/charging_stations.csv"
	}
}

func (c StationsConfig) Validate() error {
	switch c.Source {
	case "csv":
		if c.CSVPath == "" {
			return fmt.Errorf("stations: csv_path required for csv source")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("stations: database_url required for postgres source")
		}
	default:
		return fmt.Errorf("stations: unknown source %q", c.Source)
	}
	return nil
}

// VehiclesConfig points at the vehicle model database.
type VehiclesConfig struct {
	CSVPath string `json:"csv_path"`
}

func (c *VehiclesConfig) SetDefaults() {
	if c.CSVPath == "" {
		c.CSVPath = "data/ev_models.csv"
	}
}

// RoutingConfig selects the external routing provider.
type RoutingConfig struct {
	// Provider is "none", "tomtom" or "google".
	Provider string `json:"provider"`
	APIKey   string `json:"api_key"`
	// BaseURL overrides the provider endpoint, mainly for tests.
	BaseURL string `json:"base_url"`
}

func (c *RoutingConfig) SetDefaults() {
	if c.Provider == "" {
		c.Provider = "none"
	}
}

func (c RoutingConfig) Validate() error {
	switch c.Provider {
	case "none":
	case "tomtom", "google":
		if c.APIKey == "" {
			return fmt.Errorf("routing: api_key required for %s", c.Provider)
		}
	default:
		return fmt.Errorf("routing: unknown provider %q", c.Provider)
	}
	return nil
}

// AvailabilityConfig configures the live stall-count MQTT feed.
type AvailabilityConfig struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Topic    string `json:"topic"`
}

func (c *AvailabilityConfig) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "voltroute"
	}
	if c.Topic == "" {
		c.Topic = "stations/+/status"
	}
}

func (c AvailabilityConfig) Validate() error {
	if c.Enabled && c.Broker == "" {
		return fmt.Errorf("availability: broker required when enabled")
	}
	return nil
}

// Config is the root service configuration.
type Config struct {
	Server       ServerConfig       `json:"server"`
	Planner      planner.Config     `json:"planner"`
	Metrics      metrics.Config     `json:"metrics"`
	Stations     StationsConfig     `json:"stations"`
	Vehicles     VehiclesConfig     `json:"vehicles"`
	Routing      RoutingConfig      `json:"routing"`
	Availability AvailabilityConfig `json:"availability"`
}

// Load reads the configuration file and applies VR_-prefixed environment
// overrides (VR_SERVER__ADDR overrides server.addr).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("VR_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "vr_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults applies defaults to every section.
func (c *Config) SetDefaults() {
	c.Server.SetDefaults()
	c.Planner.SetDefaults()
	c.Metrics.SetDefaults()
	c.Stations.SetDefaults()
	c.Vehicles.SetDefaults()
	c.Routing.SetDefaults()
	c.Availability.SetDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Planner.Validate(); err != nil {
		return err
	}
	if err := c.Stations.Validate(); err != nil {
		return err
	}
	if err := c.Routing.Validate(); err != nil {
		return err
	}
	return c.Availability.Validate()
}
