package model

import "fmt"

// ChargingStation is a read-only charging-station record. Catalog data is
// loaded once at startup; the planner never mutates it and concurrent
// planning runs may read it freely.
type ChargingStation struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	City     string     `json:"city"`
	Network  string     `json:"network"`
	Location Coordinate `json:"location"`

	ConnectorTypes []ConnectorType `json:"connector_types"`
	PowerKW        float64         `json:"power_kw"`
	PricePerKWh    float64         `json:"price_per_kwh"`

	Amenities []string `json:"amenities,omitempty"`
	// Rating is a 0-5 user rating; zero means unknown.
	Rating          float64 `json:"rating,omitempty"`
	WaitTimeMinutes float64 `json:"wait_time_minutes,omitempty"`

	// Stall counts are optional live data; zero TotalStalls means unknown.
	AvailableStalls int `json:"available_stalls,omitempty"`
	TotalStalls     int `json:"total_stalls,omitempty"`
}

// Validate checks the fields the planner depends on.
func (s ChargingStation) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("station %q has no id", s.Name)
	}
	if err := s.Location.Validate(); err != nil {
		return fmt.Errorf("station %s: %w", s.ID, err)
	}
	if s.PowerKW <= 0 {
		return fmt.Errorf("station %s: power must be positive, got %v", s.ID, s.PowerKW)
	}
	if s.PricePerKWh < 0 {
		return fmt.Errorf("station %s: price must not be negative, got %v", s.ID, s.PricePerKWh)
	}
	return nil
}

// CompatibleWith reports whether the station shares at least one connector
// type with the vehicle.
func (s ChargingStation) CompatibleWith(v VehicleProfile) bool {
	for _, c := range s.ConnectorTypes {
		if v.SupportsConnector(c) {
			return true
		}
	}
	return false
}
