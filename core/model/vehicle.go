package model

import "fmt"

// ConnectorType identifies a charging-plug standard.
type ConnectorType string

const (
	ConnectorCCS1    ConnectorType = "CCS1"
	ConnectorCCS2    ConnectorType = "CCS2"
	ConnectorCHAdeMO ConnectorType = "CHAdeMO"
	ConnectorTesla   ConnectorType = "Tesla"
	ConnectorType2   ConnectorType = "Type2"
	ConnectorType1   ConnectorType = "Type1"
)

// Default fallbacks applied by Normalize when optional fields are missing.
const (
	DefaultConsumptionKWhPer100Km = 20.0
	DefaultMaxChargingPowerKW     = 150.0
)

// VehicleProfile describes the battery and consumption characteristics of an
// electric vehicle. It is an immutable input to a planning run; construct it
// once at the boundary and validate before use.
type VehicleProfile struct {
	ID           string `json:"id"`
	Model        string `json:"model"`
	Manufacturer string `json:"manufacturer"`

	BatteryCapacityKWh     float64 `json:"battery_capacity_kwh"`
	ConsumptionKWhPer100Km float64 `json:"energy_consumption_kwh_per_100km"`
	MaxChargingPowerKW     float64 `json:"max_charging_power_kw"`
	// RangeKm is the rated range. When zero it is derived from capacity and
	// consumption.
	RangeKm float64 `json:"range_km"`

	SupportedConnectors []ConnectorType `json:"supported_connectors"`
}

// Normalize applies documented defaults for optional fields. Defaulting rules
// live here and nowhere else.
func (v *VehicleProfile) Normalize() {
	if v.ConsumptionKWhPer100Km <= 0 {
		v.ConsumptionKWhPer100Km = DefaultConsumptionKWhPer100Km
	}
	if v.MaxChargingPowerKW <= 0 {
		v.MaxChargingPowerKW = DefaultMaxChargingPowerKW
	}
	if v.RangeKm <= 0 {
		v.RangeKm = v.BatteryCapacityKWh / v.ConsumptionKWhPer100Km * 100
	}
}

// Validate checks that the profile is usable for planning. Required fields
// are never defaulted silently.
func (v VehicleProfile) Validate() error {
	if v.BatteryCapacityKWh <= 0 {
		return fmt.Errorf("battery capacity must be positive, got %v", v.BatteryCapacityKWh)
	}
	if v.ConsumptionKWhPer100Km <= 0 {
		return fmt.Errorf("energy consumption must be positive, got %v", v.ConsumptionKWhPer100Km)
	}
	if v.MaxChargingPowerKW <= 0 {
		return fmt.Errorf("max charging power must be positive, got %v", v.MaxChargingPowerKW)
	}
	if len(v.SupportedConnectors) == 0 {
		return fmt.Errorf("vehicle %s supports no connectors", v.Model)
	}
	return nil
}

// SupportsConnector reports whether the vehicle can use the given connector.
func (v VehicleProfile) SupportsConnector(c ConnectorType) bool {
	for _, s := range v.SupportedConnectors {
		if s == c {
			return true
		}
	}
	return false
}
