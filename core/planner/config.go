package planner

import "fmt"

// Config defines the charging-stop placement parameters.
type Config struct {
	// MinChargePercent is the battery floor the planner never plans below.
	MinChargePercent float64 `json:"min_charge_percent"`
	// PreferredChargePercent is the target state of charge at each stop.
	PreferredChargePercent float64 `json:"preferred_charge_percent"`

	// MinLegKm rejects stations closer than this to the current position;
	// there is no point stopping before the battery has been used.
	MinLegKm float64 `json:"min_leg_km"`
	// MaxDetourKm bounds the extra distance a stop may add over the direct
	// path.
	MaxDetourKm float64 `json:"max_detour_km"`
	// RangeSafetyFactor caps how much of the remaining usable range may be
	// spent reaching a station (0.80 keeps a 20% buffer).
	RangeSafetyFactor float64 `json:"range_safety_factor"`
	// MaxStops is the hard ceiling on planned stops; the loop terminates
	// and reports infeasible when it is reached.
	MaxStops int `json:"max_stops"`

	// ProgressWeight and DetourWeight form the greedy objective
	// progress*ProgressWeight - detour*DetourWeight.
	ProgressWeight float64 `json:"progress_weight"`
	DetourWeight   float64 `json:"detour_weight"`

	// SegmentLengthKm is the target segment size for per-segment energy
	// analysis.
	SegmentLengthKm float64 `json:"segment_length_km"`
}

// SetDefaults applies the standard calibration to unset fields.
func (c *Config) SetDefaults() {
	if c.MinChargePercent == 0 {
		c.MinChargePercent = 20
	}
	if c.PreferredChargePercent == 0 {
		c.PreferredChargePercent = 80
	}
	if c.MinLegKm == 0 {
		c.MinLegKm = 100
	}
	if c.MaxDetourKm == 0 {
		c.MaxDetourKm = 30
	}
	if c.RangeSafetyFactor == 0 {
		c.RangeSafetyFactor = 0.80
	}
	if c.MaxStops == 0 {
		c.MaxStops = 10
	}
	if c.ProgressWeight == 0 {
		c.ProgressWeight = 10
	}
	if c.DetourWeight == 0 {
		c.DetourWeight = 50
	}
	if c.SegmentLengthKm == 0 {
		c.SegmentLengthKm = 100
	}
}

// Validate checks the configuration is internally consistent.
func (c Config) Validate() error {
	if c.MinChargePercent < 0 || c.MinChargePercent >= 100 {
		return fmt.Errorf("min_charge_percent %v out of range [0,100)", c.MinChargePercent)
	}
	if c.PreferredChargePercent <= c.MinChargePercent || c.PreferredChargePercent > 100 {
		return fmt.Errorf("preferred_charge_percent %v must be in (%v,100]", c.PreferredChargePercent, c.MinChargePercent)
	}
	if c.RangeSafetyFactor <= 0 || c.RangeSafetyFactor > 1 {
		return fmt.Errorf("range_safety_factor %v out of range (0,1]", c.RangeSafetyFactor)
	}
	if c.MaxStops <= 0 {
		return fmt.Errorf("max_stops must be positive")
	}
	return nil
}
