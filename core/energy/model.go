// Package energy implements the vehicle energy and charging model used by
// the charging-stop planner.
package energy

import (
	"math"

	"github.com/ecarion/voltroute/core/model"
)

// Model holds the tunable consumption and charging factors. The defaults
// reproduce the standard calibration; construct with NewModel and override
// fields to tune.
type Model struct {
	// ElevationFactorPerKm is the consumption increase per kilometer of
	// climb (0.1 means +10% per 1000 m gained).
	ElevationFactorPerKm float64
	// HighwaySpeedThresholdKmh is the speed above which the highway penalty
	// applies.
	HighwaySpeedThresholdKmh float64
	// HighwayPenaltyPer100Kmh scales the penalty for speed above the
	// threshold.
	HighwayPenaltyPer100Kmh float64

	// BlanketElevationFactor and BlanketWeatherFactor are applied instead of
	// per-segment detail when a segment carries no elevation or speed data.
	BlanketElevationFactor float64
	BlanketWeatherFactor   float64

	// ChargingEfficiency derates the nominal charging power for the average
	// charging-curve loss.
	ChargingEfficiency float64
}

// NewModel returns a Model with the default calibration.
func NewModel() Model {
	return Model{
		ElevationFactorPerKm:     0.1,
		HighwaySpeedThresholdKmh: 80,
		HighwayPenaltyPer100Kmh:  0.1,
		BlanketElevationFactor:   1.1,
		BlanketWeatherFactor:     1.05,
		ChargingEfficiency:       0.85,
	}
}

// SegmentEnergy returns the energy in kWh the vehicle consumes over the
// segment. Base energy is distance * consumption / 100, adjusted by
// multiplicative elevation and speed factors. Segments without elevation and
// speed data fall back to the blanket factors.
func (m Model) SegmentEnergy(seg model.RouteSegment, v model.VehicleProfile) float64 {
	base := seg.DistanceKm * v.ConsumptionKWhPer100Km / 100
	if seg.ElevationGainM == 0 && seg.AvgSpeedKmh == 0 {
		return base * m.BlanketElevationFactor * m.BlanketWeatherFactor
	}
	elevation := 1 + seg.ElevationGainM/1000*m.ElevationFactorPerKm
	speed := 1 + math.Max(0, seg.AvgSpeedKmh-m.HighwaySpeedThresholdKmh)/100*m.HighwayPenaltyPer100Kmh
	return base * elevation * speed
}

// BatteryDelta converts an energy amount to a battery-percentage delta for
// the given capacity.
func BatteryDelta(energyKWh, batteryCapacityKWh float64) float64 {
	return energyKWh / batteryCapacityKWh * 100
}

// EnergyToCharge returns the kWh needed to raise the battery from fromPct to
// toPct. Never negative.
func EnergyToCharge(fromPct, toPct, batteryCapacityKWh float64) float64 {
	if toPct <= fromPct {
		return 0
	}
	return batteryCapacityKWh * (toPct - fromPct) / 100
}

// ChargingTimeMinutes estimates the time to add energyKWh at the station,
// bounded by the vehicle's own charging limit and derated by the average
// charging efficiency.
func (m Model) ChargingTimeMinutes(energyKWh float64, v model.VehicleProfile, stationPowerKW float64) float64 {
	if energyKWh <= 0 {
		return 0
	}
	power := math.Min(stationPowerKW, v.MaxChargingPowerKW)
	if power <= 0 {
		return 0
	}
	return energyKWh / (power * m.ChargingEfficiency) * 60
}

// ChargingTimeDetailedMinutes estimates charging time using a stepped
// charging-curve derate by state-of-charge band instead of the flat average.
// Used by the standalone charge-time estimate; the planner uses the flat
// average.
func (m Model) ChargingTimeDetailedMinutes(fromPct, toPct float64, v model.VehicleProfile, stationPowerKW float64) float64 {
	energy := EnergyToCharge(fromPct, toPct, v.BatteryCapacityKWh)
	if energy <= 0 {
		return 0
	}
	power := math.Min(stationPowerKW, v.MaxChargingPowerKW)
	if power <= 0 {
		return 0
	}
	var derate float64
	switch {
	case fromPct < 20:
		derate = 0.95
	case fromPct < 50:
		derate = 0.90
	case fromPct < 80:
		derate = 0.70
	default:
		derate = 0.40
	}
	return energy / (power * derate) * 60
}

// RangeKm returns the vehicle's full-charge range, preferring the rated
// figure when present.
func RangeKm(v model.VehicleProfile) float64 {
	if v.RangeKm > 0 {
		return v.RangeKm
	}
	return v.BatteryCapacityKWh / v.ConsumptionKWhPer100Km * 100
}

// UsableRangeKm is the distance travelable before the battery drops from
// currentPct to minPct. Never negative.
func UsableRangeKm(v model.VehicleProfile, currentPct, minPct float64) float64 {
	r := RangeKm(v) * (currentPct - minPct) / 100
	if r < 0 {
		return 0
	}
	return r
}
