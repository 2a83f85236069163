package energy

import (
	"math"
	"testing"

	"github.com/ecarion/voltroute/core/model"
)

func testVehicle() model.VehicleProfile {
	return model.VehicleProfile{
		BatteryCapacityKWh:     80,
		ConsumptionKWhPer100Km: 20,
		MaxChargingPowerKW:     150,
		RangeKm:                400,
		SupportedConnectors:    []model.ConnectorType{model.ConnectorCCS2},
	}
}

func TestSegmentEnergyFlat(t *testing.T) {
	m := NewModel()
	seg := model.RouteSegment{DistanceKm: 100, AvgSpeedKmh: 80}
	// 100 km at 20 kWh/100km, no climb, speed at threshold: factors neutral.
	got := m.SegmentEnergy(seg, testVehicle())
	if math.Abs(got-20) > 1e-9 {
		t.Fatalf("flat segment energy = %v, want 20", got)
	}
}

func TestSegmentEnergyElevationAndSpeed(t *testing.T) {
	m := NewModel()
	seg := model.RouteSegment{DistanceKm: 100, ElevationGainM: 1000, AvgSpeedKmh: 120}
	// base 20 * 1.1 (1 km climb) * 1.04 (40 km/h over threshold).
	want := 20 * 1.1 * 1.04
	got := m.SegmentEnergy(seg, testVehicle())
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("segment energy = %v, want %v", got, want)
	}
}

func TestSegmentEnergyBlanketFactors(t *testing.T) {
	m := NewModel()
	seg := model.RouteSegment{DistanceKm: 50}
	// No per-segment data: blanket 1.1 * 1.05 applies.
	want := 10 * 1.1 * 1.05
	got := m.SegmentEnergy(seg, testVehicle())
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("blanket segment energy = %v, want %v", got, want)
	}
}

func TestBatteryDelta(t *testing.T) {
	if got := BatteryDelta(20, 80); got != 25 {
		t.Fatalf("battery delta = %v, want 25", got)
	}
}

func TestEnergyToCharge(t *testing.T) {
	if got := EnergyToCharge(30, 80, 80); got != 40 {
		t.Fatalf("energy to charge = %v, want 40", got)
	}
	if got := EnergyToCharge(80, 30, 80); got != 0 {
		t.Fatalf("expected zero energy for downward charge, got %v", got)
	}
}

func TestChargingTimeBoundedByVehicle(t *testing.T) {
	m := NewModel()
	v := testVehicle() // 150 kW max
	// 42.5 kWh at min(350,150)=150 kW * 0.85 = 127.5 kW -> 20 minutes.
	got := m.ChargingTimeMinutes(42.5, v, 350)
	if math.Abs(got-20) > 1e-9 {
		t.Fatalf("charging time = %v, want 20", got)
	}
}

func TestChargingTimeDetailedBands(t *testing.T) {
	m := NewModel()
	v := testVehicle()
	low := m.ChargingTimeDetailedMinutes(10, 30, v, 150)
	high := m.ChargingTimeDetailedMinutes(80, 100, v, 150)
	if low >= high {
		t.Fatalf("expected slower charging above 80%%: low=%v high=%v", low, high)
	}
}

func TestUsableRange(t *testing.T) {
	v := testVehicle()
	// 400 km rated, 90% -> 20% leaves 70% of range.
	if got := UsableRangeKm(v, 90, 20); math.Abs(got-280) > 1e-9 {
		t.Fatalf("usable range = %v, want 280", got)
	}
	if got := UsableRangeKm(v, 10, 20); got != 0 {
		t.Fatalf("usable range below minimum should clamp to 0, got %v", got)
	}
}

func TestRangeDerivedWhenUnrated(t *testing.T) {
	v := testVehicle()
	v.RangeKm = 0
	if got := RangeKm(v); math.Abs(got-400) > 1e-9 {
		t.Fatalf("derived range = %v, want 400", got)
	}
}
