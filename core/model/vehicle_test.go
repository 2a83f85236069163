package model

import "testing"

func TestVehicleValidate(t *testing.T) {
	valid := VehicleProfile{
		Model:                  "Model S",
		BatteryCapacityKWh:     100,
		ConsumptionKWhPer100Km: 15,
		MaxChargingPowerKW:     250,
		SupportedConnectors:    []ConnectorType{ConnectorTesla, ConnectorCCS1},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	noCapacity := valid
	noCapacity.BatteryCapacityKWh = 0
	if err := noCapacity.Validate(); err == nil {
		t.Fatal("expected error for zero battery capacity")
	}

	noConnectors := valid
	noConnectors.SupportedConnectors = nil
	if err := noConnectors.Validate(); err == nil {
		t.Fatal("expected error for empty connector list")
	}

	negativeConsumption := valid
	negativeConsumption.ConsumptionKWhPer100Km = -1
	if err := negativeConsumption.Validate(); err == nil {
		t.Fatal("expected error for negative consumption")
	}
}

func TestVehicleNormalizeDefaults(t *testing.T) {
	v := VehicleProfile{BatteryCapacityKWh: 60}
	v.Normalize()
	if v.ConsumptionKWhPer100Km != DefaultConsumptionKWhPer100Km {
		t.Errorf("consumption default = %v", v.ConsumptionKWhPer100Km)
	}
	if v.MaxChargingPowerKW != DefaultMaxChargingPowerKW {
		t.Errorf("charging power default = %v", v.MaxChargingPowerKW)
	}
	// 60 kWh at 20 kWh/100km gives 300 km derived range.
	if v.RangeKm != 300 {
		t.Errorf("derived range = %v, want 300", v.RangeKm)
	}
}

func TestStationCompatibleWith(t *testing.T) {
	v := VehicleProfile{
		BatteryCapacityKWh:     60,
		ConsumptionKWhPer100Km: 16,
		MaxChargingPowerKW:     120,
		SupportedConnectors:    []ConnectorType{ConnectorCHAdeMO, ConnectorType2},
	}
	chademo := ChargingStation{ConnectorTypes: []ConnectorType{ConnectorCCS1, ConnectorCHAdeMO}}
	ccsOnly := ChargingStation{ConnectorTypes: []ConnectorType{ConnectorCCS1, ConnectorCCS2}}

	if !chademo.CompatibleWith(v) {
		t.Error("expected CHAdeMO station to be compatible")
	}
	if ccsOnly.CompatibleWith(v) {
		t.Error("expected CCS-only station to be incompatible")
	}
}
