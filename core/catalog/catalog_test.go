package catalog

import (
	"testing"

	"github.com/ecarion/voltroute/core/model"
)

func testStations() []model.ChargingStation {
	return []model.ChargingStation{
		{
			ID: "ist-1", Name: "Istanbul Plaza", City: "Istanbul",
			Location:       model.Coordinate{Lat: 41.0082, Lon: 28.9784},
			ConnectorTypes: []model.ConnectorType{model.ConnectorCCS2},
			PowerKW:        180, PricePerKWh: 0.45,
		},
		{
			ID: "izm-1", Name: "Izmit Hub", City: "Kocaeli",
			Location:       model.Coordinate{Lat: 40.7654, Lon: 29.9408},
			ConnectorTypes: []model.ConnectorType{model.ConnectorCCS2, model.ConnectorCHAdeMO},
			PowerKW:        90, PricePerKWh: 0.35,
		},
		{
			ID: "ank-1", Name: "Ankara Merkez", City: "Ankara",
			Location:       model.Coordinate{Lat: 39.9334, Lon: 32.8597},
			ConnectorTypes: []model.ConnectorType{model.ConnectorType2},
			PowerKW:        22, PricePerKWh: 0.25,
		},
	}
}

func TestNewRejectsInvalidStation(t *testing.T) {
	bad := testStations()
	bad[0].PowerKW = 0
	if _, err := New(bad); err == nil {
		t.Fatal("expected error for non-positive power")
	}
}

func TestWithinRadiusSortedByDistance(t *testing.T) {
	c, err := New(testStations())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	istanbul := model.Coordinate{Lat: 41.0082, Lon: 28.9784}
	got := c.WithinRadius(istanbul, 150)
	if len(got) != 2 {
		t.Fatalf("expected 2 stations within 150 km, got %d", len(got))
	}
	if got[0].ID != "ist-1" || got[1].ID != "izm-1" {
		t.Fatalf("expected distance order ist-1, izm-1; got %s, %s", got[0].ID, got[1].ID)
	}
}

func TestCompatibleWith(t *testing.T) {
	v := model.VehicleProfile{
		BatteryCapacityKWh:     60,
		ConsumptionKWhPer100Km: 16,
		MaxChargingPowerKW:     100,
		SupportedConnectors:    []model.ConnectorType{model.ConnectorCHAdeMO},
	}
	got := CompatibleWith(testStations(), v)
	if len(got) != 1 || got[0].ID != "izm-1" {
		t.Fatalf("expected only izm-1 compatible, got %v", got)
	}
}

func TestInPowerRange(t *testing.T) {
	got := InPowerRange(testStations(), 50, 200)
	if len(got) != 2 {
		t.Fatalf("expected 2 stations in [50,200] kW, got %d", len(got))
	}
}

func TestByCityCaseInsensitive(t *testing.T) {
	c, err := New(testStations())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.ByCity("ANKARA"); len(got) != 1 || got[0].ID != "ank-1" {
		t.Fatalf("city lookup failed: %v", got)
	}
}

type fakeOverlay map[string][2]int

func (f fakeOverlay) Availability(id string) (int, int, bool) {
	v, ok := f[id]
	return v[0], v[1], ok
}

func TestOverlayAppliedOnRead(t *testing.T) {
	c, err := New(testStations())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.SetOverlay(fakeOverlay{"ist-1": {2, 8}})
	for _, s := range c.All() {
		if s.ID == "ist-1" {
			if s.AvailableStalls != 2 || s.TotalStalls != 8 {
				t.Fatalf("overlay not applied: %+v", s)
			}
		} else if s.TotalStalls != 0 {
			t.Fatalf("station %s should have unknown stalls", s.ID)
		}
	}
}
