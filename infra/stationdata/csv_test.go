package stationdata

import (
	"strings"
	"testing"

	"github.com/ecarion/voltroute/core/model"
)

func TestReadCSVFullRecord(t *testing.T) {
	in := strings.NewReader(
		"id,name,city,network,latitude,longitude,power_kw,price_per_kwh,connector_types,rating,wait_time_minutes,total_stalls,available_stalls\n" +
			"ist-01,Marina DC,Istanbul,Voltrun,41.04,29.00,180,0.52,CCS2;CHAdeMO,4.5,5,8,6\n")

	stations, err := ReadCSV(in)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(stations) != 1 {
		t.Fatalf("len = %d", len(stations))
	}
	st := stations[0]
	if st.ID != "ist-01" || st.City != "Istanbul" || st.Network != "Voltrun" {
		t.Errorf("identity fields: %+v", st)
	}
	if st.PricePerKWh != 0.52 {
		t.Errorf("explicit price overridden: %.2f", st.PricePerKWh)
	}
	if len(st.ConnectorTypes) != 2 || st.ConnectorTypes[0] != model.ConnectorCCS2 {
		t.Errorf("connectors = %v", st.ConnectorTypes)
	}
	if st.Rating != 4.5 || st.TotalStalls != 8 || st.AvailableStalls != 6 {
		t.Errorf("optional fields: %+v", st)
	}
}

func TestReadCSVInfersTiers(t *testing.T) {
	in := strings.NewReader(
		"name,city,latitude,longitude,power_kw\n" +
			"Ultra,Ankara,39.93,32.85,180\n" +
			"Fast,Ankara,39.94,32.86,90\n" +
			"Slow,Ankara,39.95,32.87,22\n")

	stations, err := ReadCSV(in)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(stations) != 3 {
		t.Fatalf("len = %d", len(stations))
	}

	cases := []struct {
		price      float64
		connectors int
		first      model.ConnectorType
	}{
		{0.45, 3, model.ConnectorCCS1},
		{0.35, 2, model.ConnectorCCS1},
		{0.25, 1, model.ConnectorType2},
	}
	for i, tc := range cases {
		st := stations[i]
		if st.PricePerKWh != tc.price {
			t.Errorf("%s: price %.2f, want %.2f", st.Name, st.PricePerKWh, tc.price)
		}
		if len(st.ConnectorTypes) != tc.connectors || st.ConnectorTypes[0] != tc.first {
			t.Errorf("%s: connectors %v", st.Name, st.ConnectorTypes)
		}
		if st.ID == "" {
			t.Errorf("%s: id not generated", st.Name)
		}
	}
}

func TestReadCSVErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"missing column", "name,latitude,longitude\nA,1,2\n"},
		{"bad latitude", "name,latitude,longitude,power_kw\nA,north,2,50\n"},
		{"bad power", "name,latitude,longitude,power_kw\nA,1,2,strong\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(tc.in)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
