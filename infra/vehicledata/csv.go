// Package vehicledata loads the electric-vehicle model database from CSV.
package vehicledata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ecarion/voltroute/core/model"
)

// LoadCSV reads vehicle records from path. The first row is a header; column
// order is free. Recognized columns: id, brand, model, battery_capacity_kwh,
// range_km, efficiency_wh_km, fast_charge_power_kw, fast_charge_port.
// Efficiency in Wh/km is converted to kWh/100 km; connectors are inferred
// from the fast-charge port tag.
func LoadCSV(path string) ([]model.VehicleProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vehicle csv: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses vehicle records from r. See LoadCSV for the format.
func ReadCSV(r io.Reader) ([]model.VehicleProfile, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("vehicle csv: header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"brand", "model", "battery_capacity_kwh"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("vehicle csv: missing column %q", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	number := func(row []string, name string) (float64, error) {
		raw := field(row, name)
		if raw == "" {
			return 0, nil
		}
		return strconv.ParseFloat(raw, 64)
	}

	var profiles []model.VehicleProfile
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("vehicle csv: line %d: %w", line, err)
		}

		capacity, err := number(row, "battery_capacity_kwh")
		if err != nil {
			return nil, fmt.Errorf("vehicle csv: line %d: battery_capacity_kwh: %w", line, err)
		}
		rangeKm, err := number(row, "range_km")
		if err != nil {
			return nil, fmt.Errorf("vehicle csv: line %d: range_km: %w", line, err)
		}
		efficiency, err := number(row, "efficiency_wh_km")
		if err != nil {
			return nil, fmt.Errorf("vehicle csv: line %d: efficiency_wh_km: %w", line, err)
		}
		chargePower, err := number(row, "fast_charge_power_kw")
		if err != nil {
			return nil, fmt.Errorf("vehicle csv: line %d: fast_charge_power_kw: %w", line, err)
		}

		p := model.VehicleProfile{
			ID:                 field(row, "id"),
			Model:              field(row, "model"),
			Manufacturer:       field(row, "brand"),
			BatteryCapacityKWh: capacity,
			// Wh/km to kWh/100 km.
			ConsumptionKWhPer100Km: efficiency / 10,
			MaxChargingPowerKW:     chargePower,
			RangeKm:                rangeKm,
			SupportedConnectors:    connectorsForPort(field(row, "fast_charge_port")),
		}
		if p.ID == "" {
			p.ID = slug(p.Manufacturer + " " + p.Model)
		}
		p.Normalize()
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// connectorsForPort maps a fast-charge port tag to the supported connector
// set.
func connectorsForPort(port string) []model.ConnectorType {
	switch {
	case strings.Contains(port, "CCS"):
		return []model.ConnectorType{model.ConnectorCCS1, model.ConnectorCCS2}
	case strings.Contains(port, "Tesla"):
		return []model.ConnectorType{model.ConnectorTesla, model.ConnectorCCS1}
	case strings.Contains(port, "CHAdeMO"):
		return []model.ConnectorType{model.ConnectorCHAdeMO, model.ConnectorCCS1}
	default:
		return []model.ConnectorType{model.ConnectorCCS1}
	}
}

func slug(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
