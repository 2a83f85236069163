// Package stationdata loads charging-station reference data from CSV files
// or Postgres into the in-memory catalog model.
package stationdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ecarion/voltroute/core/model"
)

// Power tiers used to infer connector types and pricing when the source
// carries only a power rating.
const (
	ultraFastThresholdKW = 150
	fastThresholdKW      = 50

	ultraFastPricePerKWh = 0.45
	fastPricePerKWh      = 0.35
	normalPricePerKWh    = 0.25
)

// LoadCSV reads station records from path. The first row is a header; column
// order is free. Recognized columns: id, name, city, network, latitude,
// longitude, power_kw, price_per_kwh, connector_types (semicolon separated),
// rating, wait_time_minutes, total_stalls, available_stalls. Missing price
// and connectors are inferred from the power tier.
func LoadCSV(path string) ([]model.ChargingStation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("station csv: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses station records from r. See LoadCSV for the format.
func ReadCSV(r io.Reader) ([]model.ChargingStation, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("station csv: header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"name", "latitude", "longitude", "power_kw"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("station csv: missing column %q", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var stations []model.ChargingStation
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("station csv: line %d: %w", line, err)
		}

		lat, err := strconv.ParseFloat(field(row, "latitude"), 64)
		if err != nil {
			return nil, fmt.Errorf("station csv: line %d: latitude: %w", line, err)
		}
		lon, err := strconv.ParseFloat(field(row, "longitude"), 64)
		if err != nil {
			return nil, fmt.Errorf("station csv: line %d: longitude: %w", line, err)
		}
		power, err := strconv.ParseFloat(field(row, "power_kw"), 64)
		if err != nil {
			return nil, fmt.Errorf("station csv: line %d: power_kw: %w", line, err)
		}

		st := model.ChargingStation{
			ID:       field(row, "id"),
			Name:     field(row, "name"),
			City:     field(row, "city"),
			Network:  field(row, "network"),
			Location: model.Coordinate{Lat: lat, Lon: lon},
			PowerKW:  power,
		}
		if st.ID == "" {
			st.ID = fmt.Sprintf("st-%04d", line-1)
		}
		if raw := field(row, "price_per_kwh"); raw != "" {
			if st.PricePerKWh, err = strconv.ParseFloat(raw, 64); err != nil {
				return nil, fmt.Errorf("station csv: line %d: price_per_kwh: %w", line, err)
			}
		} else {
			st.PricePerKWh = priceForPower(power)
		}
		if raw := field(row, "connector_types"); raw != "" {
			st.ConnectorTypes = parseConnectorList(raw)
		} else {
			st.ConnectorTypes = connectorsForPower(power)
		}
		if raw := field(row, "rating"); raw != "" {
			if st.Rating, err = strconv.ParseFloat(raw, 64); err != nil {
				return nil, fmt.Errorf("station csv: line %d: rating: %w", line, err)
			}
		}
		if raw := field(row, "wait_time_minutes"); raw != "" {
			if st.WaitTimeMinutes, err = strconv.ParseFloat(raw, 64); err != nil {
				return nil, fmt.Errorf("station csv: line %d: wait_time_minutes: %w", line, err)
			}
		}
		if raw := field(row, "total_stalls"); raw != "" {
			if st.TotalStalls, err = strconv.Atoi(raw); err != nil {
				return nil, fmt.Errorf("station csv: line %d: total_stalls: %w", line, err)
			}
		}
		if raw := field(row, "available_stalls"); raw != "" {
			if st.AvailableStalls, err = strconv.Atoi(raw); err != nil {
				return nil, fmt.Errorf("station csv: line %d: available_stalls: %w", line, err)
			}
		}
		stations = append(stations, st)
	}
	return stations, nil
}

// priceForPower maps a power rating to the tier price.
func priceForPower(powerKW float64) float64 {
	switch {
	case powerKW >= ultraFastThresholdKW:
		return ultraFastPricePerKWh
	case powerKW >= fastThresholdKW:
		return fastPricePerKWh
	default:
		return normalPricePerKWh
	}
}

// parseConnectorList splits a semicolon-separated connector list.
func parseConnectorList(raw string) []model.ConnectorType {
	var out []model.ConnectorType
	for _, c := range strings.Split(raw, ";") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, model.ConnectorType(c))
		}
	}
	return out
}

// connectorsForPower maps a power rating to the typical connector set: ultra
// fast DC sites carry CCS and CHAdeMO, fast DC sites CCS only, the rest AC
// Type 2.
func connectorsForPower(powerKW float64) []model.ConnectorType {
	switch {
	case powerKW >= ultraFastThresholdKW:
		return []model.ConnectorType{model.ConnectorCCS1, model.ConnectorCCS2, model.ConnectorCHAdeMO}
	case powerKW >= fastThresholdKW:
		return []model.ConnectorType{model.ConnectorCCS1, model.ConnectorCCS2}
	default:
		return []model.ConnectorType{model.ConnectorType2}
	}
}
