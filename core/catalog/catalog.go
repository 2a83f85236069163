// Package catalog holds the in-memory charging-station snapshot queried by
// the planner. The catalog is read-only after construction and safe for
// concurrent planning calls.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ecarion/voltroute/core/model"
)

// AvailabilityOverlay supplies live stall counts for a station. Implemented
// by the MQTT availability feed; absence of data means assumed full
// availability.
type AvailabilityOverlay interface {
	Availability(stationID string) (available, total int, ok bool)
}

// Catalog is an immutable collection of charging stations.
type Catalog struct {
	stations []model.ChargingStation
	overlay  AvailabilityOverlay
}

// New validates the station records and returns a Catalog. Invalid records
// are rejected, not skipped: reference data problems should surface at load
// time.
func New(stations []model.ChargingStation) (*Catalog, error) {
	for _, s := range stations {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
	}
	cp := make([]model.ChargingStation, len(stations))
	copy(cp, stations)
	return &Catalog{stations: cp}, nil
}

// SetOverlay attaches a live-availability overlay. Call before serving;
// the overlay itself must be safe for concurrent reads.
func (c *Catalog) SetOverlay(o AvailabilityOverlay) { c.overlay = o }

// Len returns the number of stations.
func (c *Catalog) Len() int { return len(c.stations) }

// All returns a copy of every station with live availability applied.
func (c *Catalog) All() []model.ChargingStation {
	out := make([]model.ChargingStation, len(c.stations))
	for i, s := range c.stations {
		out[i] = c.resolve(s)
	}
	return out
}

// WithinRadius returns stations within radiusKm of center, sorted by
// distance. Linear scan; fine at catalog scale.
func (c *Catalog) WithinRadius(center model.Coordinate, radiusKm float64) []model.ChargingStation {
	type scored struct {
		st   model.ChargingStation
		dist float64
	}
	var hits []scored
	for _, s := range c.stations {
		d := model.Distance(center, s.Location)
		if d <= radiusKm {
			hits = append(hits, scored{st: c.resolve(s), dist: d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })
	out := make([]model.ChargingStation, len(hits))
	for i, h := range hits {
		out[i] = h.st
	}
	return out
}

// ByCity returns stations in the given city, case-insensitively.
func (c *Catalog) ByCity(city string) []model.ChargingStation {
	var out []model.ChargingStation
	for _, s := range c.stations {
		if strings.EqualFold(s.City, city) {
			out = append(out, c.resolve(s))
		}
	}
	return out
}

// CompatibleWith filters stations sharing a connector type with the vehicle.
func CompatibleWith(stations []model.ChargingStation, v model.VehicleProfile) []model.ChargingStation {
	var out []model.ChargingStation
	for _, s := range stations {
		if s.CompatibleWith(v) {
			out = append(out, s)
		}
	}
	return out
}

// InPowerRange filters stations whose power lies in [minKW, maxKW].
func InPowerRange(stations []model.ChargingStation, minKW, maxKW float64) []model.ChargingStation {
	var out []model.ChargingStation
	for _, s := range stations {
		if s.PowerKW >= minKW && s.PowerKW <= maxKW {
			out = append(out, s)
		}
	}
	return out
}

func (c *Catalog) resolve(s model.ChargingStation) model.ChargingStation {
	if c.overlay != nil {
		if avail, total, ok := c.overlay.Availability(s.ID); ok {
			s.AvailableStalls = avail
			s.TotalStalls = total
		}
	}
	return s
}
