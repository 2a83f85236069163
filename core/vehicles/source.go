// Package vehicles resolves vehicle profiles from a loaded model database.
package vehicles

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ecarion/voltroute/core/model"
)

// Source answers vehicle lookups over an immutable profile set.
type Source struct {
	profiles []model.VehicleProfile
	byID     map[string]model.VehicleProfile
}

// NewSource normalizes and validates the profiles. Duplicate IDs are
// rejected.
func NewSource(profiles []model.VehicleProfile) (*Source, error) {
	s := &Source{
		profiles: make([]model.VehicleProfile, 0, len(profiles)),
		byID:     make(map[string]model.VehicleProfile, len(profiles)),
	}
	for _, p := range profiles {
		p.Normalize()
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("vehicles: %w", err)
		}
		if _, dup := s.byID[p.ID]; dup {
			return nil, fmt.Errorf("vehicles: duplicate id %q", p.ID)
		}
		s.profiles = append(s.profiles, p)
		s.byID[p.ID] = p
	}
	return s, nil
}

// Len returns the number of profiles.
func (s *Source) Len() int { return len(s.profiles) }

// All returns every profile sorted by manufacturer then model.
func (s *Source) All() []model.VehicleProfile {
	out := make([]model.VehicleProfile, len(s.profiles))
	copy(out, s.profiles)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Manufacturer != out[j].Manufacturer {
			return out[i].Manufacturer < out[j].Manufacturer
		}
		return out[i].Model < out[j].Model
	})
	return out
}

// ByID looks up a profile by exact id.
func (s *Source) ByID(id string) (model.VehicleProfile, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Resolve finds the profile for a free-form vehicle name. Exact id match
// wins; otherwise the first profile whose model or "manufacturer model"
// string contains the query, case-insensitively, in stable load order.
func (s *Source) Resolve(query string) (model.VehicleProfile, error) {
	if p, ok := s.byID[query]; ok {
		return p, nil
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return model.VehicleProfile{}, fmt.Errorf("vehicles: empty query")
	}
	for _, p := range s.profiles {
		full := strings.ToLower(p.Manufacturer + " " + p.Model)
		if strings.Contains(strings.ToLower(p.Model), q) || strings.Contains(full, q) {
			return p, nil
		}
	}
	return model.VehicleProfile{}, fmt.Errorf("vehicles: no profile matches %q", query)
}
