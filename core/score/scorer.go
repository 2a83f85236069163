// Package score ranks candidate charging stations for a position, vehicle
// and preference set using a weighted multi-factor score.
package score

import (
	"math"

	"github.com/ecarion/voltroute/core/model"
)

// Scorer computes station quality scores in [0,100]. The weights are a
// tunable calibration, not derived quantities; override fields after
// NewScorer to adjust the ranking without touching the algorithm.
type Scorer struct {
	// RatingWeight scales the 0-5 user rating sub-score.
	RatingWeight float64
	// DefaultRating substitutes for stations with no rating.
	DefaultRating float64
	// PowerWeight scales the usable-power sub-score, normalized against
	// IndustryMaxPowerKW.
	PowerWeight        float64
	IndustryMaxPowerKW float64
	// AvailabilityWeight scales the free-stall ratio sub-score.
	AvailabilityWeight float64
	// WaitWeightMinutes is the maximum wait-time sub-score, decreasing one
	// point per minute of expected wait.
	WaitWeightMinutes float64
	// DistanceWeight is the maximum distance sub-score; DistancePenaltyPerKm
	// is subtracted per kilometer of detour.
	DistanceWeight       float64
	DistancePenaltyPerKm float64

	// Preference bonuses, applied only when a preference set is supplied.
	NetworkBonus      float64
	FastChargeBonus   float64
	FastChargeMinKW   float64
	AmenityMatchBonus float64
}

// NewScorer returns a Scorer with the default weights.
func NewScorer() Scorer {
	return Scorer{
		RatingWeight:         20,
		DefaultRating:        3.0,
		PowerWeight:          25,
		IndustryMaxPowerKW:   350,
		AvailabilityWeight:   20,
		WaitWeightMinutes:    15,
		DistanceWeight:       20,
		DistancePenaltyPerKm: 2,
		NetworkBonus:         10,
		FastChargeBonus:      5,
		FastChargeMinKW:      150,
		AmenityMatchBonus:    2,
	}
}

// Score rates a station for the vehicle at the given position. The result is
// clamped to [0,100].
func (sc Scorer) Score(st model.ChargingStation, v model.VehicleProfile, pos model.Coordinate, prefs *model.RoutePreferences) float64 {
	var s float64

	rating := st.Rating
	if rating == 0 {
		rating = sc.DefaultRating
	}
	s += rating / 5 * sc.RatingWeight

	effectivePower := math.Min(st.PowerKW, v.MaxChargingPowerKW)
	s += effectivePower / sc.IndustryMaxPowerKW * sc.PowerWeight

	// Unknown stall counts count as fully available.
	ratio := 1.0
	if st.TotalStalls > 0 {
		ratio = float64(st.AvailableStalls) / float64(st.TotalStalls)
	}
	s += ratio * sc.AvailabilityWeight

	s += math.Max(0, sc.WaitWeightMinutes-st.WaitTimeMinutes)

	dist := model.Distance(pos, st.Location)
	s += math.Max(0, sc.DistanceWeight-dist*sc.DistancePenaltyPerKm)

	if prefs != nil {
		for _, n := range prefs.PreferredNetworks {
			if n == st.Network {
				s += sc.NetworkBonus
				break
			}
		}
		if prefs.PreferFastCharging && st.PowerKW >= sc.FastChargeMinKW {
			s += sc.FastChargeBonus
		}
		for _, want := range prefs.PreferredAmenities {
			for _, have := range st.Amenities {
				if want == have {
					s += sc.AmenityMatchBonus
					break
				}
			}
		}
	}

	return math.Min(100, math.Max(0, s))
}

// Best returns the highest-scoring station and its score. Ties keep the
// earlier candidate, so ordering of the input list is deterministic. The
// boolean is false for an empty candidate list.
func (sc Scorer) Best(stations []model.ChargingStation, v model.VehicleProfile, pos model.Coordinate, prefs *model.RoutePreferences) (model.ChargingStation, float64, bool) {
	if len(stations) == 0 {
		return model.ChargingStation{}, 0, false
	}
	best := stations[0]
	bestScore := sc.Score(best, v, pos, prefs)
	for _, st := range stations[1:] {
		if s := sc.Score(st, v, pos, prefs); s > bestScore {
			best, bestScore = st, s
		}
	}
	return best, bestScore, true
}
