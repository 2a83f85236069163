// Package planner implements the charging-stop placement algorithm: a
// greedy, single forward pass along the route that tracks the battery
// budget, scores reachable stations and emits stops until the destination
// is within range.
package planner

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/ecarion/voltroute/core/catalog"
	"github.com/ecarion/voltroute/core/energy"
	"github.com/ecarion/voltroute/core/logger"
	"github.com/ecarion/voltroute/core/model"
	"github.com/ecarion/voltroute/core/score"
	"github.com/ecarion/voltroute/core/segment"
)

// Request is one planning call. Percent fields use the 0-100 convention
// throughout the core.
type Request struct {
	Start       model.Coordinate
	Destination model.Coordinate
	Vehicle     model.VehicleProfile

	CurrentBatteryPercent float64
	// MinChargePercent and PreferredChargePercent override the configured
	// defaults when non-zero.
	MinChargePercent       float64
	PreferredChargePercent float64

	Preferences *model.RoutePreferences

	// PerSegment enables the detailed per-segment energy analysis instead
	// of the single-leg range budget.
	PerSegment bool
}

// Validate rejects malformed requests before the planning loop runs.
func (r Request) Validate() error {
	if err := r.Start.Validate(); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if err := r.Destination.Validate(); err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	if err := r.Vehicle.Validate(); err != nil {
		return fmt.Errorf("vehicle: %w", err)
	}
	if r.CurrentBatteryPercent <= 0 || r.CurrentBatteryPercent > 100 {
		return fmt.Errorf("current battery percent %v out of range (0,100]", r.CurrentBatteryPercent)
	}
	if r.MinChargePercent < 0 || r.MinChargePercent >= 100 {
		return fmt.Errorf("min charge percent %v out of range [0,100)", r.MinChargePercent)
	}
	if r.PreferredChargePercent < 0 || r.PreferredChargePercent > 100 {
		return fmt.Errorf("preferred charge percent %v out of range [0,100]", r.PreferredChargePercent)
	}
	return nil
}

// Result is the planner's outcome. Infeasibility is a normal result, never
// an error: Stops carries whatever was placed before planning stalled and
// Reason explains why.
type Result struct {
	Stops    []model.ChargingStop
	Feasible bool
	Reason   string

	TotalDistanceKm        float64
	TotalEnergyConsumedKWh float64
	FinalBatteryPercent    float64
}

// Planner places charging stops. Each call is stateless; one Planner may
// serve concurrent requests over its read-only catalog.
type Planner struct {
	catalog *catalog.Catalog
	scorer  score.Scorer
	energy  energy.Model
	cfg     Config
	log     logger.Logger
}

// New creates a Planner over the given catalog. The config is defaulted and
// validated once here.
func New(cat *catalog.Catalog, cfg Config, log logger.Logger) (*Planner, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("planner config: %w", err)
	}
	return &Planner{
		catalog: cat,
		scorer:  score.NewScorer(),
		energy:  energy.NewModel(),
		cfg:     cfg,
		log:     log,
	}, nil
}

// Energy exposes the planner's energy model for estimate endpoints.
func (p *Planner) Energy() energy.Model { return p.energy }

// Config returns the effective configuration.
func (p *Planner) Config() Config { return p.cfg }

// candidate pairs a station with its per-iteration geometry.
type candidate struct {
	station  model.ChargingStation
	distKm   float64
	toDestKm float64
	detourKm float64
}

// PlanStops runs the greedy placement loop. The context bounds nothing here
// today (the loop is pure computation) but keeps the signature stable for
// callers that thread cancellation through.
func (p *Planner) PlanStops(ctx context.Context, req Request) Result {
	_ = ctx

	minPct := req.MinChargePercent
	if minPct == 0 {
		minPct = p.cfg.MinChargePercent
	}
	prefPct := req.PreferredChargePercent
	if prefPct == 0 {
		prefPct = p.cfg.PreferredChargePercent
	}

	// The simple mode budgets against the rated range; the per-segment mode
	// budgets against the consumption-derived range so depletion and budget
	// agree.
	vehicleRange := energy.RangeKm(req.Vehicle)
	if req.PerSegment {
		vehicleRange = req.Vehicle.BatteryCapacityKWh / req.Vehicle.ConsumptionKWhPer100Km * 100
	}
	totalDistance := model.Distance(req.Start, req.Destination)

	res := Result{TotalDistanceKm: totalDistance}

	current := req.Start
	battery := req.CurrentBatteryPercent
	traveled := 0.0

	compatible := catalog.CompatibleWith(p.catalog.All(), req.Vehicle)
	if p.catalog.Len() == 0 || len(compatible) == 0 {
		// Treated as infeasibility from the first iteration unless the trip
		// fits in the battery as-is.
		if totalDistance <= usableRange(vehicleRange, battery, minPct) {
			res.Feasible = true
			res.Reason = "no charging stops needed"
			res.TotalEnergyConsumedKWh = p.legEnergy(current, req.Destination, req.Vehicle, req.PerSegment)
			res.FinalBatteryPercent = battery - p.legBatteryUsed(current, req.Destination, req.Vehicle, vehicleRange, req.PerSegment)
			return res
		}
		res.Reason = "no compatible charging stations available"
		return res
	}

	for iter := 0; ; iter++ {
		toDest := model.Distance(current, req.Destination)
		remainingRange := usableRange(vehicleRange, battery, minPct)

		if toDest <= remainingRange {
			res.Feasible = true
			if len(res.Stops) == 0 {
				res.Reason = "no charging stops needed"
			}
			break
		}

		if iter >= p.cfg.MaxStops || len(res.Stops) >= p.cfg.MaxStops {
			p.log.Warnf("stop ceiling reached after %d stops", len(res.Stops))
			res.Reason = fmt.Sprintf("stop ceiling of %d reached before destination", p.cfg.MaxStops)
			break
		}

		cands := p.collectCandidates(current, req.Destination, compatible, remainingRange)
		if len(cands) == 0 {
			p.log.Warnf("no reachable charging station after %.0f km", traveled)
			res.Reason = "no reachable compatible charging station within range and detour limits"
			break
		}

		best := p.selectBest(cands, req.Vehicle, current, req.Preferences)

		// Battery spent reaching the station.
		legKWh := p.legEnergy(current, best.station.Location, req.Vehicle, req.PerSegment)
		arrival := battery - p.legBatteryUsed(current, best.station.Location, req.Vehicle, vehicleRange, req.PerSegment)
		if arrival < minPct {
			arrival = minPct
		}

		addedKWh := energy.EnergyToCharge(arrival, prefPct, req.Vehicle.BatteryCapacityKWh)
		chargeMinutes := p.energy.ChargingTimeMinutes(addedKWh, req.Vehicle, best.station.PowerKW)

		traveled += best.distKm
		res.TotalEnergyConsumedKWh += legKWh
		res.Stops = append(res.Stops, model.ChargingStop{
			Station:                   best.station,
			DistanceFromStartKm:       traveled,
			DistanceToDestinationKm:   best.toDestKm,
			DetourKm:                  best.detourKm,
			BatteryPercentOnArrival:   arrival,
			BatteryPercentAfterCharge: prefPct,
			EnergyAddedKWh:            addedKWh,
			ChargingTimeMinutes:       chargeMinutes,
			EstimatedCost:             addedKWh * best.station.PricePerKWh,
		})

		current = best.station.Location
		battery = prefPct
	}

	res.TotalEnergyConsumedKWh += p.legEnergy(current, req.Destination, req.Vehicle, req.PerSegment)
	res.FinalBatteryPercent = battery - p.legBatteryUsed(current, req.Destination, req.Vehicle, vehicleRange, req.PerSegment)
	if res.FinalBatteryPercent < 0 {
		res.FinalBatteryPercent = 0
	}
	return res
}

func usableRange(rangeKm, currentPct, minPct float64) float64 {
	r := rangeKm * (currentPct - minPct) / 100
	if r < 0 {
		return 0
	}
	return r
}

// legBatteryUsed mirrors legEnergy: range-budget depletion in simple mode,
// energy-model depletion in per-segment mode.
func (p *Planner) legBatteryUsed(from, to model.Coordinate, v model.VehicleProfile, rangeKm float64, perSegment bool) float64 {
	if !perSegment {
		return model.Distance(from, to) / rangeKm * 100
	}
	return energy.BatteryDelta(p.legEnergy(from, to, v, true), v.BatteryCapacityKWh)
}

// collectCandidates gathers compatible stations inside the reachable window:
// far enough to be worth a stop, close enough to keep the safety buffer, and
// with an acceptable detour.
func (p *Planner) collectCandidates(current, dest model.Coordinate, stations []model.ChargingStation, remainingRange float64) []candidate {
	direct := model.Distance(current, dest)
	var cands []candidate
	for _, st := range stations {
		dist := model.Distance(current, st.Location)
		if dist < p.cfg.MinLegKm {
			continue
		}
		if dist > remainingRange*p.cfg.RangeSafetyFactor {
			continue
		}
		toDest := model.Distance(st.Location, dest)
		detour := dist + toDest - direct
		if detour > p.cfg.MaxDetourKm {
			continue
		}
		cands = append(cands, candidate{station: st, distKm: dist, toDestKm: toDest, detourKm: detour})
	}
	return cands
}

// selectBest applies the progress-vs-detour objective: maximal forward
// progress at minimal detour. This is deliberately distinct from the quality
// Scorer, which only breaks exact objective ties.
func (p *Planner) selectBest(cands []candidate, v model.VehicleProfile, pos model.Coordinate, prefs *model.RoutePreferences) candidate {
	scores := make([]float64, len(cands))
	for i, c := range cands {
		scores[i] = c.distKm*p.cfg.ProgressWeight - c.detourKm*p.cfg.DetourWeight
	}
	bestIdx := floats.MaxIdx(scores)
	best := cands[bestIdx]
	bestQuality := -1.0
	for i, c := range cands {
		if i == bestIdx || scores[i] != scores[bestIdx] {
			continue
		}
		if bestQuality < 0 {
			bestQuality = p.scorer.Score(best.station, v, pos, prefs)
		}
		if q := p.scorer.Score(c.station, v, pos, prefs); q > bestQuality {
			best, bestQuality = c, q
		}
	}
	return best
}

// legEnergy computes driving energy between two points, either as a blanket
// estimate over the direct distance or segment by segment.
func (p *Planner) legEnergy(from, to model.Coordinate, v model.VehicleProfile, perSegment bool) float64 {
	if !perSegment {
		return model.Distance(from, to) * v.ConsumptionKWhPer100Km / 100
	}
	var total float64
	for _, seg := range segment.Route(from, to, p.cfg.SegmentLengthKm) {
		total += p.energy.SegmentEnergy(seg, v)
	}
	return total
}
