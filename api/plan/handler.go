// Package plan exposes the route-planning HTTP endpoint.
package plan

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ecarion/voltroute/core/logger"
	"github.com/ecarion/voltroute/core/metrics"
	"github.com/ecarion/voltroute/core/model"
	"github.com/ecarion/voltroute/core/planner"
	"github.com/ecarion/voltroute/core/routing"
	"github.com/ecarion/voltroute/core/vehicles"
)

// Request is the payload of POST /api/route/plan.
type Request struct {
	Start       model.Coordinate `json:"start"`
	Destination model.Coordinate `json:"destination"`

	// Vehicle selects a profile from the vehicle database by id or
	// free-form name. A full inline profile wins over the lookup.
	Vehicle        string                `json:"vehicle,omitempty"`
	VehicleProfile *model.VehicleProfile `json:"vehicle_profile,omitempty"`

	CurrentBatteryPercent  float64 `json:"current_battery_percent"`
	MinChargePercent       float64 `json:"min_charge_percent,omitempty"`
	PreferredChargePercent float64 `json:"preferred_charge_percent,omitempty"`

	Preferences *model.RoutePreferences `json:"preferences,omitempty"`
	PerSegment  bool                    `json:"per_segment,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves route-planning requests.
type Handler struct {
	planner  *planner.Planner
	vehicles *vehicles.Source
	provider routing.Provider
	sink     metrics.PlanningSink
	log      logger.Logger
}

// NewHandler wires the planning endpoint. provider may be nil; sink may be
// nil for no recording.
func NewHandler(p *planner.Planner, src *vehicles.Source, provider routing.Provider, sink metrics.PlanningSink, log logger.Logger) *Handler {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Handler{planner: p, vehicles: src, provider: provider, sink: sink, log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}

	profile, err := h.resolveVehicle(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	preq := planner.Request{
		Start:                  req.Start,
		Destination:            req.Destination,
		Vehicle:                profile,
		CurrentBatteryPercent:  req.CurrentBatteryPercent,
		MinChargePercent:       req.MinChargePercent,
		PreferredChargePercent: req.PreferredChargePercent,
		Preferences:            req.Preferences,
		PerSegment:             req.PerSegment,
	}
	if err := preq.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	started := time.Now()
	res := h.planner.PlanStops(r.Context(), preq)
	data := h.fetchRoute(r.Context(), preq, res)
	plan := planner.BuildPlan(preq, res, data)

	if err := h.sink.RecordPlan(metrics.PlanRecord{
		PlanID:          plan.PlanID,
		Feasible:        res.Feasible,
		Stops:           len(res.Stops),
		TotalDistanceKm: plan.TotalDistanceKm,
		ChargingMinutes: plan.TotalChargingTimeMinutes,
		EstimatedCost:   plan.EstimatedTotalCost,
		Duration:        time.Since(started),
		Time:            started,
	}); err != nil {
		h.log.Warnf("plan metrics: %v", err)
	}

	h.log.Infof("plan %s: feasible=%v stops=%d distance=%.0fkm",
		plan.PlanID, res.Feasible, len(res.Stops), plan.TotalDistanceKm)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(plan); err != nil {
		h.log.Errorf("encode plan response: %v", err)
	}
}

func (h *Handler) resolveVehicle(req Request) (model.VehicleProfile, error) {
	if req.VehicleProfile != nil {
		p := *req.VehicleProfile
		p.Normalize()
		return p, nil
	}
	return h.vehicles.Resolve(req.Vehicle)
}

// fetchRoute asks the routing provider for geometry and timing over the
// planned waypoints. Any failure degrades to the built-in estimate.
func (h *Handler) fetchRoute(ctx context.Context, req planner.Request, res planner.Result) *routing.RouteData {
	if h.provider == nil {
		return nil
	}
	waypoints := make([]model.Coordinate, 0, len(res.Stops)+2)
	waypoints = append(waypoints, req.Start)
	for _, stop := range res.Stops {
		waypoints = append(waypoints, stop.Station.Location)
	}
	waypoints = append(waypoints, req.Destination)

	started := time.Now()
	data, err := h.provider.Route(ctx, waypoints)
	ev := metrics.ProviderEvent{
		Provider: "routing",
		Fallback: err != nil,
		Duration: time.Since(started),
		Time:     started,
	}
	if rec, ok := h.sink.(metrics.ProviderRecorder); ok {
		if rerr := rec.RecordProviderCall(ev); rerr != nil {
			h.log.Warnf("provider metrics: %v", rerr)
		}
	}
	if err != nil {
		h.log.Warnf("routing provider failed, using straight-line estimate: %v", err)
		return nil
	}
	return data
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
