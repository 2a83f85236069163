// Package stations exposes the charging-station query endpoints.
package stations

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ecarion/voltroute/core/catalog"
	"github.com/ecarion/voltroute/core/logger"
	"github.com/ecarion/voltroute/core/model"
	"github.com/ecarion/voltroute/core/score"
	"github.com/ecarion/voltroute/core/vehicles"
)

// DefaultRadiusKm bounds a nearby query when the client does not give one.
const DefaultRadiusKm = 50.0

// Handler serves station queries over the loaded catalog.
type Handler struct {
	catalog  *catalog.Catalog
	vehicles *vehicles.Source
	scorer   score.Scorer
	log      logger.Logger
}

// NewHandler wires the station endpoints.
func NewHandler(cat *catalog.Catalog, src *vehicles.Source, log logger.Logger) *Handler {
	return &Handler{catalog: cat, vehicles: src, scorer: score.NewScorer(), log: log}
}

// List handles GET /api/stations with optional city, min_kw and max_kw
// filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var stations []model.ChargingStation
	if city := r.URL.Query().Get("city"); city != "" {
		stations = h.catalog.ByCity(city)
	} else {
		stations = h.catalog.All()
	}

	minKW, err := queryFloat(r, "min_kw", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "min_kw: "+err.Error())
		return
	}
	maxKW, err := queryFloat(r, "max_kw", 1000)
	if err != nil {
		writeError(w, http.StatusBadRequest, "max_kw: "+err.Error())
		return
	}
	if minKW > 0 || maxKW < 1000 {
		stations = catalog.InPowerRange(stations, minKW, maxKW)
	}

	writeJSON(w, stations)
}

// Nearby handles GET /api/stations/nearby?lat=..&lon=..&radius_km=..,
// returning stations sorted by distance.
func (h *Handler) Nearby(w http.ResponseWriter, r *http.Request) {
	center, ok := queryCoordinate(w, r)
	if !ok {
		return
	}
	radius, err := queryFloat(r, "radius_km", DefaultRadiusKm)
	if err != nil {
		writeError(w, http.StatusBadRequest, "radius_km: "+err.Error())
		return
	}
	writeJSON(w, h.catalog.WithinRadius(center, radius))
}

type recommendation struct {
	Station model.ChargingStation `json:"station"`
	Score   float64               `json:"score"`
}

// Recommend handles GET /api/stations/recommend?lat=..&lon=..&vehicle=..,
// returning compatible nearby stations ranked by quality score.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	center, ok := queryCoordinate(w, r)
	if !ok {
		return
	}
	vehicle, err := h.vehicles.Resolve(r.URL.Query().Get("vehicle"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	radius, err := queryFloat(r, "radius_km", DefaultRadiusKm)
	if err != nil {
		writeError(w, http.StatusBadRequest, "radius_km: "+err.Error())
		return
	}

	nearby := catalog.CompatibleWith(h.catalog.WithinRadius(center, radius), vehicle)
	recs := make([]recommendation, 0, len(nearby))
	for _, st := range nearby {
		recs = append(recs, recommendation{
			Station: st,
			Score:   h.scorer.Score(st, vehicle, center, nil),
		})
	}
	// WithinRadius sorts by distance; re-rank by score, stable on ties.
	for i := 1; i < len(recs); i++ {
		for j := i; j > 0 && recs[j-1].Score < recs[j].Score; j-- {
			recs[j-1], recs[j] = recs[j], recs[j-1]
		}
	}
	writeJSON(w, recs)
}

func queryCoordinate(w http.ResponseWriter, r *http.Request) (model.Coordinate, bool) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "lat: invalid or missing")
		return model.Coordinate{}, false
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "lon: invalid or missing")
		return model.Coordinate{}, false
	}
	c := model.Coordinate{Lat: lat, Lon: lon}
	if err := c.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return model.Coordinate{}, false
	}
	return c, true
}

func queryFloat(r *http.Request, name string, def float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
