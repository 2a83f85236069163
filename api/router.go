// Package api assembles the HTTP routing table.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ecarion/voltroute/api/plan"
	"github.com/ecarion/voltroute/api/stations"
	"github.com/ecarion/voltroute/api/vehicles"
	corevehicles "github.com/ecarion/voltroute/core/vehicles"
)

// NewRouter builds the service router. All endpoints live under /api.
func NewRouter(planHandler *plan.Handler, stationHandler *stations.Handler, vehicleSource *corevehicles.Source) *mux.Router {
	r := mux.NewRouter()

	r.Handle("/api/route/plan", planHandler).Methods(http.MethodPost)

	r.HandleFunc("/api/stations", stationHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/api/stations/nearby", stationHandler.Nearby).Methods(http.MethodGet)
	r.HandleFunc("/api/stations/recommend", stationHandler.Recommend).Methods(http.MethodGet)

	r.Handle("/api/vehicles", vehicles.NewListHandler(vehicleSource)).Methods(http.MethodGet)

	r.HandleFunc("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	return r
}
