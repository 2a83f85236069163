// Package vehicles exposes the vehicle-database endpoints.
package vehicles

import (
	"encoding/json"
	"net/http"

	corevehicles "github.com/ecarion/voltroute/core/vehicles"
)

// NewListHandler returns a handler for GET /api/vehicles. An optional q
// parameter resolves a single profile by id or fuzzy name.
func NewListHandler(src *corevehicles.Source) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if q := r.URL.Query().Get("q"); q != "" {
			profile, err := src.Resolve(q)
			if err != nil {
				w.WriteHeader(http.StatusNotFound)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
				return
			}
			_ = json.NewEncoder(w).Encode(profile)
			return
		}
		_ = json.NewEncoder(w).Encode(src.All())
	})
}
