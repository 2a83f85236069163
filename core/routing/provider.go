// Package routing defines the boundary to an external routing/traffic
// provider. Providers are a soft dependency: when one is absent, slow or
// failing, planning falls back to built-in estimates.
package routing

import (
	"context"

	"github.com/ecarion/voltroute/core/model"
)

// RouteData is the provider's view of a driving route through an ordered
// list of waypoints.
type RouteData struct {
	Polyline            []model.Coordinate
	DistanceKm          float64
	TimeMinutes         float64
	TrafficDelayMinutes float64
}

// Provider fetches route geometry and timing for an ordered coordinate list
// (start, stops..., destination).
type Provider interface {
	Route(ctx context.Context, waypoints []model.Coordinate) (*RouteData, error)
}

// StraightLine builds fallback RouteData from the waypoints themselves using
// great-circle distances and a constant average speed.
func StraightLine(waypoints []model.Coordinate, avgSpeedKmh float64) *RouteData {
	var dist float64
	for i := 1; i < len(waypoints); i++ {
		dist += model.Distance(waypoints[i-1], waypoints[i])
	}
	poly := make([]model.Coordinate, len(waypoints))
	copy(poly, waypoints)
	return &RouteData{
		Polyline:    poly,
		DistanceKm:  dist,
		TimeMinutes: dist / avgSpeedKmh * 60,
	}
}
