package routing

import (
	"context"
	"fmt"

	maps "googlemaps.github.io/maps"

	"github.com/ecarion/voltroute/core/logger"
	"github.com/ecarion/voltroute/core/model"
	"github.com/ecarion/voltroute/core/routing"
)

// directionsAPI is the slice of the maps client the adapter uses.
type directionsAPI interface {
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

// Google adapts the Google Maps Directions API to the routing provider
// contract. Traffic delay is not modeled; the duration already reflects
// typical conditions.
type Google struct {
	client directionsAPI
	log    logger.Logger
}

// NewGoogle dials the Maps API with the given key.
func NewGoogle(apiKey string, log logger.Logger) (*Google, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("google routing: %w", err)
	}
	return &Google{client: client, log: log}, nil
}

// Route fetches driving directions through the waypoints.
func (g *Google) Route(ctx context.Context, waypoints []model.Coordinate) (*routing.RouteData, error) {
	if len(waypoints) < 2 {
		return nil, fmt.Errorf("google routing: need at least 2 waypoints, got %d", len(waypoints))
	}

	dr := &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", waypoints[0].Lat, waypoints[0].Lon),
		Destination: fmt.Sprintf("%f,%f", waypoints[len(waypoints)-1].Lat, waypoints[len(waypoints)-1].Lon),
		Mode:        maps.TravelModeDriving,
	}
	for _, wp := range waypoints[1 : len(waypoints)-1] {
		dr.Waypoints = append(dr.Waypoints, fmt.Sprintf("%f,%f", wp.Lat, wp.Lon))
	}

	routes, _, err := g.client.Directions(ctx, dr)
	if err != nil {
		return nil, fmt.Errorf("google routing: directions: %w", err)
	}
	if len(routes) == 0 {
		return nil, fmt.Errorf("google routing: no routes")
	}

	rt := routes[0]
	data := &routing.RouteData{}
	for _, leg := range rt.Legs {
		data.DistanceKm += float64(leg.Distance.Meters) / 1000
		data.TimeMinutes += leg.Duration.Minutes()
		for _, step := range leg.Steps {
			data.Polyline = append(data.Polyline, model.Coordinate{
				Lat: step.StartLocation.Lat,
				Lon: step.StartLocation.Lng,
			})
		}
		data.Polyline = append(data.Polyline, model.Coordinate{
			Lat: leg.EndLocation.Lat,
			Lon: leg.EndLocation.Lng,
		})
	}

	g.log.Debugf("google routing: %d waypoints, %.1f km, %.0f min",
		len(waypoints), data.DistanceKm, data.TimeMinutes)
	return data, nil
}
