// Package routing provides routing-provider adapters for the core planner:
// a TomTom client with live traffic and a Google Maps client. Both are soft
// dependencies; callers fall back to the built-in straight-line estimate
// when a provider errors out.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ecarion/voltroute/core/logger"
	"github.com/ecarion/voltroute/core/model"
	"github.com/ecarion/voltroute/core/routing"
)

// DefaultTomTomBaseURL is the production routing endpoint.
const DefaultTomTomBaseURL = "https://api.tomtom.com/routing/1/calculateRoute"

// TomTom calls the TomTom routing API with real-time traffic enabled.
type TomTom struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     logger.Logger
}

// NewTomTom builds a TomTom adapter. An empty baseURL selects the production
// endpoint.
func NewTomTom(baseURL, apiKey string, log logger.Logger) *TomTom {
	if baseURL == "" {
		baseURL = DefaultTomTomBaseURL
	}
	return &TomTom{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

type tomtomResponse struct {
	Routes []struct {
		Summary struct {
			LengthInMeters        float64 `json:"lengthInMeters"`
			TravelTimeInSeconds   float64 `json:"travelTimeInSeconds"`
			TrafficDelayInSeconds float64 `json:"trafficDelayInSeconds"`
		} `json:"summary"`
		Legs []struct {
			Points []struct {
				Latitude  float64 `json:"latitude"`
				Longitude float64 `json:"longitude"`
			} `json:"points"`
		} `json:"legs"`
	} `json:"routes"`
}

// Route fetches the driving route through the waypoints with traffic data.
func (t *TomTom) Route(ctx context.Context, waypoints []model.Coordinate) (*routing.RouteData, error) {
	if len(waypoints) < 2 {
		return nil, fmt.Errorf("tomtom: need at least 2 waypoints, got %d", len(waypoints))
	}

	locs := make([]string, len(waypoints))
	for i, wp := range waypoints {
		locs[i] = fmt.Sprintf("%f,%f", wp.Lat, wp.Lon)
	}

	q := url.Values{
		"key":               {t.apiKey},
		"traffic":           {"true"},
		"routeType":         {"fastest"},
		"travelMode":        {"car"},
		"vehicleEngineType": {"electric"},
	}
	reqURL := fmt.Sprintf("%s/%s/json?%s", t.baseURL, strings.Join(locs, ":"), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("tomtom: build request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tomtom: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tomtom: status %d", resp.StatusCode)
	}

	var body tomtomResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("tomtom: decode: %w", err)
	}
	if len(body.Routes) == 0 {
		return nil, fmt.Errorf("tomtom: no routes in response")
	}

	rt := body.Routes[0]
	var poly []model.Coordinate
	for _, leg := range rt.Legs {
		for _, p := range leg.Points {
			poly = append(poly, model.Coordinate{Lat: p.Latitude, Lon: p.Longitude})
		}
	}

	t.log.Debugf("tomtom: %d waypoints, %.1f km, %.0f min",
		len(waypoints), rt.Summary.LengthInMeters/1000, rt.Summary.TravelTimeInSeconds/60)

	return &routing.RouteData{
		Polyline:            poly,
		DistanceKm:          rt.Summary.LengthInMeters / 1000,
		TimeMinutes:         rt.Summary.TravelTimeInSeconds / 60,
		TrafficDelayMinutes: rt.Summary.TrafficDelayInSeconds / 60,
	}, nil
}
