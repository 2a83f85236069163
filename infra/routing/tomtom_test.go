package routing

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ecarion/voltroute/core/model"
	"github.com/ecarion/voltroute/infra/logger"
)

func TestTomTomRoute(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"routes": [{
				"summary": {
					"lengthInMeters": 152300,
					"travelTimeInSeconds": 6060,
					"trafficDelayInSeconds": 720
				},
				"legs": [{
					"points": [
						{"latitude": 40.7128, "longitude": -74.0060},
						{"latitude": 39.9526, "longitude": -75.1652}
					]
				}]
			}]
		}`))
	}))
	defer srv.Close()

	tt := NewTomTom(srv.URL, "test-key", &logger.NopLogger{})
	data, err := tt.Route(context.Background(), []model.Coordinate{
		{Lat: 40.7128, Lon: -74.0060},
		{Lat: 39.9526, Lon: -75.1652},
	})
	if err != nil {
		t.Fatalf("Route: %v", err)
	}

	if gotKey != "test-key" {
		t.Errorf("api key = %q", gotKey)
	}
	if !strings.Contains(gotPath, ":") || !strings.HasSuffix(gotPath, "/json") {
		t.Errorf("request path = %q", gotPath)
	}
	if math.Abs(data.DistanceKm-152.3) > 1e-9 {
		t.Errorf("distance = %.2f", data.DistanceKm)
	}
	if math.Abs(data.TimeMinutes-101) > 1e-9 {
		t.Errorf("time = %.2f", data.TimeMinutes)
	}
	if math.Abs(data.TrafficDelayMinutes-12) > 1e-9 {
		t.Errorf("traffic delay = %.2f", data.TrafficDelayMinutes)
	}
	if len(data.Polyline) != 2 {
		t.Errorf("polyline points = %d", len(data.Polyline))
	}
}

func TestTomTomRouteErrors(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		tt := NewTomTom(srv.URL, "bad-key", &logger.NopLogger{})
		if _, err := tt.Route(context.Background(), []model.Coordinate{{}, {Lat: 1}}); err == nil {
			t.Error("expected status error")
		}
	})

	t.Run("no routes", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"routes": []}`))
		}))
		defer srv.Close()

		tt := NewTomTom(srv.URL, "k", &logger.NopLogger{})
		if _, err := tt.Route(context.Background(), []model.Coordinate{{}, {Lat: 1}}); err == nil {
			t.Error("expected no-routes error")
		}
	})

	t.Run("too few waypoints", func(t *testing.T) {
		tt := NewTomTom("", "k", &logger.NopLogger{})
		if _, err := tt.Route(context.Background(), []model.Coordinate{{}}); err == nil {
			t.Error("expected waypoint-count error")
		}
	})
}
