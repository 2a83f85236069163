package model

// RouteSegment is one piece of a route geometry. Segments are produced once
// per planning call and are immutable afterwards.
type RouteSegment struct {
	Start      Coordinate `json:"start"`
	End        Coordinate `json:"end"`
	DistanceKm float64    `json:"distance_km"`

	// Optional attributes supplied by a routing provider, defaulted
	// deterministically when absent.
	ElevationGainM float64 `json:"elevation_gain_m,omitempty"`
	AvgSpeedKmh    float64 `json:"avg_speed_kmh,omitempty"`
}

// ChargingStop records one planned stop, ordered by position along the route.
type ChargingStop struct {
	Station ChargingStation `json:"station"`

	DistanceFromStartKm     float64 `json:"distance_from_start_km"`
	DistanceToDestinationKm float64 `json:"distance_to_destination_km"`
	DetourKm                float64 `json:"detour_km"`

	BatteryPercentOnArrival   float64 `json:"battery_percent_on_arrival"`
	BatteryPercentAfterCharge float64 `json:"battery_percent_after_charge"`
	EnergyAddedKWh            float64 `json:"energy_added_kwh"`
	ChargingTimeMinutes       float64 `json:"charging_time_minutes"`
	EstimatedCost             float64 `json:"estimated_cost"`
}

// WaypointType classifies a waypoint in the final plan.
type WaypointType string

const (
	WaypointStart    WaypointType = "start"
	WaypointCharging WaypointType = "charging"
	WaypointEnd      WaypointType = "end"
)

// Waypoint is one point of the rendered route.
type Waypoint struct {
	Type     WaypointType `json:"type"`
	Location Coordinate   `json:"location"`
	Name     string       `json:"name"`
	// StationID is set for charging waypoints.
	StationID string `json:"station_id,omitempty"`
}

// RoutePlan is the terminal artifact of one planning call. Immutable once
// returned.
type RoutePlan struct {
	PlanID  string `json:"plan_id"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`

	Waypoints     []Waypoint     `json:"waypoints"`
	ChargingStops []ChargingStop `json:"charging_stops"`

	TotalDistanceKm          float64 `json:"total_distance_km"`
	DrivingTimeMinutes       float64 `json:"driving_time_minutes"`
	TrafficDelayMinutes      float64 `json:"traffic_delay_minutes,omitempty"`
	TotalChargingTimeMinutes float64 `json:"total_charging_time_minutes"`
	TotalTimeMinutes         float64 `json:"total_time_minutes"`
	TotalEnergyConsumedKWh   float64 `json:"total_energy_consumed_kwh"`
	FinalBatteryPercent      float64 `json:"final_battery_percent"`
	EstimatedTotalCost       float64 `json:"estimated_total_cost"`

	// Polyline is the route geometry, provider-supplied when available,
	// otherwise the chord through the waypoints.
	Polyline []Coordinate `json:"route_coordinates"`
	// WithTraffic reports whether a routing provider contributed live data.
	WithTraffic bool `json:"with_traffic"`
}

// RoutePreferences tune station selection. All fields are optional.
type RoutePreferences struct {
	PreferredNetworks  []string `json:"preferred_networks,omitempty"`
	PreferFastCharging bool     `json:"prefer_fast_charging,omitempty"`
	PreferredAmenities []string `json:"preferred_amenities,omitempty"`
}
