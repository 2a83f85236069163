package planner

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"

	"github.com/ecarion/voltroute/core/model"
	"github.com/ecarion/voltroute/core/routing"
	"github.com/ecarion/voltroute/core/segment"
)

// BuildPlan assembles the final RoutePlan from a planning result and an
// optional routing-provider response. Pure aggregation, no decision logic:
// everything the provider does not supply is estimated from the waypoint
// chord at the default average speed.
func BuildPlan(req Request, res Result, data *routing.RouteData) model.RoutePlan {
	waypoints := make([]model.Waypoint, 0, len(res.Stops)+2)
	waypoints = append(waypoints, model.Waypoint{
		Type:     model.WaypointStart,
		Location: req.Start,
		Name:     "Start",
	})
	for _, stop := range res.Stops {
		waypoints = append(waypoints, model.Waypoint{
			Type:      model.WaypointCharging,
			Location:  stop.Station.Location,
			Name:      stop.Station.Name,
			StationID: stop.Station.ID,
		})
	}
	waypoints = append(waypoints, model.Waypoint{
		Type:     model.WaypointEnd,
		Location: req.Destination,
		Name:     "Destination",
	})

	coords := make([]model.Coordinate, len(waypoints))
	for i, wp := range waypoints {
		coords[i] = wp.Location
	}

	withTraffic := data != nil
	if data == nil {
		data = routing.StraightLine(coords, segment.DefaultAvgSpeedKmh)
	}

	chargingMinutes := make([]float64, len(res.Stops))
	costs := make([]float64, len(res.Stops))
	for i, stop := range res.Stops {
		chargingMinutes[i] = stop.ChargingTimeMinutes
		costs[i] = stop.EstimatedCost
	}
	totalCharging := floats.Sum(chargingMinutes)
	totalCost := floats.Sum(costs)

	return model.RoutePlan{
		PlanID:  uuid.NewString(),
		Success: res.Feasible,
		Message: res.Reason,

		Waypoints:     waypoints,
		ChargingStops: res.Stops,

		TotalDistanceKm:          data.DistanceKm,
		DrivingTimeMinutes:       data.TimeMinutes,
		TrafficDelayMinutes:      data.TrafficDelayMinutes,
		TotalChargingTimeMinutes: totalCharging,
		TotalTimeMinutes:         data.TimeMinutes + totalCharging,
		TotalEnergyConsumedKWh:   res.TotalEnergyConsumedKWh,
		FinalBatteryPercent:      res.FinalBatteryPercent,
		EstimatedTotalCost:       totalCost,

		Polyline:    data.Polyline,
		WithTraffic: withTraffic,
	}
}
