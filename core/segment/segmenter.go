// Package segment divides a start/destination pair into an ordered sequence
// of travel segments.
//
// The geometry is a chord between the two points: a placeholder for real
// road geometry. Any replacement must preserve the ordered-segments contract
// so the planner stays unchanged.
package segment

import (
	"math"

	"github.com/ecarion/voltroute/core/model"
)

// DefaultSegmentLengthKm is the target length of one segment.
const DefaultSegmentLengthKm = 100.0

// DefaultAvgSpeedKmh is assumed when no routing provider supplies
// per-segment speeds.
const DefaultAvgSpeedKmh = 80.0

// Route splits the straight line from start to dest into max(2,
// round(total/segmentLengthKm)) equal pieces. A non-positive segmentLengthKm
// falls back to the default. Segments carry the default speed and zero
// elevation; callers with provider data overlay their own attributes.
func Route(start, dest model.Coordinate, segmentLengthKm float64) []model.RouteSegment {
	if segmentLengthKm <= 0 {
		segmentLengthKm = DefaultSegmentLengthKm
	}
	total := model.Distance(start, dest)
	n := int(math.Round(total / segmentLengthKm))
	if n < 2 {
		n = 2
	}

	segments := make([]model.RouteSegment, 0, n)
	for i := 0; i < n; i++ {
		a := interpolate(start, dest, float64(i)/float64(n))
		b := interpolate(start, dest, float64(i+1)/float64(n))
		segments = append(segments, model.RouteSegment{
			Start:       a,
			End:         b,
			DistanceKm:  total / float64(n),
			AvgSpeedKmh: DefaultAvgSpeedKmh,
		})
	}
	return segments
}

// TotalDistanceKm sums the segment distances.
func TotalDistanceKm(segments []model.RouteSegment) float64 {
	var total float64
	for _, s := range segments {
		total += s.DistanceKm
	}
	return total
}

func interpolate(a, b model.Coordinate, t float64) model.Coordinate {
	return model.Coordinate{
		Lat: a.Lat + (b.Lat-a.Lat)*t,
		Lon: a.Lon + (b.Lon-a.Lon)*t,
	}
}
