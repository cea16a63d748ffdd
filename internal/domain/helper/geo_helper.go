package helper

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/simplify"

	"AreaHelper-App/internal/domain/model"
)

const (
	earthRadiusMeters = 6371008.8
	metersPerMile     = 1609.344
)

// FeatureAreaSqM computes the planar area of a polygon feature in
// square meters. Non-polygon features are rejected so aggregation can
// skip them per item.
func FeatureAreaSqM(f *geojson.Feature) (float64, error) {
	switch f.Geometry.(type) {
	case orb.Polygon, orb.MultiPolygon:
		return math.Abs(geo.Area(f.Geometry)), nil
	}
	return 0, fmt.Errorf("feature geometry %T is not a polygon", f.Geometry)
}

// FeaturePerimeterKm converts a polygon feature's boundary to lines and
// returns the total length in kilometers.
func FeaturePerimeterKm(f *geojson.Feature) (float64, error) {
	var meters float64
	switch g := f.Geometry.(type) {
	case orb.Polygon:
		for _, ring := range g {
			meters += geo.Length(orb.LineString(ring))
		}
	case orb.MultiPolygon:
		for _, poly := range g {
			for _, ring := range poly {
				meters += geo.Length(orb.LineString(ring))
			}
		}
	default:
		return 0, fmt.Errorf("feature geometry %T is not a polygon", f.Geometry)
	}
	return meters / model.MetersPerKm, nil
}

// SimplifyPath reduces sampling noise on a path while preserving its
// shape, using Douglas-Peucker at the given tolerance.
func SimplifyPath(points []orb.Point, tolerance float64) ([]orb.Point, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("path has %d points, need at least 3", len(points))
	}
	ls := make(orb.LineString, len(points))
	copy(ls, points)
	simplified := simplify.DouglasPeucker(tolerance).LineString(ls)
	if len(simplified) < 2 {
		return nil, fmt.Errorf("simplification degenerated the path")
	}
	return simplified, nil
}

// CloseRing appends the first point as the last point if the path is
// not already closed.
func CloseRing(points []orb.Point) orb.Ring {
	ring := make(orb.Ring, len(points))
	copy(ring, points)
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}

// BoundingBoxRing returns the closed 5-point ring of the axis-aligned
// bounding box of two corner clicks, independent of click order.
func BoundingBoxRing(a, b orb.Point) orb.Ring {
	bound := orb.Bound{Min: a, Max: a}
	bound = bound.Extend(b)

	minLng, minLat := bound.Min.Lon(), bound.Min.Lat()
	maxLng, maxLat := bound.Max.Lon(), bound.Max.Lat()

	return orb.Ring{
		{minLng, minLat},
		{maxLng, minLat},
		{maxLng, maxLat},
		{minLng, maxLat},
		{minLng, minLat},
	}
}

// RadiusToMiles converts a user-entered radius in the session's unit
// system to miles for circle generation.
func RadiusToMiles(radius float64, units model.Units) float64 {
	if units == model.UnitsMetric {
		return (radius / 1000) * 0.621371 // meters -> km -> miles
	}
	return radius / 5280 // feet -> miles
}

// CirclePolygon approximates a circle of the given radius around a
// center as a closed ring with the given number of segments.
func CirclePolygon(center orb.Point, radiusMiles float64, steps int) (orb.Ring, error) {
	if radiusMiles <= 0 {
		return nil, fmt.Errorf("radius must be positive")
	}
	if steps < 3 {
		return nil, fmt.Errorf("circle needs at least 3 segments")
	}

	ring := make(orb.Ring, 0, steps+1)
	for i := 0; i < steps; i++ {
		bearing := float64(i) * 360 / float64(steps)
		ring = append(ring, destination(center, radiusMiles*metersPerMile, bearing))
	}
	ring = append(ring, ring[0])
	return ring, nil
}

// destination returns the point at the given distance (meters) and
// bearing (degrees) from the origin on a spherical earth.
func destination(origin orb.Point, distanceM, bearingDeg float64) orb.Point {
	lng1 := origin.Lon() * math.Pi / 180
	lat1 := origin.Lat() * math.Pi / 180
	bearing := bearingDeg * math.Pi / 180
	d := distanceM / earthRadiusMeters

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(bearing))
	lng2 := lng1 + math.Atan2(
		math.Sin(bearing)*math.Sin(d)*math.Cos(lat1),
		math.Cos(d)-math.Sin(lat1)*math.Sin(lat2),
	)

	return orb.Point{lng2 * 180 / math.Pi, lat2 * 180 / math.Pi}
}
