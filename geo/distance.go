// Package geo measures distances on the sphere and along iso-lines of
// gridded fields, for example the length of the sea-ice edge.
package geo

import (
	"errors"
	"fmt"
	"math"
)

// EarthRadiusKm is the mean Earth radius used by GreatCircle.
const EarthRadiusKm = 6371.0

const metresPerDegree = 111320.0

var (
	// ErrLatitude is returned for latitudes outside [-90, 90].
	ErrLatitude = errors.New("geo: latitude out of range")

	// ErrMetric is returned when no distance metric is supplied.
	ErrMetric = errors.New("geo: distance metric required")
)

// Point is a geographic position in degrees. With the Planar metric Lat and
// Lon are read as y and x in arbitrary projected units.
type Point struct {
	Lat float64
	Lon float64
}

// NewPoint validates the latitude.
func NewPoint(lat, lon float64) (Point, error) {
	p := Point{Lat: lat, Lon: lon}
	return p, p.Validate()
}

// Validate checks the latitude range.
func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: %g", ErrLatitude, p.Lat)
	}
	return nil
}

// Metric measures the distance between two points.
type Metric interface {
	Distance(a, b Point) float64
}

// GreatCircle is the haversine distance in metres on a sphere of radius EarthRadiusKm.
type GreatCircle struct{}

func (GreatCircle) Distance(a, b Point) float64 {
	return Haversine(a.Lat, a.Lon, b.Lat, b.Lon)
}

// Planar is the Euclidean distance in the units of the coordinates.
type Planar struct{}

func (Planar) Distance(a, b Point) float64 {
	return math.Hypot(b.Lon-a.Lon, b.Lat-a.Lat)
}

// Haversine calculates the great-circle distance in metres between two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c * 1000
}

// BoundingBox returns a box around a point with the given radius in metres.
func BoundingBox(lat, lon, radiusMetres float64) (minLat, minLon, maxLat, maxLon float64) {
	latDelta := radiusMetres / metresPerDegree
	lonDelta := radiusMetres / (metresPerDegree * math.Cos(toRad(lat)))

	return lat - latDelta, lon - lonDelta, lat + latDelta, lon + lonDelta
}

// PathLength sums the distances between consecutive points.
func PathLength(points []Point, metric Metric) (float64, error) {
	if metric == nil {
		return 0, ErrMetric
	}
	var total float64
	for i := 1; i < len(points); i++ {
		total += metric.Distance(points[i-1], points[i])
	}
	return total, nil
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
