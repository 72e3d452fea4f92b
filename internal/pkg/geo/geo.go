package geo

import (
	"errors"
	"fmt"
	"math"
)

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
const EarthRadiusMeters = 6371000.0

// ErrInvalidConfig is returned for a fence that can never contain a point.
var ErrInvalidConfig = errors.New("invalid geofence configuration")

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Fence is a circular check-in zone.
type Fence struct {
	Center       Point
	RadiusMeters int
}

// NewFence builds a fence and rejects a non-positive radius.
func NewFence(center Point, radiusMeters int) (Fence, error) {
	if radiusMeters <= 0 {
		return Fence{}, fmt.Errorf("%w: radius must be greater than 0, got %d", ErrInvalidConfig, radiusMeters)
	}
	return Fence{Center: center, RadiusMeters: radiusMeters}, nil
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

// DistanceMeters returns the great-circle distance between a and b in meters.
func DistanceMeters(a, b Point) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	lat1Rad := toRadians(a.Latitude)
	lat2Rad := toRadians(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// ContainsDistance reports whether a point at distance d from the center is inside the fence.
// The boundary counts as inside.
func (f Fence) ContainsDistance(d float64) bool {
	if f.RadiusMeters <= 0 {
		return false
	}
	return d <= float64(f.RadiusMeters)
}

// Contains reports whether p lies inside the fence.
func (f Fence) Contains(p Point) bool {
	return f.ContainsDistance(DistanceMeters(p, f.Center))
}

// IsWithinFence is the function form of Fence.Contains.
func IsWithinFence(p Point, f Fence) bool {
	return f.Contains(p)
}
