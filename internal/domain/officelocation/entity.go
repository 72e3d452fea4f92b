package officelocation

import (
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/geo"
)

// OfficeLocation is the site attendance is fenced to. Only one is active at a time.
type OfficeLocation struct {
	ID           string
	Name         string
	Address      string
	Latitude     float64
	Longitude    float64
	RadiusMeters int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (o OfficeLocation) Center() geo.Point {
	return geo.Point{Latitude: o.Latitude, Longitude: o.Longitude}
}

// Fence returns the geofence of the office.
func (o OfficeLocation) Fence() (geo.Fence, error) {
	return geo.NewFence(o.Center(), o.RadiusMeters)
}
