package officelocation

import (
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/geo"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/validator"
)

type UpsertOfficeLocationRequest struct {
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters int     `json:"radius_meters"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

func (r *UpsertOfficeLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	if _, err := geo.NewFence(geo.Point{Latitude: r.Latitude, Longitude: r.Longitude}, r.RadiusMeters); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: "radius_meters must be greater than 0",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OfficeLocationResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters int     `json:"radius_meters"`
	IsActive     bool    `json:"is_active"`
	UpdatedAt    string  `json:"updated_at"`
}

func NewOfficeLocationResponse(o OfficeLocation) OfficeLocationResponse {
	return OfficeLocationResponse{
		ID:           o.ID,
		Name:         o.Name,
		Address:      o.Address,
		Latitude:     o.Latitude,
		Longitude:    o.Longitude,
		RadiusMeters: o.RadiusMeters,
		IsActive:     o.IsActive,
		UpdatedAt:    o.UpdatedAt.Format(time.RFC3339),
	}
}
