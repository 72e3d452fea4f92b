package officelocation

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/officelocation"
)

type OfficeLocationServiceImpl struct {
	officeRepo officelocation.OfficeLocationRepository
}

func NewOfficeLocationService(officeRepo officelocation.OfficeLocationRepository) officelocation.OfficeLocationService {
	return &OfficeLocationServiceImpl{officeRepo: officeRepo}
}

// Get implements officelocation.OfficeLocationService.
func (s *OfficeLocationServiceImpl) Get(ctx context.Context) (officelocation.OfficeLocationResponse, error) {
	office, err := s.officeRepo.GetActive(ctx)
	if err != nil {
		return officelocation.OfficeLocationResponse{}, err
	}
	return officelocation.NewOfficeLocationResponse(office), nil
}

// Upsert implements officelocation.OfficeLocationService.
func (s *OfficeLocationServiceImpl) Upsert(ctx context.Context, req officelocation.UpsertOfficeLocationRequest) (officelocation.OfficeLocationResponse, error) {
	if err := req.Validate(); err != nil {
		return officelocation.OfficeLocationResponse{}, err
	}

	office := officelocation.OfficeLocation{
		Name:         strings.TrimSpace(req.Name),
		Address:      strings.TrimSpace(req.Address),
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
		IsActive:     true,
	}
	if req.IsActive != nil {
		office.IsActive = *req.IsActive
	}

	saved, err := s.officeRepo.Upsert(ctx, office)
	if err != nil {
		return officelocation.OfficeLocationResponse{}, err
	}
	slog.Info("office location updated", "office_id", saved.ID, "radius_meters", saved.RadiusMeters, "active", saved.IsActive)
	return officelocation.NewOfficeLocationResponse(saved), nil
}
