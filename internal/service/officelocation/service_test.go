package officelocation

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/officelocation"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-timekeeping/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfficeLocationService(t *testing.T) {
	ctx := context.Background()
	svc := NewOfficeLocationService(&servicetest.Offices{})

	_, err := svc.Get(ctx)
	assert.ErrorIs(t, err, officelocation.ErrOfficeLocationNotFound)

	saved, err := svc.Upsert(ctx, officelocation.UpsertOfficeLocationRequest{
		Name:         "HQ",
		Address:      "Jl. Sudirman 1",
		Latitude:     -6.2,
		Longitude:    106.8,
		RadiusMeters: 150,
	})
	require.NoError(t, err)
	assert.True(t, saved.IsActive)

	moved, err := svc.Upsert(ctx, officelocation.UpsertOfficeLocationRequest{
		Name:         "HQ",
		Latitude:     -6.3,
		Longitude:    106.9,
		RadiusMeters: 200,
	})
	require.NoError(t, err)
	assert.Equal(t, saved.ID, moved.ID, "the single office row is updated in place")

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 200, got.RadiusMeters)

	_, err = svc.Upsert(ctx, officelocation.UpsertOfficeLocationRequest{Name: "HQ", Latitude: 95, Longitude: 106.8, RadiusMeters: 0})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
