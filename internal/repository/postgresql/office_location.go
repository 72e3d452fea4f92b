package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/officelocation"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type officeLocationRepositoryImpl struct {
	db *database.DB
}

func NewOfficeLocationRepository(db *database.DB) officelocation.OfficeLocationRepository {
	return &officeLocationRepositoryImpl{db: db}
}

const officeColumns = `id, name, address, latitude, longitude, radius_meters, is_active, created_at, updated_at`

func scanOffice(row pgx.Row) (officelocation.OfficeLocation, error) {
	var o officelocation.OfficeLocation
	err := row.Scan(&o.ID, &o.Name, &o.Address, &o.Latitude, &o.Longitude, &o.RadiusMeters, &o.IsActive, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

// GetActive implements officelocation.OfficeLocationRepository.
func (r *officeLocationRepositoryImpl) GetActive(ctx context.Context) (officelocation.OfficeLocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + officeColumns + ` FROM office_locations WHERE is_active ORDER BY updated_at DESC LIMIT 1`

	o, err := scanOffice(q.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return officelocation.OfficeLocation{}, officelocation.ErrOfficeLocationNotFound
		}
		return officelocation.OfficeLocation{}, fmt.Errorf("failed to get office location: %w", err)
	}
	return o, nil
}

// Upsert implements officelocation.OfficeLocationRepository. The row with the
// given ID is updated; without one the first stored row is reused.
func (r *officeLocationRepositoryImpl) Upsert(ctx context.Context, office officelocation.OfficeLocation) (officelocation.OfficeLocation, error) {
	q := GetQuerier(ctx, r.db)

	if office.ID == "" {
		err := q.QueryRow(ctx, `SELECT id FROM office_locations ORDER BY created_at ASC LIMIT 1`).Scan(&office.ID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return officelocation.OfficeLocation{}, fmt.Errorf("failed to find office location: %w", err)
		}
	}

	var row pgx.Row
	if office.ID == "" {
		row = q.QueryRow(ctx, `
			INSERT INTO office_locations (id, name, address, latitude, longitude, radius_meters, is_active, created_at, updated_at)
			VALUES (uuidv7(), $1, $2, $3, $4, $5, TRUE, NOW(), NOW())
			RETURNING `+officeColumns,
			office.Name, office.Address, office.Latitude, office.Longitude, office.RadiusMeters)
	} else {
		row = q.QueryRow(ctx, `
			UPDATE office_locations
			SET name = $1, address = $2, latitude = $3, longitude = $4, radius_meters = $5,
				is_active = TRUE, updated_at = NOW()
			WHERE id = $6
			RETURNING `+officeColumns,
			office.Name, office.Address, office.Latitude, office.Longitude, office.RadiusMeters, office.ID)
	}

	saved, err := scanOffice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return officelocation.OfficeLocation{}, officelocation.ErrOfficeLocationNotFound
		}
		return officelocation.OfficeLocation{}, fmt.Errorf("failed to save office location: %w", err)
	}
	return saved, nil
}
