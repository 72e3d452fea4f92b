package officelocation

import "context"

type OfficeLocationRepository interface {
	// GetActive returns ErrOfficeLocationNotFound when no office is active.
	GetActive(ctx context.Context) (OfficeLocation, error)
	// Upsert updates the single office row, creating it on first use.
	Upsert(ctx context.Context, office OfficeLocation) (OfficeLocation, error)
}
