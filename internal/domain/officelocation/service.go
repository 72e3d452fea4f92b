package officelocation

import "context"

type OfficeLocationService interface {
	Get(ctx context.Context) (OfficeLocationResponse, error)
	Upsert(ctx context.Context, req UpsertOfficeLocationRequest) (OfficeLocationResponse, error)
}
