package shift

import "context"

type ShiftService interface {
	Create(ctx context.Context, req ShiftRequest) (ShiftResponse, error)
	Get(ctx context.Context, id string) (ShiftResponse, error)
	List(ctx context.Context) ([]ShiftResponse, error)
	Update(ctx context.Context, req ShiftRequest) (ShiftResponse, error)
	Delete(ctx context.Context, id string) error
}
