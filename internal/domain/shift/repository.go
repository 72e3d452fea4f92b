package shift

import "context"

type ShiftRepository interface {
	Create(ctx context.Context, shift Shift) (Shift, error)
	GetByID(ctx context.Context, id string) (Shift, error)
	// GetDefault returns the active shift with the earliest start time.
	GetDefault(ctx context.Context) (Shift, error)
	List(ctx context.Context) ([]Shift, error)
	Update(ctx context.Context, shift Shift) (Shift, error)
	Delete(ctx context.Context, id string) error
}
