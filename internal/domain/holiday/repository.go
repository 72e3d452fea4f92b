package holiday

import "context"

type HolidayRepository interface {
	Create(ctx context.Context, holiday Holiday) (Holiday, error)
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]Holiday, error)
	// ListByYear returns holidays dated in year plus every recurring holiday.
	ListByYear(ctx context.Context, year int) ([]Holiday, error)
}
