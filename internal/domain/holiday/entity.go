package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/calendar"
)

type Holiday struct {
	ID             string
	Date           time.Time
	Name           string
	RecurrenceRule *string
	CreatedAt      time.Time
}

// LoadCalendar builds a holiday calendar from every stored holiday.
func LoadCalendar(ctx context.Context, repo HolidayRepository) (*calendar.Calendar, error) {
	holidays, err := repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	entries := make([]calendar.Holiday, 0, len(holidays))
	for _, h := range holidays {
		entry := calendar.Holiday{Date: h.Date, Name: h.Name}
		if h.RecurrenceRule != nil {
			entry.RecurrenceRule = *h.RecurrenceRule
		}
		entries = append(entries, entry)
	}
	return calendar.New(entries)
}
