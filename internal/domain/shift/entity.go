package shift

import (
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/timekeeping"
	"github.com/shopspring/decimal"
)

type Shift struct {
	ID           string
	Name         string
	StartTime    time.Duration // offset from midnight
	EndTime      time.Duration
	GraceMinutes int
	OtMultiplier decimal.Decimal
	IsOvernight  bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Config returns the accounting rules of the shift.
func (s Shift) Config() timekeeping.ShiftConfig {
	return timekeeping.ShiftConfig{
		Start:        s.StartTime,
		End:          s.EndTime,
		GraceMinutes: s.GraceMinutes,
		OtMultiplier: s.OtMultiplier,
		IsOvernight:  s.IsOvernight,
	}
}
