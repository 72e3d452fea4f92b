package timekeeping

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidConfig is returned by ShiftConfig.Validate.
var ErrInvalidConfig = errors.New("invalid shift configuration")

const day = 24 * time.Hour

// ShiftConfig describes a shift window relative to midnight of the shift date.
type ShiftConfig struct {
	Start        time.Duration
	End          time.Duration
	GraceMinutes int
	OtMultiplier decimal.Decimal
	IsOvernight  bool
}

// Computed holds the derived attendance minutes of a single record.
type Computed struct {
	WorkMinutes  int `json:"work_minutes"`
	LateMinutes  int `json:"late_minutes"`
	EarlyMinutes int `json:"early_minutes"`
	OtMinutes    int `json:"ot_minutes"`
}

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS" into an offset from midnight.
func ParseTimeOfDay(s string) (time.Duration, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", s)
}

// FormatTimeOfDay formats an offset from midnight as "HH:MM".
func FormatTimeOfDay(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d/time.Hour), int(d%time.Hour/time.Minute))
}

// Validate reports misconfiguration that would make every computation meaningless.
func (s ShiftConfig) Validate() error {
	if s.GraceMinutes < 0 {
		return fmt.Errorf("%w: grace minutes must not be negative, got %d", ErrInvalidConfig, s.GraceMinutes)
	}
	if !s.OtMultiplier.IsPositive() {
		return fmt.Errorf("%w: ot multiplier must be positive, got %s", ErrInvalidConfig, s.OtMultiplier)
	}
	if s.Start < 0 || s.Start >= day || s.End < 0 || s.End >= day {
		return fmt.Errorf("%w: start and end must be within a single day", ErrInvalidConfig)
	}
	if !s.IsOvernight && s.End <= s.Start {
		return fmt.Errorf("%w: end must be after start unless the shift is overnight", ErrInvalidConfig)
	}
	if s.IsOvernight && s.End > s.Start {
		return fmt.Errorf("%w: an overnight shift must end at or before its start time", ErrInvalidConfig)
	}
	return nil
}

// Window returns the absolute start and end of the shift anchored on shiftDate.
// Overnight shifts end on the following day.
func (s ShiftConfig) Window(shiftDate time.Time) (start, end time.Time) {
	y, m, d := shiftDate.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, shiftDate.Location())
	start = midnight.Add(s.Start)
	end = midnight.Add(s.End)
	if s.IsOvernight {
		end = end.Add(day)
	}
	return start, end
}

// Minutes returns the scheduled length of the shift in whole minutes.
func (s ShiftConfig) Minutes() int {
	start, end := s.Window(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	return wholeMinutes(end.Sub(start))
}

// wholeMinutes floors d to whole minutes, also for negative durations.
func wholeMinutes(d time.Duration) int {
	m := d / time.Minute
	if d%time.Minute < 0 {
		m--
	}
	return int(m)
}

// ComputeAttendance derives worked, late, early and overtime minutes for one punch pair.
// A missing punch yields all zeros. Work minutes are not clamped, so a checkout
// before checkin produces a negative value for the caller to reject.
func ComputeAttendance(shift ShiftConfig, shiftDate time.Time, checkIn, checkOut *time.Time) Computed {
	if checkIn == nil || checkOut == nil {
		return Computed{}
	}

	var c Computed
	c.WorkMinutes = wholeMinutes(checkOut.Sub(*checkIn))

	start, end := shift.Window(shiftDate)
	grace := time.Duration(shift.GraceMinutes) * time.Minute

	lateAfter := start.Add(grace)
	if checkIn.After(lateAfter) {
		c.LateMinutes = wholeMinutes(checkIn.Sub(lateAfter))
	}

	earlyBefore := end.Add(-grace)
	if checkOut.Before(earlyBefore) {
		c.EarlyMinutes = wholeMinutes(earlyBefore.Sub(*checkOut))
	}

	shiftMinutes := wholeMinutes(end.Sub(start))
	if c.WorkMinutes > shiftMinutes {
		c.OtMinutes = c.WorkMinutes - shiftMinutes
	}

	return c
}
