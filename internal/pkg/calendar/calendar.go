package calendar

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

const dateLayout = "2006-01-02"

// Holiday is a calendar entry. A non-empty RecurrenceRule (RFC 5545, e.g. "FREQ=YEARLY")
// repeats the holiday starting from Date.
type Holiday struct {
	Date           time.Time
	Name           string
	RecurrenceRule string
}

// Calendar classifies dates as holidays and counts working days.
type Calendar struct {
	fixed     map[string]string
	recurring []recurringHoliday
}

type recurringHoliday struct {
	name string
	rule *rrule.RRule
}

// New builds a calendar from stored holidays. Invalid recurrence rules are reported.
func New(holidays []Holiday) (*Calendar, error) {
	c := &Calendar{fixed: make(map[string]string)}
	for _, h := range holidays {
		if h.RecurrenceRule == "" {
			c.fixed[h.Date.Format(dateLayout)] = h.Name
			continue
		}

		opt, err := rrule.StrToROption(h.RecurrenceRule)
		if err != nil {
			return nil, fmt.Errorf("parse recurrence rule for %q: %w", h.Name, err)
		}
		y, m, d := h.Date.Date()
		opt.Dtstart = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

		rule, err := rrule.NewRRule(*opt)
		if err != nil {
			return nil, fmt.Errorf("build recurrence rule for %q: %w", h.Name, err)
		}
		c.recurring = append(c.recurring, recurringHoliday{name: h.Name, rule: rule})
	}
	return c, nil
}

// ValidateRule reports whether rule is a usable recurrence rule.
func ValidateRule(rule string) error {
	_, err := rrule.StrToROption(rule)
	return err
}

// HolidayName returns the holiday falling on date, if any. Only the calendar date is considered.
func (c *Calendar) HolidayName(date time.Time) (string, bool) {
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	if name, ok := c.fixed[day.Format(dateLayout)]; ok {
		return name, true
	}
	for _, r := range c.recurring {
		if len(r.rule.Between(day, day.Add(24*time.Hour-time.Nanosecond), true)) > 0 {
			return r.name, true
		}
	}
	return "", false
}

// IsHoliday reports whether date is a holiday.
func (c *Calendar) IsHoliday(date time.Time) bool {
	_, ok := c.HolidayName(date)
	return ok
}

// IsWeekend reports whether date is a Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// WorkingDays counts days in [from, to] that are neither weekend nor holiday.
func (c *Calendar) WorkingDays(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	start := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)

	days := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if IsWeekend(day) || c.IsHoliday(day) {
			continue
		}
		days++
	}
	return days
}

// MonthRange returns the first and last calendar day of the month containing date, in UTC.
func MonthRange(date time.Time) (time.Time, time.Time) {
	y, m, _ := date.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}
