package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalendar_FixedHoliday(t *testing.T) {
	c, err := New([]Holiday{{Date: date(2024, 8, 17), Name: "Independence Day"}})
	require.NoError(t, err)

	name, ok := c.HolidayName(date(2024, 8, 17))
	assert.True(t, ok)
	assert.Equal(t, "Independence Day", name)

	assert.True(t, c.IsHoliday(time.Date(2024, 8, 17, 15, 30, 0, 0, time.UTC)))
	assert.False(t, c.IsHoliday(date(2025, 8, 17)))
	assert.False(t, c.IsHoliday(date(2024, 8, 16)))
}

func TestCalendar_RecurringHoliday(t *testing.T) {
	c, err := New([]Holiday{{Date: date(2020, 1, 1), Name: "New Year", RecurrenceRule: "FREQ=YEARLY"}})
	require.NoError(t, err)

	for _, year := range []int{2020, 2024, 2031} {
		assert.True(t, c.IsHoliday(date(year, 1, 1)), "year %d", year)
	}
	assert.False(t, c.IsHoliday(date(2019, 1, 1)), "before the first occurrence")
	assert.False(t, c.IsHoliday(date(2024, 1, 2)))
}

func TestCalendar_InvalidRule(t *testing.T) {
	_, err := New([]Holiday{{Date: date(2024, 1, 1), Name: "Broken", RecurrenceRule: "FREQ=SOMETIMES"}})
	assert.Error(t, err)
	assert.Error(t, ValidateRule("FREQ=SOMETIMES"))
	assert.NoError(t, ValidateRule("FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=25"))
}

func TestCalendar_WorkingDays(t *testing.T) {
	c, err := New([]Holiday{
		{Date: date(2024, 1, 3), Name: "Company Day"},
		{Date: date(2020, 1, 1), Name: "New Year", RecurrenceRule: "FREQ=YEARLY"},
	})
	require.NoError(t, err)

	// Mon 2024-01-01 .. Sun 2024-01-07: New Year and Company Day fall on weekdays.
	assert.Equal(t, 3, c.WorkingDays(date(2024, 1, 1), date(2024, 1, 7)))
	assert.Equal(t, 0, c.WorkingDays(date(2024, 1, 6), date(2024, 1, 7)))
	assert.Equal(t, 1, c.WorkingDays(date(2024, 1, 2), date(2024, 1, 2)))
	assert.Equal(t, 0, c.WorkingDays(date(2024, 1, 5), date(2024, 1, 4)))
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(date(2024, 1, 6)))
	assert.True(t, IsWeekend(date(2024, 1, 7)))
	assert.False(t, IsWeekend(date(2024, 1, 8)))
}

func TestMonthRange(t *testing.T) {
	from, to := MonthRange(time.Date(2024, time.February, 17, 23, 0, 0, 0, time.FixedZone("WIB", 7*3600)))
	assert.Equal(t, "2024-02-01", from.Format(dateLayout))
	assert.Equal(t, "2024-02-29", to.Format(dateLayout))
}
