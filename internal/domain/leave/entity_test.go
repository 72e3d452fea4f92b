package leave

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/payslip"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLeaveEntries_CrossMonthRequestCountsInFullInEachMonth(t *testing.T) {
	requests := []LeaveRequest{
		{FromDate: date(2024, 1, 29), ToDate: date(2024, 2, 2), Days: 5},
	}

	jan := LeaveEntries(requests, date(2024, 1, 1), date(2024, 1, 31))
	feb := LeaveEntries(requests, date(2024, 2, 1), date(2024, 2, 29))

	assert.Equal(t, []payslip.LeaveEntry{{Days: 5, Paid: false}}, jan)
	assert.Equal(t, []payslip.LeaveEntry{{Days: 5, Paid: false}}, feb)
}

func TestLeaveEntries_SkipsRequestsOutsidePeriod(t *testing.T) {
	requests := []LeaveRequest{
		{FromDate: date(2024, 2, 26), ToDate: date(2024, 2, 29), Days: 4, Paid: true},
		{FromDate: date(2024, 3, 1), ToDate: date(2024, 3, 1), Days: 1, Paid: true},
		{FromDate: date(2024, 3, 31), ToDate: date(2024, 3, 31), Days: 0},
	}

	entries := LeaveEntries(requests, date(2024, 3, 1), date(2024, 3, 31))

	assert.Equal(t, []payslip.LeaveEntry{{Days: 1, Paid: true}}, entries)
}

func TestOverlaps_InclusiveBounds(t *testing.T) {
	r := LeaveRequest{FromDate: date(2024, 1, 31), ToDate: date(2024, 1, 31)}

	assert.True(t, r.Overlaps(date(2024, 1, 1), date(2024, 1, 31)))
	assert.False(t, r.Overlaps(date(2024, 2, 1), date(2024, 2, 29)))
}
