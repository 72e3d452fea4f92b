package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/payslip"
)

// LeaveType entity
type LeaveType struct {
	ID          string
	Name        string
	Description *string
	Paid        bool
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type RequestStatus string

const (
	StatusPending  RequestStatus = "Pending"
	StatusApproved RequestStatus = "Approved"
	StatusRejected RequestStatus = "Rejected"
)

var Statuses = []string{string(StatusPending), string(StatusApproved), string(StatusRejected)}

// LeaveRequest entity
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	FromDate    time.Time
	ToDate      time.Time
	Days        int
	Reason      *string
	Status      RequestStatus
	ApproverID  *string
	DecisionAt  *time.Time
	Note        *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO / Join
	EmployeeName  *string
	LeaveTypeName *string
	Paid          bool
}

func (r LeaveRequest) IsPending() bool {
	return r.Status == StatusPending
}

// Overlaps reports whether any day of the request falls in [from, to].
func (r LeaveRequest) Overlaps(from, to time.Time) bool {
	return !r.FromDate.After(to) && !r.ToDate.Before(from)
}

// LeaveEntries turns approved requests overlapping [from, to] into aggregator
// entries. A request contributes its full stored day count to every period it
// touches.
func LeaveEntries(requests []LeaveRequest, from, to time.Time) []payslip.LeaveEntry {
	entries := make([]payslip.LeaveEntry, 0, len(requests))
	for _, r := range requests {
		if r.Days <= 0 || !r.Overlaps(from, to) {
			continue
		}
		entries = append(entries, payslip.LeaveEntry{Days: r.Days, Paid: r.Paid})
	}
	return entries
}
