package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/payslip"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/timekeeping"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
	StatusFixed    Status = "Fixed"
)

var Statuses = []string{string(StatusPending), string(StatusApproved), string(StatusRejected), string(StatusFixed)}

// Record is one check-in/check-out pair of an employee for a shift on a date.
type Record struct {
	ID           string
	EmployeeID   string
	ShiftID      string
	Date         time.Time
	CheckIn      *time.Time
	CheckOut     *time.Time
	WorkMinutes  int
	LateMinutes  int
	EarlyMinutes int
	OtMinutes    int
	IsHoliday    bool
	Note         *string
	Status       Status

	ApproverID     *string
	ApproverName   *string
	ApprovedAt     *time.Time
	ManagerNote    *string
	ManualCheckIn  *time.Time
	ManualCheckOut *time.Time
	FixReason      *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	EmployeeName *string
	ShiftName    *string
}

// Apply copies computed minutes onto the record.
func (r *Record) Apply(c timekeeping.Computed) {
	r.WorkMinutes = c.WorkMinutes
	r.LateMinutes = c.LateMinutes
	r.EarlyMinutes = c.EarlyMinutes
	r.OtMinutes = c.OtMinutes
}

// AppendNote joins note to the existing note with " | ".
func (r *Record) AppendNote(note string) {
	if r.Note == nil || *r.Note == "" {
		r.Note = &note
		return
	}
	joined := *r.Note + " | " + note
	r.Note = &joined
}

// Minutes returns the shape consumed by the payroll aggregator.
func (r Record) Minutes() payslip.AttendanceMinutes {
	return payslip.AttendanceMinutes{
		WorkMinutes:  r.WorkMinutes,
		LateMinutes:  r.LateMinutes,
		EarlyMinutes: r.EarlyMinutes,
		OtMinutes:    r.OtMinutes,
		IsHoliday:    r.IsHoliday,
	}
}
