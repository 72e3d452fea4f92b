package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create returns ErrAlreadyCheckedIn when a record exists for the same employee, shift and date.
	Create(ctx context.Context, record Record) (Record, error)

	GetByID(ctx context.Context, id string) (Record, error)

	// GetByEmployeeShiftDate returns ErrAttendanceNotFound when there is no record.
	GetByEmployeeShiftDate(ctx context.Context, employeeID, shiftID string, date time.Time) (Record, error)

	// GetLatestOpen returns the most recent record of the date that has a check-in but no check-out.
	GetLatestOpen(ctx context.Context, employeeID string, date time.Time) (Record, error)

	// ListByEmployeeDate returns the records of one day ordered by check-in.
	ListByEmployeeDate(ctx context.Context, employeeID string, date time.Time) ([]Record, error)

	// ListByEmployeeRange returns records dated within [from, to] ordered by date.
	ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)

	Update(ctx context.Context, record Record) (Record, error)

	List(ctx context.Context, filter AttendanceFilter) ([]Record, int64, error)
}
