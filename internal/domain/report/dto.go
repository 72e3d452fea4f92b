package report

import (
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/validator"
)

// ========================================
// TIMESHEET REPORT
// ========================================

type TimesheetRequest struct {
	EmployeeID *string `json:"employee_id,omitempty"` // defaults to the caller
	Month      string  `json:"month"`                 // YYYY-MM
}

func (r *TimesheetRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != nil && !validator.IsValidUUID(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if validator.IsEmpty(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month is required",
		})
	} else if _, ok := validator.IsValidMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TimesheetReport struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	EmployeeName string `json:"employee_name"`
	Month        string `json:"month"`
	From         string `json:"from"`
	To           string `json:"to"`
	GeneratedAt  string `json:"generated_at"`

	Days    []TimesheetDay   `json:"days"`
	Summary TimesheetSummary `json:"summary"`
}

type TimesheetDay struct {
	Date         string  `json:"date"`
	ShiftID      string  `json:"shift_id"`
	ShiftName    *string `json:"shift_name,omitempty"`
	CheckIn      *string `json:"check_in,omitempty"`
	CheckOut     *string `json:"check_out,omitempty"`
	WorkMinutes  int     `json:"work_minutes"`
	LateMinutes  int     `json:"late_minutes"`
	EarlyMinutes int     `json:"early_minutes"`
	OtMinutes    int     `json:"ot_minutes"`
	IsHoliday    bool    `json:"is_holiday"`
	Status       string  `json:"status"`
}

type TimesheetSummary struct {
	TotalWorkMinutes  int `json:"total_work_minutes"`
	TotalLateMinutes  int `json:"total_late_minutes"`
	TotalEarlyMinutes int `json:"total_early_minutes"`
	TotalOtMinutes    int `json:"total_ot_minutes"`
	HolidayShifts     int `json:"holiday_shifts"`
	PaidLeaveDays     int `json:"paid_leave_days"`
	UnpaidLeaveDays   int `json:"unpaid_leave_days"`
}
