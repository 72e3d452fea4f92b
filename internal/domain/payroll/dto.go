package payroll

import (
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/payslip"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// PayslipRequest carries the optional salary overrides of a payslip query.
type PayslipRequest struct {
	EmployeeID  *string          `json:"employee_id,omitempty"`
	Month       *string          `json:"month,omitempty"` // YYYY-MM, defaults to the current month
	BaseSalary  *decimal.Decimal `json:"base_salary,omitempty"`
	Allowance   *decimal.Decimal `json:"allowance,omitempty"`
	OtRate      *decimal.Decimal `json:"ot_rate,omitempty"`
	HolidayRate *decimal.Decimal `json:"holiday_rate,omitempty"`
}

func (r *PayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != nil && !validator.IsValidUUID(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}
	errs = append(errs, validateMonth(r.Month)...)

	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must be non-negative",
		})
	}
	if r.Allowance != nil && r.Allowance.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "allowance",
			Message: "allowance must be non-negative",
		})
	}
	errs = append(errs, validateRates(r.OtRate, r.HolidayRate)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CalcRequest computes a payslip from an hourly base rate.
type CalcRequest struct {
	EmployeeID  string           `json:"employee_id"`
	Month       *string          `json:"month,omitempty"`
	BaseRate    decimal.Decimal  `json:"base_rate"`
	OtRate      *decimal.Decimal `json:"ot_rate,omitempty"`
	HolidayRate *decimal.Decimal `json:"holiday_rate,omitempty"`
}

func (r *CalcRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}
	errs = append(errs, validateMonth(r.Month)...)

	if !r.BaseRate.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "base_rate",
			Message: "base_rate must be greater than 0",
		})
	}
	errs = append(errs, validateRates(r.OtRate, r.HolidayRate)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateMonth(month *string) validator.ValidationErrors {
	if month == nil {
		return nil
	}
	if _, ok := validator.IsValidMonth(*month); !ok {
		return validator.ValidationErrors{{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		}}
	}
	return nil
}

func validateRates(otRate, holidayRate *decimal.Decimal) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if otRate != nil && otRate.LessThan(decimal.NewFromInt(1)) {
		errs = append(errs, validator.ValidationError{
			Field:   "ot_rate",
			Message: "ot_rate must be at least 1",
		})
	}
	if holidayRate != nil && holidayRate.LessThan(decimal.NewFromInt(1)) {
		errs = append(errs, validator.ValidationError{
			Field:   "holiday_rate",
			Message: "holiday_rate must be at least 1",
		})
	}
	return errs
}

// PayslipResponse is a payslip rendered for presentation. Hours and money carry 2 decimal places.
type PayslipResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	EmployeeName string `json:"employee_name"`
	Month        string `json:"month"`
	From         string `json:"from"`
	To           string `json:"to"`

	TotalWorkHours string `json:"total_work_hours"`
	NormalHours    string `json:"normal_hours"`
	OtHours        string `json:"ot_hours"`
	HolidayHours   string `json:"holiday_hours"`
	LateMinutes    int    `json:"late_minutes"`
	EarlyMinutes   int    `json:"early_minutes"`

	PaidLeaveDays   int `json:"paid_leave_days"`
	UnpaidLeaveDays int `json:"unpaid_leave_days"`

	BaseSalary  string `json:"base_salary"`
	Allowance   string `json:"allowance"`
	HourlyRate  string `json:"hourly_rate"`
	OtRate      string `json:"ot_rate"`
	HolidayRate string `json:"holiday_rate"`

	NormalPay  string `json:"normal_pay"`
	OtPay      string `json:"ot_pay"`
	HolidayPay string `json:"holiday_pay"`
	GrossPay   string `json:"gross_pay"`

	DeductionLate        string `json:"deduction_late"`
	DeductionUnpaidLeave string `json:"deduction_unpaid_leave"`
	OtherDeduction       string `json:"other_deduction"`
	TotalDeduction       string `json:"total_deduction"`
	Tax                  string `json:"tax"`
	NetPay               string `json:"net_pay"`

	Penalty  string `json:"penalty"`
	TotalPay string `json:"total_pay"`
}

func fixed2(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// NewPayslipResponse attaches the employee and period to a computed payslip.
func NewPayslipResponse(employeeID, code, name string, from, to time.Time, p payslip.Payslip) PayslipResponse {
	r := p.Rounded()
	return PayslipResponse{
		EmployeeID:   employeeID,
		EmployeeCode: code,
		EmployeeName: name,
		Month:        from.Format("2006-01"),
		From:         from.Format("2006-01-02"),
		To:           to.Format("2006-01-02"),

		TotalWorkHours: fixed2(r.TotalWorkHours),
		NormalHours:    fixed2(r.NormalHours),
		OtHours:        fixed2(r.OtHours),
		HolidayHours:   fixed2(r.HolidayHours),
		LateMinutes:    r.LateMinutes,
		EarlyMinutes:   r.EarlyMinutes,

		PaidLeaveDays:   r.PaidLeaveDays,
		UnpaidLeaveDays: r.UnpaidLeaveDays,

		BaseSalary:  fixed2(r.BaseSalary),
		Allowance:   fixed2(r.Allowance),
		HourlyRate:  fixed2(r.HourlyRate),
		OtRate:      fixed2(r.OtRate),
		HolidayRate: fixed2(r.HolidayRate),

		NormalPay:  fixed2(r.NormalPay),
		OtPay:      fixed2(r.OtPay),
		HolidayPay: fixed2(r.HolidayPay),
		GrossPay:   fixed2(r.GrossPay),

		DeductionLate:        fixed2(r.DeductionLate),
		DeductionUnpaidLeave: fixed2(r.DeductionUnpaidLeave),
		OtherDeduction:       fixed2(r.OtherDeduction),
		TotalDeduction:       fixed2(r.TotalDeduction),
		Tax:                  fixed2(r.Tax),
		NetPay:               fixed2(r.NetPay),

		Penalty:  fixed2(r.TotalDeduction),
		TotalPay: fixed2(r.NetPay),
	}
}
