package payslip

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Payroll policy constants.
const (
	StandardDailyMinutes     = 480
	StandardWorkDaysPerMonth = 22
)

var (
	ErrInvalidConfig = errors.New("invalid salary configuration")

	sixty = decimal.NewFromInt(60)
	one   = decimal.NewFromInt(1)
)

// StandardDailyHours is the contracted length of a working day.
func StandardDailyHours() decimal.Decimal {
	return decimal.NewFromInt(StandardDailyMinutes).Div(sixty)
}

// StandardMonthlyHours is the fixed month length used to derive an hourly rate (176h).
func StandardMonthlyHours() decimal.Decimal {
	return StandardDailyHours().Mul(decimal.NewFromInt(StandardWorkDaysPerMonth))
}

// HourlyRateFromMonthly converts a monthly salary into an hourly rate rounded to 2 decimals.
func HourlyRateFromMonthly(baseSalary decimal.Decimal) decimal.Decimal {
	return baseSalary.Div(StandardMonthlyHours()).Round(2)
}

// MonthlySalaryFromHourly estimates a monthly salary from an hourly rate, rounded to whole units.
func MonthlySalaryFromHourly(hourlyRate decimal.Decimal) decimal.Decimal {
	return hourlyRate.Mul(StandardMonthlyHours()).Round(0)
}

// AttendanceMinutes is one attendance record as seen by payroll.
type AttendanceMinutes struct {
	WorkMinutes  int
	LateMinutes  int
	EarlyMinutes int
	OtMinutes    int
	IsHoliday    bool
}

// LeaveEntry is an approved leave request overlapping the payroll period.
type LeaveEntry struct {
	Days int
	Paid bool
}

// SalaryConfig holds the resolved salary inputs for one employee.
type SalaryConfig struct {
	BaseSalary           decimal.Decimal
	Allowance            decimal.Decimal
	OtRate               decimal.Decimal
	HolidayRate          decimal.Decimal
	LatePenaltyPerMinute decimal.Decimal
}

// Overrides replace individual SalaryConfig inputs for a single computation.
type Overrides struct {
	OtRate      *decimal.Decimal
	HolidayRate *decimal.Decimal
	HourlyRate  *decimal.Decimal
}

// Payslip is the monthly pay breakdown. Values keep full precision; Rounded prepares them for display.
type Payslip struct {
	TotalWorkHours decimal.Decimal
	NormalHours    decimal.Decimal
	OtHours        decimal.Decimal
	HolidayHours   decimal.Decimal
	LateMinutes    int
	EarlyMinutes   int

	PaidLeaveDays   int
	UnpaidLeaveDays int

	BaseSalary  decimal.Decimal
	Allowance   decimal.Decimal
	HourlyRate  decimal.Decimal
	OtRate      decimal.Decimal
	HolidayRate decimal.Decimal

	NormalPay  decimal.Decimal
	OtPay      decimal.Decimal
	HolidayPay decimal.Decimal
	GrossPay   decimal.Decimal

	DeductionLate        decimal.Decimal
	DeductionUnpaidLeave decimal.Decimal
	OtherDeduction       decimal.Decimal
	TotalDeduction       decimal.Decimal
	Tax                  decimal.Decimal
	NetPay               decimal.Decimal
}

// Validate rejects salary inputs that cannot describe a real contract.
func (c SalaryConfig) Validate() error {
	if c.BaseSalary.IsNegative() {
		return fmt.Errorf("%w: base salary must not be negative", ErrInvalidConfig)
	}
	if c.Allowance.IsNegative() {
		return fmt.Errorf("%w: allowance must not be negative", ErrInvalidConfig)
	}
	if c.LatePenaltyPerMinute.IsNegative() {
		return fmt.Errorf("%w: late penalty per minute must not be negative", ErrInvalidConfig)
	}
	if c.OtRate.LessThan(one) {
		return fmt.Errorf("%w: ot rate must be at least 1, got %s", ErrInvalidConfig, c.OtRate)
	}
	if c.HolidayRate.LessThan(one) {
		return fmt.Errorf("%w: holiday rate must be at least 1, got %s", ErrInvalidConfig, c.HolidayRate)
	}
	return nil
}

func minutesToHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(sixty)
}

// ComputeMonthlyPayroll aggregates a period of attendance and leave into a payslip.
//
// Gross pay is base salary plus allowance, overtime pay and holiday pay.
// Normal pay is reported but not added to gross.
func ComputeMonthlyPayroll(records []AttendanceMinutes, leaves []LeaveEntry, salary SalaryConfig, overrides Overrides) (Payslip, error) {
	if overrides.OtRate != nil {
		salary.OtRate = *overrides.OtRate
	}
	if overrides.HolidayRate != nil {
		salary.HolidayRate = *overrides.HolidayRate
	}
	if err := salary.Validate(); err != nil {
		return Payslip{}, err
	}
	if overrides.HourlyRate != nil && !overrides.HourlyRate.IsPositive() {
		return Payslip{}, fmt.Errorf("%w: hourly rate must be positive", ErrInvalidConfig)
	}

	var totalWork, totalOt, totalLate, totalEarly, holidayWork int
	for _, r := range records {
		totalWork += r.WorkMinutes
		totalOt += r.OtMinutes
		totalLate += r.LateMinutes
		totalEarly += r.EarlyMinutes
		if r.IsHoliday {
			holidayWork += r.WorkMinutes
		}
	}

	normalWork := totalWork - holidayWork - totalOt
	if normalWork < 0 {
		normalWork = 0
	}

	var paidDays, unpaidDays int
	for _, l := range leaves {
		if l.Paid {
			paidDays += l.Days
		} else {
			unpaidDays += l.Days
		}
	}

	hourlyRate := HourlyRateFromMonthly(salary.BaseSalary)
	if overrides.HourlyRate != nil {
		hourlyRate = *overrides.HourlyRate
	}

	p := Payslip{
		TotalWorkHours:  minutesToHours(totalWork),
		NormalHours:     minutesToHours(normalWork),
		OtHours:         minutesToHours(totalOt),
		HolidayHours:    minutesToHours(holidayWork),
		LateMinutes:     totalLate,
		EarlyMinutes:    totalEarly,
		PaidLeaveDays:   paidDays,
		UnpaidLeaveDays: unpaidDays,
		BaseSalary:      salary.BaseSalary,
		Allowance:       salary.Allowance,
		HourlyRate:      hourlyRate,
		OtRate:          salary.OtRate,
		HolidayRate:     salary.HolidayRate,
		OtherDeduction:  decimal.Zero,
		Tax:             decimal.Zero,
	}

	p.NormalPay = p.NormalHours.Mul(hourlyRate)
	p.OtPay = p.OtHours.Mul(hourlyRate).Mul(salary.OtRate)
	p.HolidayPay = p.HolidayHours.Mul(hourlyRate).Mul(salary.HolidayRate)

	p.DeductionLate = decimal.NewFromInt(int64(totalLate + totalEarly)).Mul(salary.LatePenaltyPerMinute)

	unpaidHourly := salary.BaseSalary.Div(StandardMonthlyHours())
	p.DeductionUnpaidLeave = decimal.NewFromInt(int64(unpaidDays)).Mul(StandardDailyHours()).Mul(unpaidHourly)

	p.GrossPay = salary.BaseSalary.Add(salary.Allowance).Add(p.OtPay).Add(p.HolidayPay)
	p.TotalDeduction = p.DeductionLate.Add(p.DeductionUnpaidLeave).Add(p.OtherDeduction).Add(p.Tax)
	p.NetPay = p.GrossPay.Sub(p.TotalDeduction)

	return p, nil
}

// Rounded returns a copy with hours and money rounded to 2 decimals.
func (p Payslip) Rounded() Payslip {
	r := p
	for _, d := range []*decimal.Decimal{
		&r.TotalWorkHours, &r.NormalHours, &r.OtHours, &r.HolidayHours,
		&r.BaseSalary, &r.Allowance, &r.HourlyRate, &r.OtRate, &r.HolidayRate,
		&r.NormalPay, &r.OtPay, &r.HolidayPay, &r.GrossPay,
		&r.DeductionLate, &r.DeductionUnpaidLeave, &r.OtherDeduction,
		&r.TotalDeduction, &r.Tax, &r.NetPay,
	} {
		*d = d.Round(2)
	}
	return r
}
