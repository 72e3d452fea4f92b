package payroll

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/config"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/leave"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/export"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/payslip"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	leaveRepo      leave.LeaveRequestRepository
	defaults       config.PayrollConfig
	loc            *time.Location
	now            func() time.Time
}

func NewPayrollService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRequestRepository,
	defaults config.PayrollConfig,
	loc *time.Location,
) payroll.PayrollService {
	if loc == nil {
		loc = time.UTC
	}
	return &PayrollServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		leaveRepo:      leaveRepo,
		defaults:       defaults,
		loc:            loc,
		now:            time.Now,
	}
}

// period resolves the requested month, defaulting to the current one.
func (s *PayrollServiceImpl) period(month *string) (time.Time, time.Time) {
	if month != nil {
		if first, ok := validator.IsValidMonth(*month); ok {
			return calendar.MonthRange(first)
		}
	}
	return calendar.MonthRange(s.now().In(s.loc))
}

// salaryFor applies the resolution order request → employee settings → configured default.
func (s *PayrollServiceImpl) salaryFor(emp employee.Employee, baseSalary, allowance *decimal.Decimal) payslip.SalaryConfig {
	salary := payslip.SalaryConfig{
		BaseSalary:           s.defaults.DefaultBaseSalary,
		Allowance:            s.defaults.DefaultAllowance,
		OtRate:               s.defaults.DefaultOtRate,
		HolidayRate:          s.defaults.DefaultHolidayRate,
		LatePenaltyPerMinute: s.defaults.LatePenaltyPerMinute,
	}
	switch {
	case baseSalary != nil:
		salary.BaseSalary = *baseSalary
	case emp.BaseSalary != nil:
		salary.BaseSalary = *emp.BaseSalary
	}
	switch {
	case allowance != nil:
		salary.Allowance = *allowance
	case emp.Allowance != nil:
		salary.Allowance = *emp.Allowance
	}
	return salary
}

func (s *PayrollServiceImpl) compute(ctx context.Context, emp employee.Employee, month *string, salary payslip.SalaryConfig, overrides payslip.Overrides) (payroll.PayslipResponse, error) {
	from, to := s.period(month)

	records, err := s.attendanceRepo.ListByEmployeeRange(ctx, emp.ID, from, to)
	if err != nil {
		return payroll.PayslipResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	minutes := make([]payslip.AttendanceMinutes, 0, len(records))
	for _, r := range records {
		minutes = append(minutes, r.Minutes())
	}

	requests, err := s.leaveRepo.ListApprovedOverlapping(ctx, emp.ID, from, to)
	if err != nil {
		return payroll.PayslipResponse{}, fmt.Errorf("failed to list approved leave: %w", err)
	}
	leaves := leave.LeaveEntries(requests, from, to)

	p, err := payslip.ComputeMonthlyPayroll(minutes, leaves, salary, overrides)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	slog.Info("payslip computed",
		"employee_id", emp.ID,
		"month", from.Format("2006-01"),
		"records", len(records),
		"gross_pay", p.GrossPay.StringFixed(2),
		"net_pay", p.NetPay.StringFixed(2),
	)
	return payroll.NewPayslipResponse(emp.ID, emp.EmployeeCode, emp.FullName, from, to, p), nil
}

// MyPayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) MyPayslip(ctx context.Context, req payroll.PayslipRequest) (payroll.PayslipResponse, error) {
	req.EmployeeID = nil
	if err := req.Validate(); err != nil {
		return payroll.PayslipResponse{}, err
	}

	emp, err := employee.Current(ctx, s.employeeRepo)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	return s.compute(ctx, emp, req.Month, s.salaryFor(emp, req.BaseSalary, req.Allowance), payslip.Overrides{
		OtRate:      req.OtRate,
		HolidayRate: req.HolidayRate,
	})
}

// EmployeePayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) EmployeePayslip(ctx context.Context, req payroll.PayslipRequest) (payroll.PayslipResponse, error) {
	if req.EmployeeID == nil {
		return payroll.PayslipResponse{}, validator.ValidationErrors{{
			Field:   "employee_id",
			Message: "employee_id is required",
		}}
	}
	if err := req.Validate(); err != nil {
		return payroll.PayslipResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, *req.EmployeeID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	return s.compute(ctx, emp, req.Month, s.salaryFor(emp, req.BaseSalary, req.Allowance), payslip.Overrides{
		OtRate:      req.OtRate,
		HolidayRate: req.HolidayRate,
	})
}

// Calc implements payroll.PayrollService.
func (s *PayrollServiceImpl) Calc(ctx context.Context, req payroll.CalcRequest) (payroll.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayslipResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	baseSalary := payslip.MonthlySalaryFromHourly(req.BaseRate)
	allowance := decimal.Zero
	salary := s.salaryFor(emp, &baseSalary, &allowance)

	return s.compute(ctx, emp, req.Month, salary, payslip.Overrides{
		OtRate:      req.OtRate,
		HolidayRate: req.HolidayRate,
		HourlyRate:  &req.BaseRate,
	})
}

// WritePayslipPDF implements payroll.PayrollService.
func (s *PayrollServiceImpl) WritePayslipPDF(w io.Writer, p payroll.PayslipResponse) error {
	doc := export.PayslipDocument{
		EmployeeCode: p.EmployeeCode,
		EmployeeName: p.EmployeeName,
		Month:        p.Month,
		Attendance: []export.PayslipLine{
			{Label: "Period", Value: p.From + " to " + p.To},
			{Label: "Total work hours", Value: p.TotalWorkHours},
			{Label: "Normal hours", Value: p.NormalHours},
			{Label: "Overtime hours", Value: p.OtHours},
			{Label: "Holiday hours", Value: p.HolidayHours},
			{Label: "Late minutes", Value: fmt.Sprint(p.LateMinutes)},
			{Label: "Early leave minutes", Value: fmt.Sprint(p.EarlyMinutes)},
			{Label: "Paid leave days", Value: fmt.Sprint(p.PaidLeaveDays)},
			{Label: "Unpaid leave days", Value: fmt.Sprint(p.UnpaidLeaveDays)},
		},
		Earnings: []export.PayslipLine{
			{Label: "Base salary", Value: p.BaseSalary},
			{Label: "Allowance", Value: p.Allowance},
			{Label: "Overtime pay (x" + p.OtRate + ")", Value: p.OtPay},
			{Label: "Holiday pay (x" + p.HolidayRate + ")", Value: p.HolidayPay},
			{Label: "Gross pay", Value: p.GrossPay},
		},
		Deductions: []export.PayslipLine{
			{Label: "Late and early leave", Value: p.DeductionLate},
			{Label: "Unpaid leave", Value: p.DeductionUnpaidLeave},
			{Label: "Other", Value: p.OtherDeduction},
			{Label: "Tax", Value: p.Tax},
			{Label: "Total deduction", Value: p.TotalDeduction},
		},
		NetPay:      p.NetPay,
		GeneratedAt: s.now().In(s.loc),
	}

	if err := export.WritePayslipPDF(w, doc); err != nil {
		return fmt.Errorf("failed to render payslip: %w", err)
	}
	return nil
}
