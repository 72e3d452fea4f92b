package payroll

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/config"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/leave"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/user"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-timekeeping/internal/service/servicetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wib = time.FixedZone("WIB", 7*60*60)

func day(d int) time.Time {
	return time.Date(2026, time.October, d, 0, 0, 0, 0, time.UTC)
}

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

type fixture struct {
	svc       *PayrollServiceImpl
	employees *servicetest.Employees
	emp       employee.Employee
	ctx       context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	userID := "user-staff"
	emp := employee.Employee{
		ID:           servicetest.NewID(),
		UserID:       &userID,
		EmployeeCode: "EMP-007",
		FullName:     "Rina Wijaya",
		Email:        "rina@example.com",
	}

	records := servicetest.NewAttendance(
		attendance.Record{EmployeeID: emp.ID, ShiftID: "day", Date: day(5), WorkMinutes: 540, OtMinutes: 60, LateMinutes: 5},
		attendance.Record{EmployeeID: emp.ID, ShiftID: "day", Date: day(17), WorkMinutes: 480, IsHoliday: true},
		attendance.Record{EmployeeID: emp.ID, ShiftID: "day", Date: time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC), WorkMinutes: 480},
	)
	leaves := servicetest.NewLeaveRequests(
		leave.LeaveRequest{EmployeeID: emp.ID, FromDate: day(29), ToDate: time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC), Days: 3, Status: leave.StatusApproved},
		leave.LeaveRequest{EmployeeID: emp.ID, FromDate: day(8), ToDate: day(8), Days: 1, Status: leave.StatusApproved, Paid: true},
		leave.LeaveRequest{EmployeeID: emp.ID, FromDate: day(12), ToDate: day(12), Days: 1, Status: leave.StatusPending},
	)

	f := &fixture{employees: servicetest.NewEmployees(emp), emp: emp}
	svc := NewPayrollService(records, f.employees, leaves, config.PayrollConfig{
		DefaultBaseSalary:    decimal.NewFromInt(5_280_000),
		DefaultAllowance:     decimal.NewFromInt(500_000),
		DefaultOtRate:        decimal.NewFromFloat(1.5),
		DefaultHolidayRate:   decimal.NewFromInt(2),
		LatePenaltyPerMinute: decimal.NewFromInt(1_000),
	}, wib)
	f.svc = svc.(*PayrollServiceImpl)
	f.svc.now = func() time.Time { return time.Date(2026, 10, 19, 10, 0, 0, 0, wib) }
	f.ctx = servicetest.Context(t, jwt.Identity{UserID: userID, Role: user.RoleStaff})
	return f
}

func TestMyPayslip_DefaultsToCurrentMonth(t *testing.T) {
	f := newFixture(t)

	p, err := f.svc.MyPayslip(f.ctx, payroll.PayslipRequest{})
	require.NoError(t, err)

	assert.Equal(t, "2026-10", p.Month)
	assert.Equal(t, "2026-10-01", p.From)
	assert.Equal(t, "2026-10-31", p.To)
	assert.Equal(t, "17.00", p.TotalWorkHours)
	assert.Equal(t, "8.00", p.NormalHours)
	assert.Equal(t, "1.00", p.OtHours)
	assert.Equal(t, "8.00", p.HolidayHours)
	assert.Equal(t, 1, p.PaidLeaveDays)
	assert.Equal(t, 3, p.UnpaidLeaveDays, "the request spilling into November counts in full")

	assert.Equal(t, "30000.00", p.HourlyRate)
	assert.Equal(t, "45000.00", p.OtPay)
	assert.Equal(t, "480000.00", p.HolidayPay)
	assert.Equal(t, "6305000.00", p.GrossPay)
	assert.Equal(t, "5000.00", p.DeductionLate)
	assert.Equal(t, "720000.00", p.DeductionUnpaidLeave)
	assert.Equal(t, "725000.00", p.TotalDeduction)
	assert.Equal(t, "5580000.00", p.NetPay)
	assert.Equal(t, p.TotalDeduction, p.Penalty)
	assert.Equal(t, p.NetPay, p.TotalPay)
}

func TestMyPayslip_SalaryResolutionOrder(t *testing.T) {
	f := newFixture(t)

	emp := f.emp
	emp.BaseSalary = dec(3_520_000)
	f.employees.Items[emp.ID] = emp

	p, err := f.svc.MyPayslip(f.ctx, payroll.PayslipRequest{})
	require.NoError(t, err)
	assert.Equal(t, "3520000.00", p.BaseSalary, "employee setting beats the default")
	assert.Equal(t, "500000.00", p.Allowance)

	p, err = f.svc.MyPayslip(f.ctx, payroll.PayslipRequest{BaseSalary: dec(1_760_000), Allowance: dec(0), OtRate: dec(2)})
	require.NoError(t, err)
	assert.Equal(t, "1760000.00", p.BaseSalary, "query beats the employee setting")
	assert.Equal(t, "0.00", p.Allowance)
	assert.Equal(t, "10000.00", p.HourlyRate)
	assert.Equal(t, "2.00", p.OtRate)
}

func TestMyPayslip_OtherMonth(t *testing.T) {
	f := newFixture(t)
	month := "2026-09"

	p, err := f.svc.MyPayslip(f.ctx, payroll.PayslipRequest{Month: &month})
	require.NoError(t, err)
	assert.Equal(t, "8.00", p.TotalWorkHours)
	assert.Equal(t, 0, p.UnpaidLeaveDays)
}

func TestEmployeePayslip(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.EmployeePayslip(f.ctx, payroll.PayslipRequest{})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	missing := servicetest.NewID()
	_, err = f.svc.EmployeePayslip(f.ctx, payroll.PayslipRequest{EmployeeID: &missing})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	p, err := f.svc.EmployeePayslip(f.ctx, payroll.PayslipRequest{EmployeeID: &f.emp.ID})
	require.NoError(t, err)
	assert.Equal(t, "EMP-007", p.EmployeeCode)
}

func TestCalc_FromHourlyRate(t *testing.T) {
	f := newFixture(t)

	p, err := f.svc.Calc(f.ctx, payroll.CalcRequest{EmployeeID: f.emp.ID, BaseRate: decimal.NewFromInt(25_000)})
	require.NoError(t, err)
	assert.Equal(t, "4400000.00", p.BaseSalary)
	assert.Equal(t, "0.00", p.Allowance)
	assert.Equal(t, "25000.00", p.HourlyRate)
	assert.Equal(t, "37500.00", p.OtPay)

	_, err = f.svc.Calc(f.ctx, payroll.CalcRequest{EmployeeID: f.emp.ID, BaseRate: decimal.Zero})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestWritePayslipPDF(t *testing.T) {
	f := newFixture(t)

	p, err := f.svc.MyPayslip(f.ctx, payroll.PayslipRequest{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.svc.WritePayslipPDF(&buf, p))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
