package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/leave"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/report"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/user"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-timekeeping/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var wib = time.FixedZone("WIB", 7*60*60)

func day(d int) time.Time {
	return time.Date(2026, time.October, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	svc        report.ReportService
	staff      employee.Employee
	other      employee.Employee
	staffCtx   context.Context
	managerCtx context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	staffUser, managerUser := "user-staff", "user-manager"
	staff := employee.Employee{ID: servicetest.NewID(), UserID: &staffUser, EmployeeCode: "EMP-001", FullName: "Sari", Email: "sari@example.com"}
	manager := employee.Employee{ID: servicetest.NewID(), UserID: &managerUser, EmployeeCode: "EMP-002", FullName: "Agus", Email: "agus@example.com"}
	other := employee.Employee{ID: servicetest.NewID(), EmployeeCode: "EMP-003", FullName: "Tono", Email: "tono@example.com"}

	in := time.Date(2026, 10, 5, 9, 20, 0, 0, wib)
	out := time.Date(2026, 10, 5, 17, 30, 0, 0, wib)
	records := servicetest.NewAttendance(
		attendance.Record{EmployeeID: staff.ID, ShiftID: "day", Date: day(5), CheckIn: &in, CheckOut: &out,
			WorkMinutes: 490, LateMinutes: 10, OtMinutes: 10, Status: attendance.StatusApproved},
		attendance.Record{EmployeeID: staff.ID, ShiftID: "day", Date: day(19), WorkMinutes: 480, IsHoliday: true, Status: attendance.StatusPending},
		attendance.Record{EmployeeID: other.ID, ShiftID: "day", Date: day(6), WorkMinutes: 300, EarlyMinutes: 180, Status: attendance.StatusPending},
	)
	leaves := servicetest.NewLeaveRequests(
		leave.LeaveRequest{EmployeeID: staff.ID, FromDate: day(12), ToDate: day(14), Days: 3, Paid: true, Status: leave.StatusApproved},
		leave.LeaveRequest{EmployeeID: staff.ID, FromDate: day(26), ToDate: day(26), Days: 1, Status: leave.StatusApproved},
	)

	svc := NewReportService(records, servicetest.NewEmployees(staff, manager, other), leaves, wib)
	svc.(*ReportServiceImpl).now = func() time.Time { return time.Date(2026, 11, 1, 8, 0, 0, 0, wib) }

	return &fixture{
		svc:        svc,
		staff:      staff,
		other:      other,
		staffCtx:   servicetest.Context(t, jwt.Identity{UserID: staffUser, Role: user.RoleStaff}),
		managerCtx: servicetest.Context(t, jwt.Identity{UserID: managerUser, Role: user.RoleManager}),
	}
}

func TestTimesheet_Self(t *testing.T) {
	f := newFixture(t)

	ts, err := f.svc.Timesheet(f.staffCtx, report.TimesheetRequest{Month: "2026-10"})
	require.NoError(t, err)

	assert.Equal(t, f.staff.ID, ts.EmployeeID)
	assert.Equal(t, "2026-10-01", ts.From)
	assert.Equal(t, "2026-10-31", ts.To)
	require.Len(t, ts.Days, 2)
	assert.Equal(t, "2026-10-05", ts.Days[0].Date)
	assert.Equal(t, "2026-10-05T09:20:00+07:00", *ts.Days[0].CheckIn)

	assert.Equal(t, report.TimesheetSummary{
		TotalWorkMinutes: 970,
		TotalLateMinutes: 10,
		TotalOtMinutes:   10,
		HolidayShifts:    1,
		PaidLeaveDays:    3,
		UnpaidLeaveDays:  1,
	}, ts.Summary)
}

func TestTimesheet_StaffCannotQueryOthers(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Timesheet(f.staffCtx, report.TimesheetRequest{EmployeeID: &f.other.ID, Month: "2026-10"})
	assert.ErrorIs(t, err, report.ErrTimesheetForbidden)

	ts, err := f.svc.Timesheet(f.staffCtx, report.TimesheetRequest{EmployeeID: &f.staff.ID, Month: "2026-10"})
	require.NoError(t, err)
	assert.Equal(t, f.staff.ID, ts.EmployeeID)
}

func TestTimesheet_ManagerQueriesAnyone(t *testing.T) {
	f := newFixture(t)

	ts, err := f.svc.Timesheet(f.managerCtx, report.TimesheetRequest{EmployeeID: &f.other.ID, Month: "2026-10"})
	require.NoError(t, err)
	assert.Equal(t, 180, ts.Summary.TotalEarlyMinutes)

	missing := servicetest.NewID()
	_, err = f.svc.Timesheet(f.managerCtx, report.TimesheetRequest{EmployeeID: &missing, Month: "2026-10"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestTimesheet_RequiresMonth(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Timesheet(f.staffCtx, report.TimesheetRequest{Month: "October"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestExportTimesheet_WritesWorkbook(t *testing.T) {
	f := newFixture(t)

	var buf bytes.Buffer
	require.NoError(t, f.svc.ExportTimesheet(f.staffCtx, report.TimesheetRequest{Month: "2026-10"}, &buf))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer wb.Close()
	assert.NotEmpty(t, wb.GetSheetList())
}
