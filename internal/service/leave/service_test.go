package leave

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/leave"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/user"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-timekeeping/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc        *LeaveServiceImpl
	annual     leave.LeaveTypeResponse
	staffCtx   context.Context
	managerCtx context.Context
	emp        employee.Employee
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	staffUser := "user-staff"
	emp := employee.Employee{ID: servicetest.NewID(), UserID: &staffUser, EmployeeCode: "EMP-001", FullName: "Wulan", Email: "wulan@example.com"}
	rule := "FREQ=YEARLY"
	holidays := servicetest.NewHolidays(holiday.Holiday{
		ID:             servicetest.NewID(),
		Date:           time.Date(2020, 8, 17, 0, 0, 0, 0, time.UTC),
		Name:           "Independence Day",
		RecurrenceRule: &rule,
	})

	svc := NewLeaveService(servicetest.NewLeaveTypes(), servicetest.NewLeaveRequests(), servicetest.NewEmployees(emp), holidays).(*LeaveServiceImpl)
	svc.now = func() time.Time { return time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC) }

	ctx := context.Background()
	annual, err := svc.CreateLeaveType(ctx, leave.LeaveTypeRequest{Name: " Annual ", Paid: true})
	require.NoError(t, err)

	return &fixture{
		svc:        svc,
		annual:     annual,
		emp:        emp,
		staffCtx:   servicetest.Context(t, jwt.Identity{UserID: staffUser, Role: user.RoleStaff}),
		managerCtx: servicetest.Context(t, jwt.Identity{UserID: "user-manager", Role: user.RoleManager}),
	}
}

func TestLeaveTypes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.Equal(t, "Annual", f.annual.Name)
	assert.True(t, f.annual.IsActive)

	_, err := f.svc.CreateLeaveType(ctx, leave.LeaveTypeRequest{Name: "Annual"})
	assert.ErrorIs(t, err, leave.ErrLeaveTypeNameExists)

	_, err = f.svc.CreateLeaveType(ctx, leave.LeaveTypeRequest{Name: "  "})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	inactive := false
	updated, err := f.svc.UpdateLeaveType(ctx, leave.LeaveTypeRequest{ID: f.annual.ID, Name: "Annual", Paid: true, IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	types, err := f.svc.ListLeaveTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 1)

	require.NoError(t, f.svc.DeleteLeaveType(ctx, f.annual.ID))
	_, err = f.svc.GetLeaveType(ctx, f.annual.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)
}

func TestCreateLeaveRequest_CountsWorkingDays(t *testing.T) {
	f := newFixture(t)

	// Fri 14 Aug to Tue 18 Aug 2026: the weekend and the recurring 17 Aug holiday are skipped.
	resp, err := f.svc.CreateLeaveRequest(f.staffCtx, leave.CreateLeaveRequestRequest{
		LeaveTypeID: f.annual.ID,
		FromDate:    "2026-08-14",
		ToDate:      "2026-08-18",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Days)
	assert.Equal(t, string(leave.StatusPending), resp.Status)
	assert.True(t, resp.Paid)
	assert.Equal(t, "Annual", *resp.LeaveTypeName)

	_, err = f.svc.CreateLeaveRequest(f.staffCtx, leave.CreateLeaveRequestRequest{
		LeaveTypeID: f.annual.ID,
		FromDate:    "2026-08-15",
		ToDate:      "2026-08-17",
	})
	assert.ErrorIs(t, err, leave.ErrNoWorkingDays)

	mine, err := f.svc.ListMyLeaveRequests(f.staffCtx)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestCreateLeaveRequest_Rejections(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateLeaveRequest(f.staffCtx, leave.CreateLeaveRequestRequest{
		LeaveTypeID: f.annual.ID,
		FromDate:    "2026-08-20",
		ToDate:      "2026-08-19",
	})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = f.svc.CreateLeaveRequest(f.staffCtx, leave.CreateLeaveRequestRequest{
		LeaveTypeID: servicetest.NewID(),
		FromDate:    "2026-08-20",
		ToDate:      "2026-08-20",
	})
	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)

	inactive := false
	_, err = f.svc.UpdateLeaveType(context.Background(), leave.LeaveTypeRequest{ID: f.annual.ID, Name: "Annual", IsActive: &inactive})
	require.NoError(t, err)
	_, err = f.svc.CreateLeaveRequest(f.staffCtx, leave.CreateLeaveRequestRequest{
		LeaveTypeID: f.annual.ID,
		FromDate:    "2026-08-20",
		ToDate:      "2026-08-20",
	})
	assert.ErrorIs(t, err, leave.ErrLeaveTypeInactive)

	unknownCtx := servicetest.Context(t, jwt.Identity{UserID: "nobody", Role: user.RoleStaff})
	_, err = f.svc.CreateLeaveRequest(unknownCtx, leave.CreateLeaveRequestRequest{
		LeaveTypeID: f.annual.ID,
		FromDate:    "2026-08-20",
		ToDate:      "2026-08-20",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestDecideLeaveRequest(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.CreateLeaveRequest(f.staffCtx, leave.CreateLeaveRequestRequest{LeaveTypeID: f.annual.ID, FromDate: "2026-08-20", ToDate: "2026-08-21"})
	require.NoError(t, err)
	second, err := f.svc.CreateLeaveRequest(f.staffCtx, leave.CreateLeaveRequestRequest{LeaveTypeID: f.annual.ID, FromDate: "2026-08-24", ToDate: "2026-08-24"})
	require.NoError(t, err)

	approved, err := f.svc.ApproveLeaveRequest(f.managerCtx, leave.DecideLeaveRequestRequest{ID: first.ID})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), approved.Status)
	assert.Equal(t, "user-manager", *approved.ApproverID)
	assert.NotNil(t, approved.DecisionAt)

	_, err = f.svc.RejectLeaveRequest(f.managerCtx, leave.DecideLeaveRequestRequest{ID: first.ID})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	note := "team offsite"
	rejected, err := f.svc.RejectLeaveRequest(f.managerCtx, leave.DecideLeaveRequestRequest{ID: second.ID, Note: &note})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusRejected), rejected.Status)
	assert.Equal(t, note, *rejected.Note)

	_, err = f.svc.ApproveLeaveRequest(f.managerCtx, leave.DecideLeaveRequestRequest{ID: servicetest.NewID()})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	status := string(leave.StatusPending)
	pending, err := f.svc.ListLeaveRequests(f.managerCtx, leave.LeaveRequestFilter{Status: &status})
	require.NoError(t, err)
	assert.Empty(t, pending)
}
