package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/leave"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/report"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/export"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/validator"
)

type ReportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	leaveRepo      leave.LeaveRequestRepository
	loc            *time.Location
	now            func() time.Time
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRequestRepository,
	loc *time.Location,
) report.ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		leaveRepo:      leaveRepo,
		loc:            loc,
		now:            time.Now,
	}
}

type timesheet struct {
	employee employee.Employee
	from, to time.Time
	records  []attendance.Record
	summary  report.TimesheetSummary
}

// subject resolves whose timesheet is requested. Staff may only query themselves.
func (s *ReportServiceImpl) subject(ctx context.Context, employeeID *string) (employee.Employee, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return employee.Employee{}, err
	}

	self, selfErr := employee.Current(ctx, s.employeeRepo)
	if employeeID == nil {
		return self, selfErr
	}
	if selfErr == nil && self.ID == *employeeID {
		return self, nil
	}
	if !identity.IsManager() {
		return employee.Employee{}, report.ErrTimesheetForbidden
	}
	return s.employeeRepo.GetByID(ctx, *employeeID)
}

func (s *ReportServiceImpl) build(ctx context.Context, req report.TimesheetRequest) (timesheet, error) {
	if err := req.Validate(); err != nil {
		return timesheet{}, err
	}

	emp, err := s.subject(ctx, req.EmployeeID)
	if err != nil {
		return timesheet{}, err
	}

	first, _ := validator.IsValidMonth(req.Month)
	from, to := calendar.MonthRange(first)

	records, err := s.attendanceRepo.ListByEmployeeRange(ctx, emp.ID, from, to)
	if err != nil {
		return timesheet{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	var summary report.TimesheetSummary
	for _, r := range records {
		summary.TotalWorkMinutes += r.WorkMinutes
		summary.TotalLateMinutes += r.LateMinutes
		summary.TotalEarlyMinutes += r.EarlyMinutes
		summary.TotalOtMinutes += r.OtMinutes
		if r.IsHoliday {
			summary.HolidayShifts++
		}
	}

	requests, err := s.leaveRepo.ListApprovedOverlapping(ctx, emp.ID, from, to)
	if err != nil {
		return timesheet{}, fmt.Errorf("failed to list approved leave: %w", err)
	}
	for _, entry := range leave.LeaveEntries(requests, from, to) {
		if entry.Paid {
			summary.PaidLeaveDays += entry.Days
		} else {
			summary.UnpaidLeaveDays += entry.Days
		}
	}

	return timesheet{employee: emp, from: from, to: to, records: records, summary: summary}, nil
}

func (s *ReportServiceImpl) formatClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.In(s.loc).Format(time.RFC3339)
	return &v
}

// Timesheet implements report.ReportService.
func (s *ReportServiceImpl) Timesheet(ctx context.Context, req report.TimesheetRequest) (report.TimesheetReport, error) {
	ts, err := s.build(ctx, req)
	if err != nil {
		return report.TimesheetReport{}, err
	}

	days := make([]report.TimesheetDay, 0, len(ts.records))
	for _, r := range ts.records {
		days = append(days, report.TimesheetDay{
			Date:         r.Date.Format("2006-01-02"),
			ShiftID:      r.ShiftID,
			ShiftName:    r.ShiftName,
			CheckIn:      s.formatClock(r.CheckIn),
			CheckOut:     s.formatClock(r.CheckOut),
			WorkMinutes:  r.WorkMinutes,
			LateMinutes:  r.LateMinutes,
			EarlyMinutes: r.EarlyMinutes,
			OtMinutes:    r.OtMinutes,
			IsHoliday:    r.IsHoliday,
			Status:       string(r.Status),
		})
	}

	return report.TimesheetReport{
		EmployeeID:   ts.employee.ID,
		EmployeeCode: ts.employee.EmployeeCode,
		EmployeeName: ts.employee.FullName,
		Month:        ts.from.Format("2006-01"),
		From:         ts.from.Format("2006-01-02"),
		To:           ts.to.Format("2006-01-02"),
		GeneratedAt:  s.now().In(s.loc).Format(time.RFC3339),
		Days:         days,
		Summary:      ts.summary,
	}, nil
}

// ExportTimesheet implements report.ReportService.
func (s *ReportServiceImpl) ExportTimesheet(ctx context.Context, req report.TimesheetRequest, w io.Writer) error {
	ts, err := s.build(ctx, req)
	if err != nil {
		return err
	}

	rows := make([]export.TimesheetRow, 0, len(ts.records))
	for _, r := range ts.records {
		rows = append(rows, export.TimesheetRow{
			Date:         r.Date,
			CheckIn:      r.CheckIn,
			CheckOut:     r.CheckOut,
			WorkMinutes:  r.WorkMinutes,
			LateMinutes:  r.LateMinutes,
			EarlyMinutes: r.EarlyMinutes,
			OtMinutes:    r.OtMinutes,
			IsHoliday:    r.IsHoliday,
			Status:       string(r.Status),
		})
	}

	err = export.WriteTimesheetXLSX(w, export.Timesheet{
		EmployeeCode: ts.employee.EmployeeCode,
		EmployeeName: ts.employee.FullName,
		Month:        ts.from.Format("2006-01"),
		Location:     s.loc,
		Rows:         rows,
		Totals: export.TimesheetTotals{
			WorkMinutes:     ts.summary.TotalWorkMinutes,
			LateMinutes:     ts.summary.TotalLateMinutes,
			EarlyMinutes:    ts.summary.TotalEarlyMinutes,
			OtMinutes:       ts.summary.TotalOtMinutes,
			HolidayShifts:   ts.summary.HolidayShifts,
			PaidLeaveDays:   ts.summary.PaidLeaveDays,
			UnpaidLeaveDays: ts.summary.UnpaidLeaveDays,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to write timesheet workbook: %w", err)
	}

	slog.Info("timesheet exported", "employee_id", ts.employee.ID, "month", ts.from.Format("2006-01"), "rows", len(rows))
	return nil
}
