package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/config"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/officelocation"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/shift"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/user"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/facematch"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/geo"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/timekeeping"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	shiftRepo      shift.ShiftRepository
	holidayRepo    holiday.HolidayRepository
	officeRepo     officelocation.OfficeLocationRepository
	userRepo       user.UserRepository

	// checkInMatcher gates /attendance/check-in/face, kioskMatcher the face attendance flow.
	checkInMatcher facematch.Matcher
	kioskMatcher   facematch.Matcher

	loc *time.Location
	now func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	shiftRepo shift.ShiftRepository,
	holidayRepo holiday.HolidayRepository,
	officeRepo officelocation.OfficeLocationRepository,
	userRepo user.UserRepository,
	faceConfig config.FaceMatchConfig,
	loc *time.Location,
) (attendance.AttendanceService, error) {
	checkInMatcher, err := facematch.NewMatcher(faceConfig.AttendanceThreshold)
	if err != nil {
		return nil, fmt.Errorf("attendance face threshold: %w", err)
	}
	kioskMatcher, err := facematch.NewMatcher(faceConfig.FaceAttendanceThreshold)
	if err != nil {
		return nil, fmt.Errorf("face attendance threshold: %w", err)
	}
	if loc == nil {
		loc = time.UTC
	}

	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		shiftRepo:      shiftRepo,
		holidayRepo:    holidayRepo,
		officeRepo:     officeRepo,
		userRepo:       userRepo,
		checkInMatcher: checkInMatcher,
		kioskMatcher:   kioskMatcher,
		loc:            loc,
		now:            time.Now,
	}, nil
}

// today returns the current instant and the calendar day it falls on in the configured zone.
func (s *AttendanceServiceImpl) today() (time.Time, time.Time) {
	now := s.now().In(s.loc)
	return now, s.dayOf(now)
}

// dayOf anchors the calendar date of t at midnight in the configured zone.
func (s *AttendanceServiceImpl) dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.loc)
}

func (s *AttendanceServiceImpl) resolveShift(ctx context.Context, shiftID *string) (shift.Shift, error) {
	if shiftID == nil || *shiftID == "" {
		return s.shiftRepo.GetDefault(ctx)
	}
	return s.shiftRepo.GetByID(ctx, *shiftID)
}

func (s *AttendanceServiceImpl) isHoliday(ctx context.Context, date time.Time) (bool, error) {
	cal, err := holiday.LoadCalendar(ctx, s.holidayRepo)
	if err != nil {
		return false, err
	}
	return cal.IsHoliday(date), nil
}

// verifyFace compares probe against the employee's enrolled baseline.
func (s *AttendanceServiceImpl) verifyFace(emp employee.Employee, matcher facematch.Matcher, probe facematch.Embedding) (float64, error) {
	if !emp.HasFaceEmbedding() {
		return 0, employee.ErrFaceEmbeddingMissing
	}

	similarity, ok := matcher.Match(emp.FaceEmbedding, probe)
	if ok {
		return similarity, nil
	}

	mismatch := &attendance.FaceMismatchError{Threshold: matcher.Threshold()}
	if !facematch.IsUndefined(similarity) {
		mismatch.Similarity = &similarity
	}
	slog.Warn("face check rejected", "employee_id", emp.ID, "similarity", similarity, "threshold", matcher.Threshold())
	return similarity, mismatch
}

// verifyLocation enforces the active office geofence. Without an active office every position passes.
func (s *AttendanceServiceImpl) verifyLocation(ctx context.Context, empID string, lat, lon *float64) error {
	office, err := s.officeRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, officelocation.ErrOfficeLocationNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get office location: %w", err)
	}

	if lat == nil || lon == nil {
		return attendance.ErrLocationRequired
	}

	fence, err := office.Fence()
	if err != nil {
		return fmt.Errorf("office location %s: %w", office.ID, err)
	}

	distance := geo.DistanceMeters(geo.Point{Latitude: *lat, Longitude: *lon}, office.Center())
	if !fence.ContainsDistance(distance) {
		slog.Warn("check-in outside geofence", "employee_id", empID, "distance_meters", math.Round(distance), "radius_meters", office.RadiusMeters)
		return &attendance.GeofenceError{DistanceMeters: distance, RadiusMeters: office.RadiusMeters}
	}
	return nil
}

// recompute refreshes the minute fields of rec from its punches.
func (s *AttendanceServiceImpl) recompute(rec *attendance.Record, sh shift.Shift) error {
	computed := timekeeping.ComputeAttendance(sh.Config(), s.dayOf(rec.Date), rec.CheckIn, rec.CheckOut)
	if computed.WorkMinutes < 0 {
		return attendance.ErrCheckOutBeforeCheckIn
	}
	rec.Apply(computed)
	return nil
}

// checkIn opens a record stamped at now.
func (s *AttendanceServiceImpl) checkIn(ctx context.Context, emp employee.Employee, sh shift.Shift, now time.Time, note *string) (attendance.Record, error) {
	date := s.dayOf(now)

	holidayToday, err := s.isHoliday(ctx, date)
	if err != nil {
		return attendance.Record{}, err
	}

	created, err := s.attendanceRepo.Create(ctx, attendance.Record{
		EmployeeID: emp.ID,
		ShiftID:    sh.ID,
		Date:       date,
		CheckIn:    &now,
		IsHoliday:  holidayToday,
		Note:       note,
		Status:     attendance.StatusPending,
	})
	if err != nil {
		return attendance.Record{}, err
	}
	slog.Info("checked in", "attendance_id", created.ID, "employee_id", emp.ID, "shift_id", sh.ID)

	created.EmployeeName = &emp.FullName
	created.ShiftName = &sh.Name
	return created, nil
}

// findOpenRecord returns the record a check-out without a shift closes. An overnight
// shift started the previous day is still open after midnight.
func (s *AttendanceServiceImpl) findOpenRecord(ctx context.Context, empID string, date time.Time) (attendance.Record, shift.Shift, error) {
	rec, err := s.attendanceRepo.GetLatestOpen(ctx, empID, date)
	if err == nil {
		sh, err := s.shiftRepo.GetByID(ctx, rec.ShiftID)
		return rec, sh, err
	}
	if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.Record{}, shift.Shift{}, err
	}

	prev, err := s.attendanceRepo.GetLatestOpen(ctx, empID, date.AddDate(0, 0, -1))
	if err == nil {
		sh, err := s.shiftRepo.GetByID(ctx, prev.ShiftID)
		if err != nil {
			return attendance.Record{}, shift.Shift{}, err
		}
		if sh.IsOvernight {
			return prev, sh, nil
		}
	} else if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.Record{}, shift.Shift{}, err
	}

	records, err := s.attendanceRepo.ListByEmployeeDate(ctx, empID, date)
	if err != nil {
		return attendance.Record{}, shift.Shift{}, err
	}
	if len(records) > 0 {
		return attendance.Record{}, shift.Shift{}, attendance.ErrAlreadyCheckedOut
	}
	return attendance.Record{}, shift.Shift{}, attendance.ErrNotCheckedIn
}

// findShiftRecord returns the employee's record for shiftID on date. An overnight
// shift checked into yesterday is found after midnight.
func (s *AttendanceServiceImpl) findShiftRecord(ctx context.Context, empID, shiftID string, date time.Time) (attendance.Record, shift.Shift, error) {
	sh, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return attendance.Record{}, shift.Shift{}, err
	}

	rec, err := s.attendanceRepo.GetByEmployeeShiftDate(ctx, empID, sh.ID, date)
	if errors.Is(err, attendance.ErrAttendanceNotFound) && sh.IsOvernight {
		prev, prevErr := s.attendanceRepo.GetByEmployeeShiftDate(ctx, empID, sh.ID, date.AddDate(0, 0, -1))
		if prevErr == nil && prev.CheckOut == nil {
			return prev, sh, nil
		}
		if prevErr != nil && !errors.Is(prevErr, attendance.ErrAttendanceNotFound) {
			return attendance.Record{}, shift.Shift{}, prevErr
		}
	}
	if errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.Record{}, shift.Shift{}, attendance.ErrNotCheckedIn
	}
	if err != nil {
		return attendance.Record{}, shift.Shift{}, err
	}
	return rec, sh, nil
}

func (s *AttendanceServiceImpl) checkOut(ctx context.Context, rec attendance.Record, sh shift.Shift, now time.Time, note string) (attendance.Record, error) {
	if rec.CheckIn == nil {
		return attendance.Record{}, attendance.ErrNotCheckedIn
	}
	if rec.CheckOut != nil {
		return attendance.Record{}, attendance.ErrAlreadyCheckedOut
	}

	rec.CheckOut = &now
	if note != "" {
		rec.AppendNote(note)
	}

	holidayOnDate, err := s.isHoliday(ctx, s.dayOf(rec.Date))
	if err != nil {
		return attendance.Record{}, err
	}
	rec.IsHoliday = holidayOnDate

	if err := s.recompute(&rec, sh); err != nil {
		return attendance.Record{}, err
	}

	updated, err := s.attendanceRepo.Update(ctx, rec)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to save check-out: %w", err)
	}
	slog.Info("checked out", "attendance_id", updated.ID, "employee_id", updated.EmployeeID,
		"work_minutes", updated.WorkMinutes, "late_minutes", updated.LateMinutes, "ot_minutes", updated.OtMinutes)
	return updated, nil
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := employee.Current(ctx, s.employeeRepo)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	sh, err := s.resolveShift(ctx, req.ShiftID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now, _ := s.today()
	rec, err := s.checkIn(ctx, emp, sh, now, nil)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(rec), nil
}

// FaceCheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) FaceCheckIn(ctx context.Context, req attendance.FaceCheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := employee.Current(ctx, s.employeeRepo)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	similarity, err := s.verifyFace(emp, s.checkInMatcher, req.Embedding)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := s.verifyLocation(ctx, emp.ID, req.Latitude, req.Longitude); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	sh, err := s.resolveShift(ctx, req.ShiftID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now, _ := s.today()
	rec, err := s.checkIn(ctx, emp, sh, now, nil)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	resp := attendance.NewAttendanceResponse(rec)
	resp.Similarity = &similarity
	return resp, nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := employee.Current(ctx, s.employeeRepo)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	now, date := s.today()

	var (
		rec attendance.Record
		sh  shift.Shift
	)
	if req.ShiftID != nil && *req.ShiftID != "" {
		rec, sh, err = s.findShiftRecord(ctx, emp.ID, *req.ShiftID, date)
	} else {
		rec, sh, err = s.findOpenRecord(ctx, emp.ID, date)
	}
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	updated, err := s.checkOut(ctx, rec, sh, now, "")
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(updated), nil
}

// Today implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Today(ctx context.Context) (attendance.TodayAttendanceResponse, error) {
	emp, err := employee.Current(ctx, s.employeeRepo)
	if err != nil {
		return attendance.TodayAttendanceResponse{}, err
	}
	_, date := s.today()

	records, err := s.attendanceRepo.ListByEmployeeDate(ctx, emp.ID, date)
	if err != nil {
		return attendance.TodayAttendanceResponse{}, fmt.Errorf("failed to list today's attendance: %w", err)
	}
	if len(records) == 0 {
		return attendance.TodayAttendanceResponse{HasRecord: false}, nil
	}

	first, last := records[0], records[len(records)-1]
	status := string(last.Status)
	resp := attendance.TodayAttendanceResponse{
		HasRecord: true,
		ShiftID:   &first.ShiftID,
		ShiftName: first.ShiftName,
		Status:    &status,
	}
	if first.CheckIn != nil {
		v := first.CheckIn.Format(time.RFC3339)
		resp.FirstCheckInAt = &v
	}
	if last.CheckOut != nil {
		v := last.CheckOut.Format(time.RFC3339)
		resp.LastCheckOutAt = &v
	}
	return resp, nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewAttendanceResponse(r))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
		Attendances: responses,
	}, nil
}

// decide loads a record and stamps the approver fields before mutate runs.
func (s *AttendanceServiceImpl) decide(ctx context.Context, id string, mutate func(rec *attendance.Record, sh shift.Shift) error) (attendance.AttendanceResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	sh, err := s.shiftRepo.GetByID(ctx, rec.ShiftID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := mutate(&rec, sh); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	approvedAt := s.now().In(s.loc)
	rec.ApproverID = &identity.UserID
	rec.ApprovedAt = &approvedAt

	updated, err := s.attendanceRepo.Update(ctx, rec)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	approver, err := s.userRepo.GetByID(ctx, identity.UserID)
	if err == nil {
		updated.ApproverName = &approver.FullName
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("attendance decided", "attendance_id", updated.ID, "status", updated.Status, "approver_id", identity.UserID)
	return attendance.NewAttendanceResponse(updated), nil
}

// ApproveAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ApproveAttendance(ctx context.Context, req attendance.ApproveAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return s.decide(ctx, req.ID, func(rec *attendance.Record, _ shift.Shift) error {
		rec.Status = attendance.StatusApproved
		rec.ManagerNote = req.ManagerNote
		return nil
	})
}

// RejectAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RejectAttendance(ctx context.Context, req attendance.RejectAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return s.decide(ctx, req.ID, func(rec *attendance.Record, _ shift.Shift) error {
		rec.Status = attendance.StatusRejected
		rec.ManagerNote = req.Reason
		return nil
	})
}

// FixAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) FixAttendance(ctx context.Context, req attendance.FixAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	checkIn, checkOut := req.Punches()

	return s.decide(ctx, req.ID, func(rec *attendance.Record, sh shift.Shift) error {
		if checkIn != nil {
			rec.CheckIn = checkIn
			rec.ManualCheckIn = checkIn
		}
		if checkOut != nil {
			rec.CheckOut = checkOut
			rec.ManualCheckOut = checkOut
		}
		if err := s.recompute(rec, sh); err != nil {
			return err
		}
		reason := req.FixReason
		rec.FixReason = &reason
		rec.ManagerNote = req.ManagerNote
		rec.Status = attendance.StatusFixed
		return nil
	})
}

// FaceToday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) FaceToday(ctx context.Context) (attendance.FaceTodayResponse, error) {
	emp, err := employee.Current(ctx, s.employeeRepo)
	if err != nil {
		return attendance.FaceTodayResponse{}, err
	}
	_, date := s.today()

	resp := attendance.FaceTodayResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		Date:         date.Format("2006-01-02"),
	}

	records, err := s.attendanceRepo.ListByEmployeeDate(ctx, emp.ID, date)
	if err != nil {
		return attendance.FaceTodayResponse{}, fmt.Errorf("failed to list today's attendance: %w", err)
	}
	if len(records) == 0 {
		return resp, nil
	}

	rec := records[len(records)-1]
	status := string(rec.Status)
	resp.Status = &status
	if rec.CheckIn != nil {
		v := rec.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &v
		resp.HasCheckIn = true
	}
	if rec.CheckOut != nil {
		v := rec.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &v
		resp.HasCheckOut = true
	}
	return resp, nil
}

// faceNote renders the audit line appended to a record by the kiosk flow.
func faceNote(action string, at time.Time, similarity float64, req attendance.FaceAttendanceRequest) string {
	note := fmt.Sprintf("Face %s %s, sim=%.2f", action, at.Format("15:04:05"), similarity)
	if req.Latitude != nil && req.Longitude != nil {
		note += fmt.Sprintf(" @(%.6f,%.6f)", *req.Latitude, *req.Longitude)
	}
	if req.LocationName != nil && *req.LocationName != "" {
		note += " - " + *req.LocationName
	}
	return note
}

// FaceAttendanceCheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) FaceAttendanceCheckIn(ctx context.Context, req attendance.FaceAttendanceRequest) (attendance.FaceAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.FaceAttendanceResponse{}, err
	}

	emp, err := employee.Current(ctx, s.employeeRepo)
	if err != nil {
		return attendance.FaceAttendanceResponse{}, err
	}
	similarity, err := s.verifyFace(emp, s.kioskMatcher, req.Embedding)
	if err != nil {
		return attendance.FaceAttendanceResponse{}, err
	}
	if err := s.verifyLocation(ctx, emp.ID, req.Latitude, req.Longitude); err != nil {
		return attendance.FaceAttendanceResponse{}, err
	}

	sh, err := s.shiftRepo.GetDefault(ctx)
	if err != nil {
		return attendance.FaceAttendanceResponse{}, err
	}

	now, _ := s.today()
	note := faceNote("check-in", now, similarity, req)
	rec, err := s.checkIn(ctx, emp, sh, now, &note)
	if err != nil {
		return attendance.FaceAttendanceResponse{}, err
	}

	return attendance.FaceAttendanceResponse{
		Attendance: attendance.NewAttendanceResponse(rec),
		Similarity: similarity,
	}, nil
}

// FaceAttendanceCheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) FaceAttendanceCheckOut(ctx context.Context, req attendance.FaceAttendanceRequest) (attendance.FaceAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.FaceAttendanceResponse{}, err
	}

	emp, err := employee.Current(ctx, s.employeeRepo)
	if err != nil {
		return attendance.FaceAttendanceResponse{}, err
	}
	similarity, err := s.verifyFace(emp, s.kioskMatcher, req.Embedding)
	if err != nil {
		return attendance.FaceAttendanceResponse{}, err
	}
	if err := s.verifyLocation(ctx, emp.ID, req.Latitude, req.Longitude); err != nil {
		return attendance.FaceAttendanceResponse{}, err
	}

	now, date := s.today()
	rec, sh, err := s.findOpenRecord(ctx, emp.ID, date)
	if err != nil {
		return attendance.FaceAttendanceResponse{}, err
	}

	updated, err := s.checkOut(ctx, rec, sh, now, faceNote("check-out", now, similarity, req))
	if err != nil {
		return attendance.FaceAttendanceResponse{}, err
	}
	updated.EmployeeName = &emp.FullName
	updated.ShiftName = &sh.Name

	return attendance.FaceAttendanceResponse{
		Attendance: attendance.NewAttendanceResponse(updated),
		Similarity: similarity,
	}, nil
}
