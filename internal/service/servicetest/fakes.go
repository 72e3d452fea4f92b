// Package servicetest holds in-memory repository fakes shared by the service tests.
package servicetest

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/leave"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/officelocation"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/shift"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/user"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/facematch"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/jwt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

// Context returns a context carrying identity, as the auth middleware would.
func Context(t *testing.T, identity jwt.Identity) context.Context {
	t.Helper()
	svc := jwt.NewJWTService(testSecret, "1h", "24h")
	ctx, err := jwt.NewContext(context.Background(), svc.JWTAuth(), identity)
	require.NoError(t, err)
	return ctx
}

// NewID returns a UUIDv7, the id format the API validates.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

// Tx runs the function directly.
type Tx struct{}

func (Tx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Users is a fake user.UserRepository.
type Users struct {
	mu    sync.Mutex
	Items map[string]user.User
}

func NewUsers(users ...user.User) *Users {
	r := &Users{Items: map[string]user.User{}}
	for _, u := range users {
		r.Items[u.ID] = u
	}
	return r
}

func (r *Users) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.Items {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *Users) GetByID(ctx context.Context, id string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.Items[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *Users) Create(ctx context.Context, newUser user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	newUser.ID = NewID()
	r.Items[newUser.ID] = newUser
	return newUser, nil
}

func (r *Users) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *Users) List(ctx context.Context) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]user.User, 0, len(r.Items))
	for _, u := range r.Items {
		out = append(out, u)
	}
	return out, nil
}

func (r *Users) UpdateRole(ctx context.Context, id string, role user.Role) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.Items[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	u.Role = role
	r.Items[id] = u
	return u, nil
}

// Employees is a fake employee.EmployeeRepository.
type Employees struct {
	mu    sync.Mutex
	Items map[string]employee.Employee
}

func NewEmployees(emps ...employee.Employee) *Employees {
	r := &Employees{Items: map[string]employee.Employee{}}
	for _, e := range emps {
		r.Items[e.ID] = e
	}
	return r
}

func (r *Employees) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.Items[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *Employees) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.Items {
		if e.UserID != nil && *e.UserID == userID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *Employees) GetUnlinkedByEmail(ctx context.Context, email string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.Items {
		if e.UserID == nil && e.Email == email {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *Employees) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.Items {
		if e.EmployeeCode == newEmployee.EmployeeCode {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		if e.Email == newEmployee.Email {
			return employee.Employee{}, employee.ErrEmailExists
		}
	}
	newEmployee.ID = NewID()
	r.Items[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

func (r *Employees) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.Items[req.ID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	if req.EmployeeCode != nil {
		e.EmployeeCode = *req.EmployeeCode
	}
	if req.FullName != nil {
		e.FullName = *req.FullName
	}
	if req.Email != nil {
		e.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		e.PhoneNumber = req.PhoneNumber
	}
	if req.DepartmentID != nil {
		e.DepartmentID = req.DepartmentID
	}
	if req.PositionID != nil {
		e.PositionID = req.PositionID
	}
	r.Items[e.ID] = e
	return nil
}

func (r *Employees) UpdateProfile(ctx context.Context, id string, req employee.UpdateProfileRequest) error {
	return r.mutate(id, func(e *employee.Employee) {
		e.FullName = req.FullName
		e.PhoneNumber = req.PhoneNumber
	})
}

func (r *Employees) LinkUser(ctx context.Context, id string, userID string) error {
	return r.mutate(id, func(e *employee.Employee) { e.UserID = &userID })
}

func (r *Employees) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Items[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(r.Items, id)
	return nil
}

func (r *Employees) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]employee.Employee, 0, len(r.Items))
	for _, e := range r.Items {
		if filter.DepartmentID != nil && (e.DepartmentID == nil || *e.DepartmentID != *filter.DepartmentID) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeCode < out[j].EmployeeCode })
	return out, int64(len(out)), nil
}

func (r *Employees) UpdateFaceProfile(ctx context.Context, id string, key string) error {
	return r.mutate(id, func(e *employee.Employee) { e.FaceProfileKey = &key })
}

func (r *Employees) UpdateFaceEmbedding(ctx context.Context, id string, embedding facematch.Embedding) error {
	return r.mutate(id, func(e *employee.Employee) { e.FaceEmbedding = embedding })
}

func (r *Employees) UpdatePayrollSettings(ctx context.Context, id string, baseSalary, allowance *decimal.Decimal) error {
	return r.mutate(id, func(e *employee.Employee) {
		e.BaseSalary = baseSalary
		e.Allowance = allowance
	})
}

func (r *Employees) mutate(id string, fn func(e *employee.Employee)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.Items[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	fn(&e)
	r.Items[id] = e
	return nil
}

// Shifts is a fake shift.ShiftRepository.
type Shifts struct {
	mu    sync.Mutex
	Items map[string]shift.Shift
}

func NewShifts(shifts ...shift.Shift) *Shifts {
	r := &Shifts{Items: map[string]shift.Shift{}}
	for _, s := range shifts {
		r.Items[s.ID] = s
	}
	return r
}

func (r *Shifts) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.Items {
		if existing.Name == s.Name {
			return shift.Shift{}, shift.ErrShiftNameExists
		}
	}
	s.ID = NewID()
	r.Items[s.ID] = s
	return s, nil
}

func (r *Shifts) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.Items[id]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return s, nil
}

func (r *Shifts) GetDefault(ctx context.Context) (shift.Shift, error) {
	shifts, _ := r.List(ctx)
	for _, s := range shifts {
		if s.IsActive {
			return s, nil
		}
	}
	return shift.Shift{}, shift.ErrNoActiveShift
}

func (r *Shifts) List(ctx context.Context) ([]shift.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]shift.Shift, 0, len(r.Items))
	for _, s := range r.Items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (r *Shifts) Update(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Items[s.ID]; !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	r.Items[s.ID] = s
	return s, nil
}

func (r *Shifts) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Items[id]; !ok {
		return shift.ErrShiftNotFound
	}
	delete(r.Items, id)
	return nil
}

// Holidays is a fake holiday.HolidayRepository.
type Holidays struct {
	mu    sync.Mutex
	Items []holiday.Holiday
}

func NewHolidays(items ...holiday.Holiday) *Holidays {
	return &Holidays{Items: items}
}

func (r *Holidays) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.Items {
		if sameDay(existing.Date, h.Date) {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
	}
	h.ID = NewID()
	r.Items = append(r.Items, h)
	return h, nil
}

func (r *Holidays) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, h := range r.Items {
		if h.ID == id {
			r.Items = append(r.Items[:i], r.Items[i+1:]...)
			return nil
		}
	}
	return holiday.ErrHolidayNotFound
}

func (r *Holidays) ListAll(ctx context.Context) ([]holiday.Holiday, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]holiday.Holiday(nil), r.Items...), nil
}

func (r *Holidays) ListByYear(ctx context.Context, year int) ([]holiday.Holiday, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []holiday.Holiday
	for _, h := range r.Items {
		if h.Date.Year() == year || h.RecurrenceRule != nil {
			out = append(out, h)
		}
	}
	return out, nil
}

// Offices is a fake officelocation.OfficeLocationRepository holding at most one office.
type Offices struct {
	mu     sync.Mutex
	Office *officelocation.OfficeLocation
}

func (r *Offices) GetActive(ctx context.Context) (officelocation.OfficeLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Office == nil || !r.Office.IsActive {
		return officelocation.OfficeLocation{}, officelocation.ErrOfficeLocationNotFound
	}
	return *r.Office, nil
}

func (r *Offices) Upsert(ctx context.Context, office officelocation.OfficeLocation) (officelocation.OfficeLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Office == nil {
		office.ID = NewID()
	} else {
		office.ID = r.Office.ID
	}
	r.Office = &office
	return office, nil
}

// Attendance is a fake attendance.AttendanceRepository.
type Attendance struct {
	mu    sync.Mutex
	Items map[string]attendance.Record
}

func NewAttendance(records ...attendance.Record) *Attendance {
	r := &Attendance{Items: map[string]attendance.Record{}}
	for _, rec := range records {
		if rec.ID == "" {
			rec.ID = NewID()
		}
		r.Items[rec.ID] = rec
	}
	return r
}

func (r *Attendance) sorted(keep func(attendance.Record) bool) []attendance.Record {
	var out []attendance.Record
	for _, rec := range r.Items {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if out[i].CheckIn == nil || out[j].CheckIn == nil {
			return out[i].CheckIn != nil
		}
		return out[i].CheckIn.Before(*out[j].CheckIn)
	})
	return out
}

func (r *Attendance) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.Items {
		if existing.EmployeeID == rec.EmployeeID && existing.ShiftID == rec.ShiftID && sameDay(existing.Date, rec.Date) {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
	}
	rec.ID = NewID()
	r.Items[rec.ID] = rec
	return rec, nil
}

func (r *Attendance) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.Items[id]
	if !ok {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	return rec, nil
}

func (r *Attendance) GetByEmployeeShiftDate(ctx context.Context, employeeID, shiftID string, date time.Time) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.Items {
		if rec.EmployeeID == employeeID && rec.ShiftID == shiftID && sameDay(rec.Date, date) {
			return rec, nil
		}
	}
	return attendance.Record{}, attendance.ErrAttendanceNotFound
}

func (r *Attendance) GetLatestOpen(ctx context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	open := r.sorted(func(rec attendance.Record) bool {
		return rec.EmployeeID == employeeID && sameDay(rec.Date, date) && rec.CheckIn != nil && rec.CheckOut == nil
	})
	if len(open) == 0 {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	return open[len(open)-1], nil
}

func (r *Attendance) ListByEmployeeDate(ctx context.Context, employeeID string, date time.Time) ([]attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(rec attendance.Record) bool {
		return rec.EmployeeID == employeeID && sameDay(rec.Date, date)
	}), nil
}

func (r *Attendance) ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lo, hi := from.Format("2006-01-02"), to.Format("2006-01-02")
	return r.sorted(func(rec attendance.Record) bool {
		d := rec.Date.Format("2006-01-02")
		return rec.EmployeeID == employeeID && d >= lo && d <= hi
	}), nil
}

func (r *Attendance) Update(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Items[rec.ID]; !ok {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	r.Items[rec.ID] = rec
	return rec, nil
}

func (r *Attendance) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.sorted(func(rec attendance.Record) bool {
		if filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID {
			return false
		}
		if filter.Status != nil && string(rec.Status) != *filter.Status {
			return false
		}
		return true
	})
	return out, int64(len(out)), nil
}

// LeaveTypes is a fake leave.LeaveTypeRepository.
type LeaveTypes struct {
	mu    sync.Mutex
	Items map[string]leave.LeaveType
}

func NewLeaveTypes(types ...leave.LeaveType) *LeaveTypes {
	r := &LeaveTypes{Items: map[string]leave.LeaveType{}}
	for _, lt := range types {
		r.Items[lt.ID] = lt
	}
	return r
}

func (r *LeaveTypes) Create(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.Items {
		if existing.Name == lt.Name {
			return leave.LeaveType{}, leave.ErrLeaveTypeNameExists
		}
	}
	lt.ID = NewID()
	r.Items[lt.ID] = lt
	return lt, nil
}

func (r *LeaveTypes) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lt, ok := r.Items[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (r *LeaveTypes) List(ctx context.Context) ([]leave.LeaveType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]leave.LeaveType, 0, len(r.Items))
	for _, lt := range r.Items {
		out = append(out, lt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *LeaveTypes) Update(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Items[lt.ID]; !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	r.Items[lt.ID] = lt
	return lt, nil
}

func (r *LeaveTypes) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Items[id]; !ok {
		return leave.ErrLeaveTypeNotFound
	}
	delete(r.Items, id)
	return nil
}

// LeaveRequests is a fake leave.LeaveRequestRepository.
type LeaveRequests struct {
	mu    sync.Mutex
	Items map[string]leave.LeaveRequest
}

func NewLeaveRequests(requests ...leave.LeaveRequest) *LeaveRequests {
	r := &LeaveRequests{Items: map[string]leave.LeaveRequest{}}
	for _, req := range requests {
		if req.ID == "" {
			req.ID = NewID()
		}
		r.Items[req.ID] = req
	}
	return r
}

func (r *LeaveRequests) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req.ID = NewID()
	r.Items[req.ID] = req
	return req, nil
}

func (r *LeaveRequests) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.Items[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return req, nil
}

func (r *LeaveRequests) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.LeaveRequest
	for _, req := range r.Items {
		if filter.EmployeeID != nil && req.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(req.Status) != *filter.Status {
			continue
		}
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FromDate.Before(out[j].FromDate) })
	return out, nil
}

func (r *LeaveRequests) Decide(ctx context.Context, id string, status leave.RequestStatus, approverID string, decisionAt time.Time, note *string) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.Items[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if !req.IsPending() {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}
	req.Status = status
	req.ApproverID = &approverID
	req.DecisionAt = &decisionAt
	req.Note = note
	r.Items[id] = req
	return req, nil
}

func (r *LeaveRequests) ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lo, hi := from.Format("2006-01-02"), to.Format("2006-01-02")
	var out []leave.LeaveRequest
	for _, req := range r.Items {
		if req.EmployeeID != employeeID || req.Status != leave.StatusApproved {
			continue
		}
		if req.FromDate.Format("2006-01-02") <= hi && req.ToDate.Format("2006-01-02") >= lo {
			out = append(out, req)
		}
	}
	return out, nil
}
