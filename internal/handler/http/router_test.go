package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/auth"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/leave"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/master"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/officelocation"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/report"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/shift"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/user"
	"github.com/cmlabs-hris/hris-timekeeping/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestAccessExp  = "1h"
	handlerTestRefreshExp = "24h"
	handlerTestSecret     = "test-secret-key-for-jwt"
)

// Stub services embed their interface so only the methods a test needs are
// implemented; anything else panics and surfaces as a 500 via Recoverer.

type stubAuthService struct {
	auth.AuthService
	login   func(req auth.LoginRequest) (auth.TokenResponse, error)
	refresh func(token string) (auth.TokenResponse, error)
	logout  func(token string) error
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest, _ auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	return s.login(req)
}

func (s *stubAuthService) RefreshToken(ctx context.Context, token string, _ auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	return s.refresh(token)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logout(token)
}

type stubUserService struct{ user.UserService }
type stubEmployeeService struct{ employee.EmployeeService }
type stubMasterService struct{ master.MasterService }
type stubShiftService struct{ shift.ShiftService }
type stubHolidayService struct{ holiday.HolidayService }
type stubOfficeService struct{ officelocation.OfficeLocationService }
type stubReportService struct{ report.ReportService }

type stubLeaveService struct {
	leave.LeaveService
	reject func(req leave.DecideLeaveRequestRequest) (leave.LeaveRequestResponse, error)
}

func (s *stubLeaveService) RejectLeaveRequest(ctx context.Context, req leave.DecideLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	return s.reject(req)
}

type stubAttendanceService struct {
	attendance.AttendanceService
	checkIn     func(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error)
	faceCheckIn func(req attendance.FaceCheckInRequest) (attendance.AttendanceResponse, error)
	list        func(filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error)
}

func (s *stubAttendanceService) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	return s.checkIn(ctx, req)
}

func (s *stubAttendanceService) FaceCheckIn(ctx context.Context, req attendance.FaceCheckInRequest) (attendance.AttendanceResponse, error) {
	return s.faceCheckIn(req)
}

func (s *stubAttendanceService) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return s.list(filter)
}

type stubPayrollService struct {
	payroll.PayrollService
	calc func(req payroll.CalcRequest) (payroll.PayslipResponse, error)
	my   func(req payroll.PayslipRequest) (payroll.PayslipResponse, error)
}

func (s *stubPayrollService) Calc(ctx context.Context, req payroll.CalcRequest) (payroll.PayslipResponse, error) {
	return s.calc(req)
}

func (s *stubPayrollService) MyPayslip(ctx context.Context, req payroll.PayslipRequest) (payroll.PayslipResponse, error) {
	return s.my(req)
}

func (s *stubPayrollService) WritePayslipPDF(w io.Writer, p payroll.PayslipResponse) error {
	_, err := w.Write([]byte("%PDF-1.3 " + p.EmployeeCode))
	return err
}

type routerFixture struct {
	router     *chi.Mux
	jwtService jwt.Service
	auth       *stubAuthService
	leave      *stubLeaveService
	attendance *stubAttendanceService
	payroll    *stubPayrollService
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	f := &routerFixture{
		jwtService: jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp, handlerTestRefreshExp),
		auth:       &stubAuthService{},
		leave:      &stubLeaveService{},
		attendance: &stubAttendanceService{},
		payroll:    &stubPayrollService{},
	}
	f.router = NewRouter(RouterOptions{AllowedOrigins: []string{"http://localhost:3000"}}, f.jwtService, Handlers{
		Auth:       NewAuthHandler(f.jwtService, f.auth),
		User:       NewUserHandler(&stubUserService{}),
		Employee:   NewEmployeeHandler(&stubEmployeeService{}),
		Master:     NewMasterHandler(&stubMasterService{}),
		Schedule:   NewScheduleHandler(&stubShiftService{}, &stubHolidayService{}, &stubOfficeService{}),
		Leave:      NewLeaveHandler(f.leave),
		Attendance: NewAttendanceHandler(f.attendance),
		Report:     NewReportHandler(&stubReportService{}),
		Payroll:    NewPayrollHandler(f.payroll),
	})
	return f
}

func (f *routerFixture) token(t *testing.T, role user.Role) string {
	t.Helper()
	employeeID := "0192f1a0-7c1e-7a3b-9d4e-5f6a7b8c9d0e"
	token, _, err := f.jwtService.GenerateAccessToken("0192f1a0-7c1e-7a3b-9d4e-000000000001", "maya@example.com", &employeeID, role)
	require.NoError(t, err)
	return token
}

func (f *routerFixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var env response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestRouter_RejectsMissingToken(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/attendance/today", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RejectsRefreshTokenAsAccessToken(t *testing.T) {
	f := newRouterFixture(t)
	refresh, _, err := f.jwtService.GenerateRefreshToken("0192f1a0-7c1e-7a3b-9d4e-000000000001")
	require.NoError(t, err)

	rec := f.do(t, http.MethodGet, "/api/v1/attendance/today", refresh, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ManagerRoutesForbidStaff(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/attendance", f.token(t, user.RoleStaff), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/admin/users", f.token(t, user.RoleManager), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_ManagerListsAttendanceWithMeta(t *testing.T) {
	f := newRouterFixture(t)
	f.attendance.list = func(filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
		require.NotNil(t, filter.From)
		assert.Equal(t, "2025-03-01", *filter.From)
		assert.Equal(t, 2, filter.Page)
		return attendance.ListAttendanceResponse{
			TotalCount:  41,
			Page:        2,
			Limit:       20,
			TotalPages:  3,
			Attendances: []attendance.AttendanceResponse{{ID: "a1"}},
		}, nil
	}

	rec := f.do(t, http.MethodGet, "/api/v1/attendance?from=2025-03-01&page=2", f.token(t, user.RoleManager), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(41), env.Meta.TotalItems)
	assert.Equal(t, 3, env.Meta.TotalPages)
}

func TestAuthHandler_LoginSetsRefreshCookie(t *testing.T) {
	f := newRouterFixture(t)
	f.auth.login = func(req auth.LoginRequest) (auth.TokenResponse, error) {
		assert.Equal(t, "maya@example.com", req.Email)
		return auth.TokenResponse{AccessToken: "access", RefreshToken: "refresh", RefreshTokenExpiresIn: 1893456000}, nil
	}

	rec := f.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "maya@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "refresh_token", cookies[0].Name)
	assert.Equal(t, "refresh", cookies[0].Value)
	assert.NotContains(t, rec.Body.String(), `"refresh"`)
}

func TestAuthHandler_LoginValidation(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAuthHandler_RefreshWithoutTokenIsUnauthorized(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_RefreshPrefersCookie(t *testing.T) {
	f := newRouterFixture(t)
	f.auth.refresh = func(token string) (auth.TokenResponse, error) {
		assert.Equal(t, "from-cookie", token)
		return auth.TokenResponse{AccessToken: "a", RefreshToken: "b"}, nil
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewBufferString(`{"refresh_token":"from-body"}`))
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "from-cookie"})
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAuthHandler_LogoutClearsCookie(t *testing.T) {
	f := newRouterFixture(t)
	var revoked string
	f.auth.logout = func(token string) error {
		revoked = token
		return nil
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "old"})
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "old", revoked)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestAttendanceHandler_CheckInAcceptsEmptyBody(t *testing.T) {
	f := newRouterFixture(t)
	f.attendance.checkIn = func(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
		assert.Nil(t, req.ShiftID)
		identity, err := jwt.IdentityFromContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, user.RoleStaff, identity.Role)
		return attendance.AttendanceResponse{ID: "rec-1", Status: string(attendance.StatusPending)}, nil
	}

	rec := f.do(t, http.MethodPost, "/api/v1/attendance/check-in", f.token(t, user.RoleStaff), nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAttendanceHandler_DuplicateCheckInConflicts(t *testing.T) {
	f := newRouterFixture(t)
	f.attendance.checkIn = func(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	rec := f.do(t, http.MethodPost, "/api/v1/attendance/check-in", f.token(t, user.RoleStaff), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAttendanceHandler_GeofenceRejectionCarriesDistance(t *testing.T) {
	f := newRouterFixture(t)
	f.attendance.faceCheckIn = func(req attendance.FaceCheckInRequest) (attendance.AttendanceResponse, error) {
		return attendance.AttendanceResponse{}, &attendance.GeofenceError{DistanceMeters: 812.4, RadiusMeters: 100}
	}

	rec := f.do(t, http.MethodPost, "/api/v1/attendance/check-in/face", f.token(t, user.RoleStaff), map[string]interface{}{
		"embedding": []float64{0.1, 0.2},
		"latitude":  -6.2,
		"longitude": 106.8,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "812", env.Error.Details["distance_meters"])
	assert.Equal(t, "100", env.Error.Details["radius_meters"])
}

func TestAttendanceHandler_FaceMismatchCarriesSimilarity(t *testing.T) {
	f := newRouterFixture(t)
	sim := 0.42
	f.attendance.faceCheckIn = func(req attendance.FaceCheckInRequest) (attendance.AttendanceResponse, error) {
		return attendance.AttendanceResponse{}, &attendance.FaceMismatchError{Similarity: &sim, Threshold: 0.6}
	}

	rec := f.do(t, http.MethodPost, "/api/v1/attendance/check-in/face", f.token(t, user.RoleStaff), map[string]interface{}{
		"embedding": []float64{0.1, 0.2},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "0.4200", env.Error.Details["similarity"])
	assert.Equal(t, "0.60", env.Error.Details["threshold"])
}

func TestAttendanceHandler_MalformedBody(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/check-in", bytes.NewBufferString("{"))
	req.Header.Set("Authorization", "Bearer "+f.token(t, user.RoleStaff))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeaveHandler_RejectUsesPathID(t *testing.T) {
	f := newRouterFixture(t)
	f.leave.reject = func(req leave.DecideLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
		assert.Equal(t, "0192f1a0-7c1e-7a3b-9d4e-5f6a7b8c9d01", req.ID)
		require.NotNil(t, req.Note)
		assert.Equal(t, "busy week", *req.Note)
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	rec := f.do(t, http.MethodPost, "/api/v1/leaves/0192f1a0-7c1e-7a3b-9d4e-5f6a7b8c9d01/reject",
		f.token(t, user.RoleManager), map[string]string{"note": "busy week"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPayrollHandler_CalcRejectsNonNumericRate(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/payroll/calc?employee_id=x&base_rate=abc", f.token(t, user.RoleManager), nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Contains(t, env.Error.Details, "base_rate")
}

func TestPayrollHandler_CalcParsesDecimals(t *testing.T) {
	f := newRouterFixture(t)
	f.payroll.calc = func(req payroll.CalcRequest) (payroll.PayslipResponse, error) {
		assert.Equal(t, "50000", req.BaseRate.String())
		require.NotNil(t, req.OtRate)
		assert.Equal(t, "1.5", req.OtRate.String())
		return payroll.PayslipResponse{BaseSalary: "8800000.00"}, nil
	}

	rec := f.do(t, http.MethodGet, "/api/v1/payroll/calc?employee_id=e&base_rate=50000&ot_rate=1.5", f.token(t, user.RoleManager), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPayrollHandler_ExportMyPayslipIsPDF(t *testing.T) {
	f := newRouterFixture(t)
	f.payroll.my = func(req payroll.PayslipRequest) (payroll.PayslipResponse, error) {
		require.NotNil(t, req.Month)
		return payroll.PayslipResponse{EmployeeCode: "EMP-7", Month: *req.Month}, nil
	}

	rec := f.do(t, http.MethodGet, "/api/v1/payroll/my/export?month=2025-02", f.token(t, user.RoleStaff), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "payslip-EMP-7-2025-02.pdf")
	assert.Contains(t, rec.Body.String(), "%PDF")
}
