package response

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/auth"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/leave"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/master/department"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/master/position"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/officelocation"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/report"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/shift"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/user"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/facematch"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/geo"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/payslip"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/timekeeping"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-timekeeping/internal/service/file"
)

var notFound = []error{
	user.ErrUserNotFound,
	employee.ErrEmployeeNotFound,
	department.ErrDepartmentNotFound,
	position.ErrPositionNotFound,
	shift.ErrShiftNotFound,
	shift.ErrNoActiveShift,
	holiday.ErrHolidayNotFound,
	leave.ErrLeaveTypeNotFound,
	leave.ErrLeaveRequestNotFound,
	officelocation.ErrOfficeLocationNotFound,
	attendance.ErrAttendanceNotFound,
	auth.ErrOTPNotFound,
}

var conflicts = []error{
	auth.ErrEmailAlreadyExists,
	user.ErrUserEmailExists,
	employee.ErrEmployeeCodeExists,
	employee.ErrEmailExists,
	employee.ErrUserAlreadyLinked,
	department.ErrDepartmentNameExists,
	department.ErrDepartmentInUse,
	position.ErrPositionNameExists,
	position.ErrPositionInUse,
	shift.ErrShiftNameExists,
	shift.ErrShiftInUse,
	holiday.ErrHolidayExists,
	leave.ErrLeaveTypeNameExists,
	leave.ErrLeaveTypeInUse,
	leave.ErrLeaveRequestAlreadyProcessed,
	attendance.ErrAlreadyCheckedIn,
	attendance.ErrAlreadyCheckedOut,
}

var badRequests = []error{
	attendance.ErrNotCheckedIn,
	attendance.ErrLocationRequired,
	employee.ErrFaceEmbeddingMissing,
	employee.ErrInvalidReference,
	leave.ErrLeaveTypeInactive,
	leave.ErrNoWorkingDays,
	auth.ErrOTPExpired,
	auth.ErrOTPInvalid,
	auth.ErrOTPTooManyAttempts,
	file.ErrUnsupportedFileType,
	file.ErrInvalidImage,
	file.ErrFileTooLarge,
	geo.ErrInvalidConfig,
	facematch.ErrInvalidConfig,
	timekeeping.ErrInvalidConfig,
	payslip.ErrInvalidConfig,
}

var forbidden = []error{
	user.ErrAdminAccessRequired,
	user.ErrManagerAccessRequired,
	employee.ErrUnauthorized,
	report.ErrTimesheetForbidden,
}

func matches(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var faceErr *attendance.FaceMismatchError
	if errors.As(err, &faceErr) {
		details := map[string]string{"threshold": fmt.Sprintf("%.2f", faceErr.Threshold)}
		if faceErr.Similarity != nil {
			details["similarity"] = fmt.Sprintf("%.4f", *faceErr.Similarity)
		}
		BadRequest(w, attendance.ErrFaceMismatch.Error(), details)
		return
	}

	var fenceErr *attendance.GeofenceError
	if errors.As(err, &fenceErr) {
		BadRequest(w, attendance.ErrOutsideGeofence.Error(), map[string]string{
			"distance_meters": fmt.Sprintf("%.0f", fenceErr.DistanceMeters),
			"radius_meters":   fmt.Sprintf("%d", fenceErr.RadiusMeters),
		})
		return
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrRefreshTokenRevoked),
		errors.Is(err, jwt.ErrMissingIdentity):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrOTPResendTooSoon):
		TooManyRequests(w, err.Error())
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		Unprocessable(w, err.Error())
	case matches(err, forbidden):
		Forbidden(w, err.Error())
	case matches(err, notFound):
		NotFound(w, err.Error())
	case matches(err, conflicts):
		Conflict(w, err.Error())
	case matches(err, badRequests):
		BadRequest(w, err.Error(), nil)
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
