package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/auth"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/leave"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/user"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var env Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHandleError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", validator.ValidationErrors{{Field: "month", Message: "bad"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"wrapped credentials", fmt.Errorf("login: %w", auth.ErrInvalidCredentials), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"otp resend", auth.ErrOTPResendTooSoon, http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"manager only", user.ErrManagerAccessRequired, http.StatusForbidden, "FORBIDDEN"},
		{"not found", fmt.Errorf("get: %w", leave.ErrLeaveRequestNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"duplicate check-in", attendance.ErrAlreadyCheckedIn, http.StatusConflict, "CONFLICT"},
		{"checkout before checkin", attendance.ErrCheckOutBeforeCheckIn, http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY"},
		{"missing coordinates", attendance.ErrLocationRequired, http.StatusBadRequest, "BAD_REQUEST"},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			env := decode(t, rec)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestHandleError_UnknownErrorHidesMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.New("pq: password authentication failed"))

	assert.NotContains(t, rec.Body.String(), "password authentication")
}

func TestHandleError_FaceMismatchWithoutSimilarity(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, fmt.Errorf("face check-in: %w", &attendance.FaceMismatchError{Threshold: 0.75}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, map[string]string{"threshold": "0.75"}, env.Error.Details)
}

func TestSuccessWithMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessWithMeta(rec, []string{"a"}, &Meta{Page: 1, Limit: 20, TotalItems: 1, TotalPages: 1})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	env := decode(t, rec)
	assert.True(t, env.Success)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(1), env.Meta.TotalItems)
}

func TestFile(t *testing.T) {
	rec := httptest.NewRecorder()
	File(rec, "application/pdf", "payslip EMP-1 2025-02.pdf", []byte("%PDF"))

	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="payslip EMP-1 2025-02.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "4", rec.Header().Get("Content-Length"))
	assert.Equal(t, "%PDF", rec.Body.String())
}
