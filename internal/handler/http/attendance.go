package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-timekeeping/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	FaceCheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	ListAttendance(w http.ResponseWriter, r *http.Request)
	ApproveAttendance(w http.ResponseWriter, r *http.Request)
	RejectAttendance(w http.ResponseWriter, r *http.Request)
	FixAttendance(w http.ResponseWriter, r *http.Request)

	FaceToday(w http.ResponseWriter, r *http.Request)
	FaceAttendanceCheckIn(w http.ResponseWriter, r *http.Request)
	FaceAttendanceCheckOut(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler. The body is optional.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if !decodeOptionalJSON(w, r, "CheckIn", &req) {
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check in successful", result)
}

// FaceCheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) FaceCheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.FaceCheckInRequest
	if !decodeJSON(w, r, "FaceCheckIn", &req) {
		return
	}

	result, err := h.attendanceService.FaceCheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check in successful", result)
}

// CheckOut implements AttendanceHandler. The body is optional.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest
	if !decodeOptionalJSON(w, r, "CheckOut", &req) {
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check out successful", result)
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.Today(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListAttendance(w http.ResponseWriter, r *http.Request) {
	filter := attendance.AttendanceFilter{
		EmployeeID: queryString(r, "employee_id"),
		From:       queryString(r, "from"),
		To:         queryString(r, "to"),
		Status:     queryString(r, "status"),
		Page:       queryInt(r, "page", 1),
		Limit:      queryInt(r, "limit", 20),
		SortOrder:  r.URL.Query().Get("sort_order"),
	}

	result, err := h.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Attendances, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// ApproveAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) ApproveAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendance.ApproveAttendanceRequest
	if !decodeOptionalJSON(w, r, "ApproveAttendance", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.attendanceService.ApproveAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance approved", result)
}

// RejectAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) RejectAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendance.RejectAttendanceRequest
	if !decodeOptionalJSON(w, r, "RejectAttendance", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.attendanceService.RejectAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance rejected", result)
}

// FixAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) FixAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendance.FixAttendanceRequest
	if !decodeJSON(w, r, "FixAttendance", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.attendanceService.FixAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance fixed", result)
}

// FaceToday implements AttendanceHandler.
func (h *attendanceHandlerImpl) FaceToday(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.FaceToday(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// FaceAttendanceCheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) FaceAttendanceCheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.FaceAttendanceRequest
	if !decodeJSON(w, r, "FaceAttendanceCheckIn", &req) {
		return
	}

	result, err := h.attendanceService.FaceAttendanceCheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Face check in successful", result)
}

// FaceAttendanceCheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) FaceAttendanceCheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.FaceAttendanceRequest
	if !decodeJSON(w, r, "FaceAttendanceCheckOut", &req) {
		return
	}

	result, err := h.attendanceService.FaceAttendanceCheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Face check out successful", result)
}
