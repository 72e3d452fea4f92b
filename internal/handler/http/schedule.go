package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/officelocation"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/shift"
	"github.com/cmlabs-hris/hris-timekeeping/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// ScheduleHandler serves the catalogs that shape an attendance day:
// shifts, holidays and the office location.
type ScheduleHandler interface {
	CreateShift(w http.ResponseWriter, r *http.Request)
	GetShift(w http.ResponseWriter, r *http.Request)
	ListShifts(w http.ResponseWriter, r *http.Request)
	UpdateShift(w http.ResponseWriter, r *http.Request)
	DeleteShift(w http.ResponseWriter, r *http.Request)

	ListHolidays(w http.ResponseWriter, r *http.Request)
	CreateHoliday(w http.ResponseWriter, r *http.Request)
	DeleteHoliday(w http.ResponseWriter, r *http.Request)

	GetOfficeLocation(w http.ResponseWriter, r *http.Request)
	UpsertOfficeLocation(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	shiftService   shift.ShiftService
	holidayService holiday.HolidayService
	officeService  officelocation.OfficeLocationService
}

func NewScheduleHandler(
	shiftService shift.ShiftService,
	holidayService holiday.HolidayService,
	officeService officelocation.OfficeLocationService,
) ScheduleHandler {
	return &scheduleHandlerImpl{
		shiftService:   shiftService,
		holidayService: holidayService,
		officeService:  officeService,
	}
}

func (h *scheduleHandlerImpl) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req shift.ShiftRequest
	if !decodeJSON(w, r, "CreateShift", &req) {
		return
	}

	result, err := h.shiftService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift created successfully", result)
}

func (h *scheduleHandlerImpl) GetShift(w http.ResponseWriter, r *http.Request) {
	result, err := h.shiftService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *scheduleHandlerImpl) ListShifts(w http.ResponseWriter, r *http.Request) {
	results, err := h.shiftService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *scheduleHandlerImpl) UpdateShift(w http.ResponseWriter, r *http.Request) {
	var req shift.ShiftRequest
	if !decodeJSON(w, r, "UpdateShift", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.shiftService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift updated successfully", result)
}

func (h *scheduleHandlerImpl) DeleteShift(w http.ResponseWriter, r *http.Request) {
	if err := h.shiftService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift deleted successfully", nil)
}

// ListHolidays answers every holiday, or those falling in ?year= plus the recurring ones.
func (h *scheduleHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	results, err := h.holidayService.List(r.Context(), queryInt(r, "year", 0))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *scheduleHandlerImpl) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req holiday.CreateHolidayRequest
	if !decodeJSON(w, r, "CreateHoliday", &req) {
		return
	}

	result, err := h.holidayService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created successfully", result)
}

func (h *scheduleHandlerImpl) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	if err := h.holidayService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday deleted successfully", nil)
}

func (h *scheduleHandlerImpl) GetOfficeLocation(w http.ResponseWriter, r *http.Request) {
	result, err := h.officeService.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *scheduleHandlerImpl) UpsertOfficeLocation(w http.ResponseWriter, r *http.Request) {
	var req officelocation.UpsertOfficeLocationRequest
	if !decodeJSON(w, r, "UpsertOfficeLocation", &req) {
		return
	}

	result, err := h.officeService.Upsert(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Office location saved successfully", result)
}
