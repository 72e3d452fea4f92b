package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/master"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/master/department"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/master/position"
	"github.com/cmlabs-hris/hris-timekeeping/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type MasterHandler interface {
	CreateDepartment(w http.ResponseWriter, r *http.Request)
	GetDepartment(w http.ResponseWriter, r *http.Request)
	ListDepartments(w http.ResponseWriter, r *http.Request)
	UpdateDepartment(w http.ResponseWriter, r *http.Request)
	DeleteDepartment(w http.ResponseWriter, r *http.Request)

	CreatePosition(w http.ResponseWriter, r *http.Request)
	GetPosition(w http.ResponseWriter, r *http.Request)
	ListPositions(w http.ResponseWriter, r *http.Request)
	UpdatePosition(w http.ResponseWriter, r *http.Request)
	DeletePosition(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &masterHandlerImpl{masterService: masterService}
}

// catalogQuery reads the ?q= and ?active=true filters shared by both catalogs.
func catalogQuery(r *http.Request) (*string, bool) {
	return queryString(r, "q"), r.URL.Query().Get("active") == "true"
}

func respond[T any](w http.ResponseWriter, result T, err error, write func(http.ResponseWriter, T)) {
	if err != nil {
		response.HandleError(w, err)
		return
	}
	write(w, result)
}

func created[T any](message string) func(http.ResponseWriter, T) {
	return func(w http.ResponseWriter, v T) { response.Created(w, message, v) }
}

func updated[T any](message string) func(http.ResponseWriter, T) {
	return func(w http.ResponseWriter, v T) { response.SuccessWithMessage(w, message, v) }
}

func ok[T any](w http.ResponseWriter, v T) { response.Success(w, v) }

func (h *masterHandlerImpl) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req department.CreateDepartmentRequest
	if !decodeJSON(w, r, "CreateDepartment", &req) {
		return
	}
	result, err := h.masterService.CreateDepartment(r.Context(), req)
	respond(w, result, err, created[department.DepartmentResponse]("Department created successfully"))
}

func (h *masterHandlerImpl) GetDepartment(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.GetDepartment(r.Context(), chi.URLParam(r, "id"))
	respond(w, result, err, ok[department.DepartmentResponse])
}

func (h *masterHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	q, activeOnly := catalogQuery(r)
	results, err := h.masterService.ListDepartments(r.Context(), department.DepartmentFilter{Query: q, ActiveOnly: activeOnly})
	respond(w, results, err, ok[[]department.DepartmentResponse])
}

func (h *masterHandlerImpl) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	var req department.UpdateDepartmentRequest
	if !decodeJSON(w, r, "UpdateDepartment", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.masterService.UpdateDepartment(r.Context(), req)
	respond(w, result, err, updated[department.DepartmentResponse]("Department updated successfully"))
}

func (h *masterHandlerImpl) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteDepartment(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Department deleted successfully", nil)
}

func (h *masterHandlerImpl) CreatePosition(w http.ResponseWriter, r *http.Request) {
	var req position.CreatePositionRequest
	if !decodeJSON(w, r, "CreatePosition", &req) {
		return
	}
	result, err := h.masterService.CreatePosition(r.Context(), req)
	respond(w, result, err, created[position.PositionResponse]("Position created successfully"))
}

func (h *masterHandlerImpl) GetPosition(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.GetPosition(r.Context(), chi.URLParam(r, "id"))
	respond(w, result, err, ok[position.PositionResponse])
}

func (h *masterHandlerImpl) ListPositions(w http.ResponseWriter, r *http.Request) {
	q, activeOnly := catalogQuery(r)
	results, err := h.masterService.ListPositions(r.Context(), position.PositionFilter{Query: q, ActiveOnly: activeOnly})
	respond(w, results, err, ok[[]position.PositionResponse])
}

func (h *masterHandlerImpl) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	var req position.UpdatePositionRequest
	if !decodeJSON(w, r, "UpdatePosition", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.masterService.UpdatePosition(r.Context(), req)
	respond(w, result, err, updated[position.PositionResponse]("Position updated successfully"))
}

func (h *masterHandlerImpl) DeletePosition(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeletePosition(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Position deleted successfully", nil)
}
