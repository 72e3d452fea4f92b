package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timekeeping/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-timekeeping/internal/service/file"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	GetMe(w http.ResponseWriter, r *http.Request)
	UpdateMe(w http.ResponseWriter, r *http.Request)
	UploadMyFace(w http.ResponseWriter, r *http.Request)
	SetMyFaceEmbedding(w http.ResponseWriter, r *http.Request)

	ListEmployees(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	UpdateEmployee(w http.ResponseWriter, r *http.Request)
	DeleteEmployee(w http.ResponseWriter, r *http.Request)
	GetPayrollSettings(w http.ResponseWriter, r *http.Request)
	UpdatePayrollSettings(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

// GetMe implements EmployeeHandler.
func (h *employeeHandlerImpl) GetMe(w http.ResponseWriter, r *http.Request) {
	me, err := h.employeeService.GetMe(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, me)
}

// UpdateMe implements EmployeeHandler.
func (h *employeeHandlerImpl) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateProfileRequest
	if !decodeJSON(w, r, "UpdateMe", &req) {
		return
	}

	me, err := h.employeeService.UpdateMe(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Profile updated successfully", me)
}

// UploadMyFace implements EmployeeHandler. Expects a multipart "photo" field.
func (h *employeeHandlerImpl) UploadMyFace(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, file.MaxFaceProfileSize+(1<<20))
	if err := r.ParseMultipartForm(file.MaxFaceProfileSize); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	photo, header, err := r.FormFile("photo")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Face photo is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer photo.Close()

	me, err := h.employeeService.UploadMyFace(r.Context(), photo, header.Filename)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Face photo uploaded successfully", me)
}

// SetMyFaceEmbedding implements EmployeeHandler.
func (h *employeeHandlerImpl) SetMyFaceEmbedding(w http.ResponseWriter, r *http.Request) {
	var req employee.FaceEmbeddingRequest
	if !decodeJSON(w, r, "SetMyFaceEmbedding", &req) {
		return
	}

	me, err := h.employeeService.SetMyFaceEmbedding(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Face embedding enrolled successfully", me)
}

// ListEmployees implements EmployeeHandler.
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	filter := employee.EmployeeFilter{
		Query:        queryString(r, "q"),
		DepartmentID: queryString(r, "department_id"),
		Page:         queryInt(r, "page", 1),
		Limit:        queryInt(r, "limit", 20),
	}

	result, err := h.employeeService.ListEmployees(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Employees, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// GetEmployee implements EmployeeHandler.
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.employeeService.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, emp)
}

// CreateEmployee implements EmployeeHandler.
func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if !decodeJSON(w, r, "CreateEmployee", &req) {
		return
	}

	emp, err := h.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Employee created", "employee_id", emp.ID)
	response.Created(w, "Employee created successfully", emp)
}

// UpdateEmployee implements EmployeeHandler.
func (h *employeeHandlerImpl) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest
	if !decodeJSON(w, r, "UpdateEmployee", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	emp, err := h.employeeService.UpdateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee updated successfully", emp)
}

// DeleteEmployee implements EmployeeHandler.
func (h *employeeHandlerImpl) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeService.DeleteEmployee(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// GetPayrollSettings implements EmployeeHandler.
func (h *employeeHandlerImpl) GetPayrollSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.employeeService.GetPayrollSettings(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, settings)
}

// UpdatePayrollSettings implements EmployeeHandler.
func (h *employeeHandlerImpl) UpdatePayrollSettings(w http.ResponseWriter, r *http.Request) {
	var req employee.PayrollSettingsRequest
	if !decodeJSON(w, r, "UpdatePayrollSettings", &req) {
		return
	}
	req.EmployeeID = chi.URLParam(r, "id")

	settings, err := h.employeeService.UpdatePayrollSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll settings updated successfully", settings)
}
