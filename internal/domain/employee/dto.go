package employee

import (
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EmployeeResponse struct {
	ID               string  `json:"id"`
	UserID           *string `json:"user_id,omitempty"`
	EmployeeCode     string  `json:"employee_code"`
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	PhoneNumber      *string `json:"phone_number,omitempty"`
	DepartmentID     *string `json:"department_id,omitempty"`
	DepartmentName   *string `json:"department_name,omitempty"`
	PositionID       *string `json:"position_id,omitempty"`
	PositionName     *string `json:"position_name,omitempty"`
	FaceProfileURL   *string `json:"face_profile_url,omitempty"`
	HasFaceEmbedding bool    `json:"has_face_embedding"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

// NewEmployeeResponse builds the API view. faceURL maps a storage key to a public URL.
func NewEmployeeResponse(e Employee, faceURL func(string) string) EmployeeResponse {
	resp := EmployeeResponse{
		ID:               e.ID,
		UserID:           e.UserID,
		EmployeeCode:     e.EmployeeCode,
		FullName:         e.FullName,
		Email:            e.Email,
		PhoneNumber:      e.PhoneNumber,
		DepartmentID:     e.DepartmentID,
		DepartmentName:   e.DepartmentName,
		PositionID:       e.PositionID,
		PositionName:     e.PositionName,
		HasFaceEmbedding: e.HasFaceEmbedding(),
		CreatedAt:        e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        e.UpdatedAt.Format(time.RFC3339),
	}
	if e.FaceProfileKey != nil && faceURL != nil {
		url := faceURL(*e.FaceProfileKey)
		resp.FaceProfileURL = &url
	}
	return resp
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Employees  []EmployeeResponse `json:"employees"`
}

type EmployeeFilter struct {
	Query        *string
	DepartmentID *string
	Page         int
	Limit        int
}

func (f *EmployeeFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

type CreateEmployeeRequest struct {
	UserID       *string `json:"user_id,omitempty"`
	EmployeeCode string  `json:"employee_code"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	PositionID   *string `json:"position_id,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	} else if len(r.EmployeeCode) > 50 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code must not exceed 50 characters",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	errs = validateOptionalRefs(errs, r.UserID, r.PhoneNumber, r.DepartmentID, r.PositionID)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID           string  `json:"-"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	FullName     *string `json:"full_name,omitempty"`
	Email        *string `json:"email,omitempty"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	PositionID   *string `json:"position_id,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}
	if r.EmployeeCode != nil && validator.IsEmpty(*r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code must not be empty",
		})
	}
	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not be empty",
		})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	errs = validateOptionalRefs(errs, nil, r.PhoneNumber, r.DepartmentID, r.PositionID)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateProfileRequest is what an employee may change about themselves.
type UpdateProfileRequest struct {
	FullName    string  `json:"full_name"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}
	errs = validateOptionalRefs(errs, nil, r.PhoneNumber, nil, nil)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type FaceEmbeddingRequest struct {
	Embedding []float64 `json:"embedding"`
}

func (r *FaceEmbeddingRequest) Validate() error {
	if len(r.Embedding) == 0 {
		return validator.ValidationErrors{{
			Field:   "embedding",
			Message: "embedding must be a non-empty array of numbers",
		}}
	}
	return nil
}

type PayrollSettingsRequest struct {
	EmployeeID string           `json:"-"`
	BaseSalary *decimal.Decimal `json:"base_salary,omitempty"`
	Allowance  *decimal.Decimal `json:"allowance,omitempty"`
}

func (r *PayrollSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must be greater than or equal to 0",
		})
	}
	if r.Allowance != nil && r.Allowance.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "allowance",
			Message: "allowance must be greater than or equal to 0",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollSettingsResponse struct {
	EmployeeID string           `json:"employee_id"`
	FullName   string           `json:"full_name"`
	BaseSalary *decimal.Decimal `json:"base_salary"`
	Allowance  *decimal.Decimal `json:"allowance"`
}

func validateOptionalRefs(errs validator.ValidationErrors, userID, phone, departmentID, positionID *string) validator.ValidationErrors {
	if userID != nil && !validator.IsValidUUID(*userID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id must be a valid UUID",
		})
	}
	if phone != nil && *phone != "" && !validator.IsValidPhoneNumber(*phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone_number",
			Message: "phone_number must be 8-15 digits with an optional leading +",
		})
	}
	if departmentID != nil && !validator.IsValidUUID(*departmentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "department_id",
			Message: "department_id must be a valid UUID",
		})
	}
	if positionID != nil && !validator.IsValidUUID(*positionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "position_id",
			Message: "position_id must be a valid UUID",
		})
	}
	return errs
}
