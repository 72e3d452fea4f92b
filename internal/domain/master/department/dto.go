package department

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/validator"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 500
)

type CreateDepartmentRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	// IsActive defaults to true.
	IsActive *bool `json:"is_active,omitempty"`
}

func (r *CreateDepartmentRequest) Validate() error {
	return validateFields(nil, r.Name, r.Description)
}

// ToEntity returns the trimmed department to insert.
func (r *CreateDepartmentRequest) ToEntity() Department {
	d := Department{
		Name:        strings.TrimSpace(r.Name),
		Description: trimOptional(r.Description),
		IsActive:    true,
	}
	if r.IsActive != nil {
		d.IsActive = *r.IsActive
	}
	return d
}

// UpdateDepartmentRequest replaces name and description. A nil IsActive keeps the current flag.
type UpdateDepartmentRequest struct {
	ID          string  `json:"-"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r *UpdateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id must be a valid UUID"})
	}
	return validateFields(errs, r.Name, r.Description)
}

// Apply merges the request into the stored department.
func (r *UpdateDepartmentRequest) Apply(d Department) Department {
	d.Name = strings.TrimSpace(r.Name)
	d.Description = trimOptional(r.Description)
	if r.IsActive != nil {
		d.IsActive = *r.IsActive
	}
	return d
}

type DepartmentFilter struct {
	// Query matches a case-insensitive substring of the name.
	Query      *string
	ActiveOnly bool
}

type DepartmentResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func NewDepartmentResponse(d Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   d.UpdatedAt.Format(time.RFC3339),
	}
}

func validateFields(errs validator.ValidationErrors, name string, description *string) error {
	switch {
	case validator.IsEmpty(name):
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	case len(strings.TrimSpace(name)) > maxNameLength:
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 100 characters"})
	}
	if description != nil && len(strings.TrimSpace(*description)) > maxDescriptionLength {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "description must not exceed 500 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
