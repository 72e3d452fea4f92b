package position

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/validator"
)

type CreatePositionRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r *CreatePositionRequest) Validate() error {
	if errs := validatePosition(r.Name, r.Description); len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEntity returns the trimmed position to insert. New positions are active unless stated otherwise.
func (r *CreatePositionRequest) ToEntity() Position {
	p := Position{Name: strings.TrimSpace(r.Name), Description: normalizeDescription(r.Description), IsActive: true}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	return p
}

type UpdatePositionRequest struct {
	ID          string  `json:"-"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r *UpdatePositionRequest) Validate() error {
	errs := validatePosition(r.Name, r.Description)
	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id must be a valid UUID"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply overwrites name and description on current; is_active changes only when sent.
func (r *UpdatePositionRequest) Apply(current Position) Position {
	current.Name = strings.TrimSpace(r.Name)
	current.Description = normalizeDescription(r.Description)
	if r.IsActive != nil {
		current.IsActive = *r.IsActive
	}
	return current
}

type PositionFilter struct {
	Query      *string
	ActiveOnly bool
}

type PositionResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func NewPositionResponse(p Position) PositionResponse {
	return PositionResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}

func validatePosition(name string, description *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	name = strings.TrimSpace(name)
	if name == "" {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	} else if len(name) > 100 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 100 characters"})
	}

	if description != nil && len(*description) > 500 {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "description must not exceed 500 characters"})
	}
	return errs
}

func normalizeDescription(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
