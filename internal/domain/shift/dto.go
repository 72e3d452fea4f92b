package shift

import (
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/timekeeping"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var defaultOtMultiplier = decimal.NewFromFloat(1.5)

type ShiftRequest struct {
	ID           string           `json:"-"`
	Name         string           `json:"name"`
	StartTime    string           `json:"start_time"`
	EndTime      string           `json:"end_time"`
	GraceMinutes int              `json:"grace_minutes"`
	OtMultiplier *decimal.Decimal `json:"ot_multiplier,omitempty"`
	IsOvernight  bool             `json:"is_overnight"`
	IsActive     *bool            `json:"is_active,omitempty"`
}

// Validate checks the fields and then the accounting rules they describe.
func (r *ShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if !validator.IsValidTimeOfDay(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}
	if !validator.IsValidTimeOfDay(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}
	if r.GraceMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_minutes",
			Message: "grace_minutes must be greater than or equal to 0",
		})
	}
	if r.OtMultiplier != nil && !r.OtMultiplier.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "ot_multiplier",
			Message: "ot_multiplier must be greater than 0",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	s := r.ToShift()
	if err := s.Config().Validate(); err != nil {
		return validator.ValidationErrors{{
			Field:   "end_time",
			Message: "end_time must be after start_time unless the shift is overnight",
		}}
	}

	return nil
}

// ToShift converts a validated request into an entity.
func (r *ShiftRequest) ToShift() Shift {
	start, _ := timekeeping.ParseTimeOfDay(r.StartTime)
	end, _ := timekeeping.ParseTimeOfDay(r.EndTime)

	s := Shift{
		ID:           r.ID,
		Name:         r.Name,
		StartTime:    start,
		EndTime:      end,
		GraceMinutes: r.GraceMinutes,
		OtMultiplier: defaultOtMultiplier,
		IsOvernight:  r.IsOvernight,
		IsActive:     true,
	}
	if r.OtMultiplier != nil {
		s.OtMultiplier = *r.OtMultiplier
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
	return s
}

type ShiftResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	StartTime    string          `json:"start_time"`
	EndTime      string          `json:"end_time"`
	GraceMinutes int             `json:"grace_minutes"`
	OtMultiplier decimal.Decimal `json:"ot_multiplier"`
	IsOvernight  bool            `json:"is_overnight"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

func NewShiftResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:           s.ID,
		Name:         s.Name,
		StartTime:    timekeeping.FormatTimeOfDay(s.StartTime),
		EndTime:      timekeeping.FormatTimeOfDay(s.EndTime),
		GraceMinutes: s.GraceMinutes,
		OtMultiplier: s.OtMultiplier,
		IsOvernight:  s.IsOvernight,
		IsActive:     s.IsActive,
		CreatedAt:    s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    s.UpdatedAt.Format(time.RFC3339),
	}
}
