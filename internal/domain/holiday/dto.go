package holiday

import (
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Date           string  `json:"date"`
	Name           string  `json:"name"`
	RecurrenceRule *string `json:"recurrence_rule,omitempty"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 150 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 150 characters",
		})
	}
	if r.RecurrenceRule != nil && !validator.IsEmpty(*r.RecurrenceRule) {
		if err := calendar.ValidateRule(*r.RecurrenceRule); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "recurrence_rule",
				Message: "recurrence_rule must be an RFC 5545 rule such as FREQ=YEARLY",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HolidayResponse struct {
	ID             string  `json:"id"`
	Date           string  `json:"date"`
	Name           string  `json:"name"`
	RecurrenceRule *string `json:"recurrence_rule,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

func NewHolidayResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:             h.ID,
		Date:           h.Date.Format("2006-01-02"),
		Name:           h.Name,
		RecurrenceRule: h.RecurrenceRule,
		CreatedAt:      h.CreatedAt.Format(time.RFC3339),
	}
}
