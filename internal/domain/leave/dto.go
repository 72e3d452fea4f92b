package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/validator"
)

type LeaveTypeRequest struct {
	ID          string  `json:"-"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Paid        bool    `json:"paid"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r *LeaveTypeRequest) Validate() error {
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

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveTypeResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Paid        bool    `json:"paid"`
	IsActive    bool    `json:"is_active"`
}

func NewLeaveTypeResponse(t LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Paid:        t.Paid,
		IsActive:    t.IsActive,
	}
}

type CreateLeaveRequestRequest struct {
	LeaveTypeID string  `json:"leave_type_id"`
	FromDate    string  `json:"from_date"`
	ToDate      string  `json:"to_date"`
	Reason      *string `json:"reason,omitempty"`

	from time.Time
	to   time.Time
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id must be a valid UUID",
		})
	}

	from, okFrom := validator.IsValidDate(r.FromDate)
	if !okFrom {
		errs = append(errs, validator.ValidationError{
			Field:   "from_date",
			Message: "from_date must be in YYYY-MM-DD format",
		})
	}
	to, okTo := validator.IsValidDate(r.ToDate)
	if !okTo {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date must be in YYYY-MM-DD format",
		})
	}
	if okFrom && okTo && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date must be on or after from_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	r.from, r.to = from, to
	return nil
}

// Range returns the parsed dates. Valid only after Validate succeeds.
func (r *CreateLeaveRequestRequest) Range() (time.Time, time.Time) {
	return r.from, r.to
}

type DecideLeaveRequestRequest struct {
	ID   string  `json:"-"`
	Note *string `json:"note,omitempty"`
}

func (r *DecideLeaveRequestRequest) Validate() error {
	if !validator.IsValidUUID(r.ID) {
		return validator.ValidationErrors{{
			Field:   "id",
			Message: "id must be a valid UUID",
		}}
	}
	return nil
}

type LeaveRequestFilter struct {
	EmployeeID *string
	Status     *string
}

func (f *LeaveRequestFilter) Validate() error {
	if f.Status != nil && !validator.IsInSlice(*f.Status, Statuses) {
		return validator.ValidationErrors{{
			Field:   "status",
			Message: "status must be one of Pending, Approved, Rejected",
		}}
	}
	return nil
}

type LeaveRequestResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveTypeName *string `json:"leave_type_name,omitempty"`
	Paid          bool    `json:"paid"`
	FromDate      string  `json:"from_date"`
	ToDate        string  `json:"to_date"`
	Days          int     `json:"days"`
	Reason        *string `json:"reason,omitempty"`
	Status        string  `json:"status"`
	ApproverID    *string `json:"approver_id,omitempty"`
	DecisionAt    *string `json:"decision_at,omitempty"`
	Note          *string `json:"note,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		LeaveTypeID:   r.LeaveTypeID,
		LeaveTypeName: r.LeaveTypeName,
		Paid:          r.Paid,
		FromDate:      r.FromDate.Format("2006-01-02"),
		ToDate:        r.ToDate.Format("2006-01-02"),
		Days:          r.Days,
		Reason:        r.Reason,
		Status:        string(r.Status),
		ApproverID:    r.ApproverID,
		Note:          r.Note,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
	if r.DecisionAt != nil {
		s := r.DecisionAt.Format(time.RFC3339)
		resp.DecisionAt = &s
	}
	return resp
}
