package attendance

import (
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/facematch"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/validator"
)

// ========================================
// CHECK-IN / CHECK-OUT DTOs
// ========================================

type CheckInRequest struct {
	ShiftID *string `json:"shift_id,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	return validateShiftID(r.ShiftID)
}

type CheckOutRequest struct {
	ShiftID *string `json:"shift_id,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	return validateShiftID(r.ShiftID)
}

func validateShiftID(shiftID *string) error {
	if shiftID != nil && *shiftID != "" && !validator.IsValidUUID(*shiftID) {
		return validator.ValidationErrors{{
			Field:   "shift_id",
			Message: "shift_id must be a valid UUID",
		}}
	}
	return nil
}

type FaceCheckInRequest struct {
	ShiftID   *string             `json:"shift_id,omitempty"`
	Embedding facematch.Embedding `json:"embedding"`
	Latitude  *float64            `json:"latitude,omitempty"`
	Longitude *float64            `json:"longitude,omitempty"`
}

func (r *FaceCheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := validateShiftID(r.ShiftID); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}
	errs = append(errs, validateFaceProbe(r.Embedding, r.Latitude, r.Longitude)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// FaceAttendanceRequest is the body of the face attendance check-in and check-out.
type FaceAttendanceRequest struct {
	Embedding    facematch.Embedding `json:"embedding"`
	Latitude     *float64            `json:"latitude,omitempty"`
	Longitude    *float64            `json:"longitude,omitempty"`
	LocationName *string             `json:"location_name,omitempty"`
}

func (r *FaceAttendanceRequest) Validate() error {
	errs := validateFaceProbe(r.Embedding, r.Latitude, r.Longitude)
	if r.LocationName != nil && len(*r.LocationName) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "location_name",
			Message: "location_name must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateFaceProbe(embedding facematch.Embedding, lat, lon *float64) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if len(embedding) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "embedding",
			Message: "embedding is required",
		})
	}
	for _, v := range embedding {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, validator.ValidationError{
				Field:   "embedding",
				Message: "embedding must contain finite numbers",
			})
			break
		}
	}

	if (lat == nil) != (lon == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude and longitude must be sent together",
		})
	}
	if lat != nil && !validator.IsValidLatitude(*lat) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if lon != nil && !validator.IsValidLongitude(*lon) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	return errs
}

// ========================================
// MANAGER WORKFLOW DTOs
// ========================================

type ApproveAttendanceRequest struct {
	ID          string  `json:"-"`
	ManagerNote *string `json:"manager_note,omitempty"`
}

func (r *ApproveAttendanceRequest) Validate() error {
	return validateRecordID(r.ID)
}

type RejectAttendanceRequest struct {
	ID     string  `json:"-"`
	Reason *string `json:"reason,omitempty"`
}

func (r *RejectAttendanceRequest) Validate() error {
	return validateRecordID(r.ID)
}

type FixAttendanceRequest struct {
	ID             string  `json:"-"`
	ManualCheckIn  *string `json:"manual_check_in,omitempty"`
	ManualCheckOut *string `json:"manual_check_out,omitempty"`
	FixReason      string  `json:"fix_reason"`
	ManagerNote    *string `json:"manager_note,omitempty"`

	checkIn  *time.Time
	checkOut *time.Time
}

func (r *FixAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := validateRecordID(r.ID); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}

	if validator.IsEmpty(r.FixReason) {
		errs = append(errs, validator.ValidationError{
			Field:   "fix_reason",
			Message: "fix_reason is required",
		})
	}

	if r.ManualCheckIn != nil {
		t, ok := validator.IsValidDateTime(*r.ManualCheckIn)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "manual_check_in",
				Message: "manual_check_in must be an RFC3339 timestamp",
			})
		} else {
			r.checkIn = &t
		}
	}
	if r.ManualCheckOut != nil {
		t, ok := validator.IsValidDateTime(*r.ManualCheckOut)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "manual_check_out",
				Message: "manual_check_out must be an RFC3339 timestamp",
			})
		} else {
			r.checkOut = &t
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Punches returns the parsed manual punches. Valid only after Validate succeeds.
func (r *FixAttendanceRequest) Punches() (checkIn, checkOut *time.Time) {
	return r.checkIn, r.checkOut
}

func validateRecordID(id string) error {
	if !validator.IsValidUUID(id) {
		return validator.ValidationErrors{{
			Field:   "id",
			Message: "id must be a valid UUID",
		}}
	}
	return nil
}

// ========================================
// LIST / FILTER DTOs
// ========================================

type AttendanceFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	From       *string `json:"from,omitempty"` // YYYY-MM-DD
	To         *string `json:"to,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortOrder string `json:"sort_order"` // asc, desc

	FromDate *time.Time `json:"-"`
	ToDate   *time.Time `json:"-"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if f.Status != nil && !validator.IsInSlice(*f.Status, Statuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(Statuses, ", "),
		})
	}

	if f.From != nil {
		if d, ok := validator.IsValidDate(*f.From); ok {
			f.FromDate = &d
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "from",
				Message: "from must be in YYYY-MM-DD format",
			})
		}
	}
	if f.To != nil {
		if d, ok := validator.IsValidDate(*f.To); ok {
			f.ToDate = &d
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "to must be in YYYY-MM-DD format",
			})
		}
	}
	if f.FromDate != nil && f.ToDate != nil && f.ToDate.Before(*f.FromDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be on or after from",
		})
	}

	if f.SortOrder != "" {
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
		f.SortOrder = strings.ToLower(f.SortOrder)
	} else {
		f.SortOrder = "asc"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// RESPONSE DTOs
// ========================================

type AttendanceResponse struct {
	ID             string   `json:"id"`
	EmployeeID     string   `json:"employee_id"`
	EmployeeName   *string  `json:"employee_name,omitempty"`
	ShiftID        string   `json:"shift_id"`
	ShiftName      *string  `json:"shift_name,omitempty"`
	Date           string   `json:"date"`
	CheckIn        *string  `json:"check_in,omitempty"`
	CheckOut       *string  `json:"check_out,omitempty"`
	WorkMinutes    int      `json:"work_minutes"`
	LateMinutes    int      `json:"late_minutes"`
	EarlyMinutes   int      `json:"early_minutes"`
	OtMinutes      int      `json:"ot_minutes"`
	IsHoliday      bool     `json:"is_holiday"`
	Note           *string  `json:"note,omitempty"`
	Status         string   `json:"status"`
	ApproverID     *string  `json:"approver_id,omitempty"`
	ApproverName   *string  `json:"approver_name,omitempty"`
	ApprovedAt     *string  `json:"approved_at,omitempty"`
	ManagerNote    *string  `json:"manager_note,omitempty"`
	ManualCheckIn  *string  `json:"manual_check_in,omitempty"`
	ManualCheckOut *string  `json:"manual_check_out,omitempty"`
	FixReason      *string  `json:"fix_reason,omitempty"`
	Similarity     *float64 `json:"similarity,omitempty"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func NewAttendanceResponse(r Record) AttendanceResponse {
	return AttendanceResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		EmployeeName:   r.EmployeeName,
		ShiftID:        r.ShiftID,
		ShiftName:      r.ShiftName,
		Date:           r.Date.Format("2006-01-02"),
		CheckIn:        formatTime(r.CheckIn),
		CheckOut:       formatTime(r.CheckOut),
		WorkMinutes:    r.WorkMinutes,
		LateMinutes:    r.LateMinutes,
		EarlyMinutes:   r.EarlyMinutes,
		OtMinutes:      r.OtMinutes,
		IsHoliday:      r.IsHoliday,
		Note:           r.Note,
		Status:         string(r.Status),
		ApproverID:     r.ApproverID,
		ApproverName:   r.ApproverName,
		ApprovedAt:     formatTime(r.ApprovedAt),
		ManagerNote:    r.ManagerNote,
		ManualCheckIn:  formatTime(r.ManualCheckIn),
		ManualCheckOut: formatTime(r.ManualCheckOut),
		FixReason:      r.FixReason,
		CreatedAt:      r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      r.UpdatedAt.Format(time.RFC3339),
	}
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// TodayAttendanceResponse summarises the caller's records for the current day.
type TodayAttendanceResponse struct {
	HasRecord      bool    `json:"has_record"`
	ShiftID        *string `json:"shift_id"`
	ShiftName      *string `json:"shift_name"`
	FirstCheckInAt *string `json:"first_check_in_at"`
	LastCheckOutAt *string `json:"last_check_out_at"`
	Status         *string `json:"status"`
}

type FaceTodayResponse struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Date         string  `json:"date"`
	CheckIn      *string `json:"check_in"`
	CheckOut     *string `json:"check_out"`
	HasCheckIn   bool    `json:"has_check_in"`
	HasCheckOut  bool    `json:"has_check_out"`
	Status       *string `json:"status"`
}

type FaceAttendanceResponse struct {
	Attendance AttendanceResponse `json:"attendance"`
	Similarity float64            `json:"similarity"`
}
