package report

import "errors"

var (
	ErrTimesheetForbidden = errors.New("staff may only view their own timesheet")
)
