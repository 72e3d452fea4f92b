package shift

import "errors"

var (
	ErrShiftNotFound   = errors.New("shift not found")
	ErrShiftNameExists = errors.New("shift with this name already exists")
	ErrNoActiveShift   = errors.New("no active shift is configured")
	ErrShiftInUse      = errors.New("shift is referenced by attendance records")
)
