package leave

import "errors"

var (
	ErrLeaveTypeNotFound            = errors.New("leave type not found")
	ErrLeaveTypeNameExists          = errors.New("leave type with this name already exists")
	ErrLeaveTypeInactive            = errors.New("leave type is not active")
	ErrLeaveTypeInUse               = errors.New("leave type is referenced by leave requests")
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrNoWorkingDays                = errors.New("the requested range has no working days")
)
