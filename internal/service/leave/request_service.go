package leave

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/leave"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/jwt"
)

// CreateLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	emp, err := employee.Current(ctx, s.employeeRepo)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !leaveType.IsActive {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveTypeInactive
	}

	cal, err := holiday.LoadCalendar(ctx, s.holidayRepo)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	from, to := req.Range()
	days := cal.WorkingDays(from, to)
	if days <= 0 {
		return leave.LeaveRequestResponse{}, leave.ErrNoWorkingDays
	}

	created, err := s.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		EmployeeID:  emp.ID,
		LeaveTypeID: leaveType.ID,
		FromDate:    from,
		ToDate:      to,
		Days:        days,
		Reason:      req.Reason,
		Status:      leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	slog.Info("leave requested", "leave_request_id", created.ID, "employee_id", emp.ID, "days", days)

	created.EmployeeName = &emp.FullName
	created.LeaveTypeName = &leaveType.Name
	created.Paid = leaveType.Paid
	return leave.NewLeaveRequestResponse(created), nil
}

// ListMyLeaveRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMyLeaveRequests(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	emp, err := employee.Current(ctx, s.employeeRepo)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, leave.LeaveRequestFilter{EmployeeID: &emp.ID})
}

// ListLeaveRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.list(ctx, filter)
}

func (s *LeaveServiceImpl) list(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.NewLeaveRequestResponse(r))
	}
	return responses, nil
}

// ApproveLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) ApproveLeaveRequest(ctx context.Context, req leave.DecideLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	return s.decide(ctx, req, leave.StatusApproved)
}

// RejectLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) RejectLeaveRequest(ctx context.Context, req leave.DecideLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	return s.decide(ctx, req, leave.StatusRejected)
}

// decide moves a Pending request to status. Any other state is final.
func (s *LeaveServiceImpl) decide(ctx context.Context, req leave.DecideLeaveRequestRequest, status leave.RequestStatus) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.LeaveRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !request.IsPending() {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	decided, err := s.LeaveRequestRepository.Decide(ctx, request.ID, status, identity.UserID, s.now(), req.Note)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	slog.Info("leave request decided", "leave_request_id", decided.ID, "status", decided.Status, "approver_id", identity.UserID)
	return leave.NewLeaveRequestResponse(decided), nil
}
