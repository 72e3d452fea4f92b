package master

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/master"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/master/department"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/master/position"
)

type masterServiceImpl struct {
	departmentRepo department.DepartmentRepository
	positionRepo   position.PositionRepository
}

func NewMasterService(
	departmentRepo department.DepartmentRepository,
	positionRepo position.PositionRepository,
) master.MasterService {
	return &masterServiceImpl{
		departmentRepo: departmentRepo,
		positionRepo:   positionRepo,
	}
}

// ==================== DEPARTMENT OPERATIONS ====================

func (s *masterServiceImpl) CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	created, err := s.departmentRepo.Create(ctx, req.ToEntity())
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.NewDepartmentResponse(created), nil
}

func (s *masterServiceImpl) GetDepartment(ctx context.Context, id string) (department.DepartmentResponse, error) {
	entity, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.NewDepartmentResponse(entity), nil
}

func (s *masterServiceImpl) ListDepartments(ctx context.Context, filter department.DepartmentFilter) ([]department.DepartmentResponse, error) {
	departments, err := s.departmentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	responses := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, department.NewDepartmentResponse(d))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateDepartment(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	current, err := s.departmentRepo.GetByID(ctx, req.ID)
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	updated, err := s.departmentRepo.Update(ctx, req.Apply(current))
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.NewDepartmentResponse(updated), nil
}

func (s *masterServiceImpl) DeleteDepartment(ctx context.Context, id string) error {
	count, err := s.departmentRepo.CountEmployees(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count department employees: %w", err)
	}
	if count > 0 {
		return department.ErrDepartmentInUse
	}
	return s.departmentRepo.Delete(ctx, id)
}

// ==================== POSITION OPERATIONS ====================

func (s *masterServiceImpl) CreatePosition(ctx context.Context, req position.CreatePositionRequest) (position.PositionResponse, error) {
	if err := req.Validate(); err != nil {
		return position.PositionResponse{}, err
	}

	created, err := s.positionRepo.Create(ctx, req.ToEntity())
	if err != nil {
		return position.PositionResponse{}, err
	}
	return position.NewPositionResponse(created), nil
}

func (s *masterServiceImpl) GetPosition(ctx context.Context, id string) (position.PositionResponse, error) {
	entity, err := s.positionRepo.GetByID(ctx, id)
	if err != nil {
		return position.PositionResponse{}, err
	}
	return position.NewPositionResponse(entity), nil
}

func (s *masterServiceImpl) ListPositions(ctx context.Context, filter position.PositionFilter) ([]position.PositionResponse, error) {
	positions, err := s.positionRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}

	responses := make([]position.PositionResponse, 0, len(positions))
	for _, p := range positions {
		responses = append(responses, position.NewPositionResponse(p))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdatePosition(ctx context.Context, req position.UpdatePositionRequest) (position.PositionResponse, error) {
	if err := req.Validate(); err != nil {
		return position.PositionResponse{}, err
	}

	current, err := s.positionRepo.GetByID(ctx, req.ID)
	if err != nil {
		return position.PositionResponse{}, err
	}

	updated, err := s.positionRepo.Update(ctx, req.Apply(current))
	if err != nil {
		return position.PositionResponse{}, err
	}
	return position.NewPositionResponse(updated), nil
}

func (s *masterServiceImpl) DeletePosition(ctx context.Context, id string) error {
	count, err := s.positionRepo.CountEmployees(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count position employees: %w", err)
	}
	if count > 0 {
		return position.ErrPositionInUse
	}
	return s.positionRepo.Delete(ctx, id)
}
