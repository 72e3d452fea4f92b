package employee

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/user"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/database"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/facematch"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-timekeeping/internal/service/file"
)

type EmployeeServiceImpl struct {
	tx           database.Transactor
	employeeRepo employee.EmployeeRepository
	userRepo     user.UserRepository
	fileService  file.FileService
}

func NewEmployeeService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	fileService file.FileService,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		fileService:  fileService,
	}
}

func (s *EmployeeServiceImpl) toResponse(e employee.Employee) employee.EmployeeResponse {
	return employee.NewEmployeeResponse(e, s.fileService.GetFileURL)
}

// generatedEmployeeCode derives a stable code from the user id.
func generatedEmployeeCode(userID string) string {
	compact := strings.ReplaceAll(userID, "-", "")
	if len(compact) > 8 {
		compact = compact[len(compact)-8:]
	}
	return "EMP-" + strings.ToUpper(compact)
}

// ensureCurrent returns the caller's employee record. A user without one is linked
// to an unclaimed record with the same email, or gets a new record.
func (s *EmployeeServiceImpl) ensureCurrent(ctx context.Context) (employee.Employee, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return employee.Employee{}, err
	}

	emp, err := s.employeeRepo.GetByUserID(ctx, identity.UserID)
	if err == nil {
		return emp, nil
	}
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.Employee{}, fmt.Errorf("failed to get employee for user: %w", err)
	}

	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		account, err := s.userRepo.GetByID(txCtx, identity.UserID)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}

		unlinked, err := s.employeeRepo.GetUnlinkedByEmail(txCtx, account.Email)
		switch {
		case err == nil:
			if err := s.employeeRepo.LinkUser(txCtx, unlinked.ID, account.ID); err != nil {
				return fmt.Errorf("failed to link employee: %w", err)
			}
			emp, err = s.employeeRepo.GetByID(txCtx, unlinked.ID)
			if err != nil {
				return err
			}
			slog.Info("employee linked to user", "employee_id", emp.ID, "user_id", account.ID)
			return nil
		case errors.Is(err, employee.ErrEmployeeNotFound):
		default:
			return fmt.Errorf("failed to look up employee by email: %w", err)
		}

		fullName := account.FullName
		if strings.TrimSpace(fullName) == "" {
			fullName = account.Email
		}
		emp, err = s.employeeRepo.Create(txCtx, employee.Employee{
			UserID:       &account.ID,
			EmployeeCode: generatedEmployeeCode(account.ID),
			FullName:     fullName,
			Email:        account.Email,
		})
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}
		slog.Info("employee provisioned", "employee_id", emp.ID, "user_id", account.ID)
		return nil
	})
	if err != nil {
		return employee.Employee{}, err
	}
	return emp, nil
}

// GetMe implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetMe(ctx context.Context) (employee.EmployeeResponse, error) {
	emp, err := s.ensureCurrent(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.toResponse(emp), nil
}

// UpdateMe implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateMe(ctx context.Context, req employee.UpdateProfileRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.ensureCurrent(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	req.FullName = strings.TrimSpace(req.FullName)
	if err := s.employeeRepo.UpdateProfile(ctx, emp.ID, req); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.GetEmployee(ctx, emp.ID)
}

// UploadMyFace implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UploadMyFace(ctx context.Context, photo io.Reader, filename string) (employee.EmployeeResponse, error) {
	emp, err := s.ensureCurrent(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	key, err := s.fileService.UploadFaceProfile(ctx, emp.ID, photo, filename)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.UpdateFaceProfile(ctx, emp.ID, key); err != nil {
		if delErr := s.fileService.DeleteFile(ctx, key); delErr != nil {
			slog.Warn("failed to remove orphaned face photo", "key", key, "error", delErr)
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to save face profile: %w", err)
	}

	if emp.FaceProfileKey != nil && *emp.FaceProfileKey != key {
		if err := s.fileService.DeleteFile(ctx, *emp.FaceProfileKey); err != nil {
			slog.Warn("failed to remove previous face photo", "key", *emp.FaceProfileKey, "error", err)
		}
	}

	return s.GetEmployee(ctx, emp.ID)
}

// SetMyFaceEmbedding implements employee.EmployeeService.
func (s *EmployeeServiceImpl) SetMyFaceEmbedding(ctx context.Context, req employee.FaceEmbeddingRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.ensureCurrent(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.UpdateFaceEmbedding(ctx, emp.ID, facematch.Embedding(req.Embedding)); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to save face embedding: %w", err)
	}
	slog.Info("face embedding enrolled", "employee_id", emp.ID, "dimensions", len(req.Embedding))
	return s.GetEmployee(ctx, emp.ID)
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	filter.Normalize()

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, s.toResponse(e))
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Employees:  responses,
	}, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.toResponse(emp), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		UserID:       req.UserID,
		EmployeeCode: strings.TrimSpace(req.EmployeeCode),
		FullName:     strings.TrimSpace(req.FullName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PhoneNumber:  req.PhoneNumber,
		DepartmentID: req.DepartmentID,
		PositionID:   req.PositionID,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.GetEmployee(ctx, created.ID)
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &normalized
	}
	if err := s.employeeRepo.Update(ctx, req); err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.GetEmployee(ctx, req.ID)
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}
	if emp.FaceProfileKey != nil {
		if err := s.fileService.DeleteFile(ctx, *emp.FaceProfileKey); err != nil {
			slog.Warn("failed to remove face photo of deleted employee", "key", *emp.FaceProfileKey, "error", err)
		}
	}
	return nil
}

// GetPayrollSettings implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetPayrollSettings(ctx context.Context, id string) (employee.PayrollSettingsResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.PayrollSettingsResponse{}, err
	}
	return employee.PayrollSettingsResponse{
		EmployeeID: emp.ID,
		FullName:   emp.FullName,
		BaseSalary: emp.BaseSalary,
		Allowance:  emp.Allowance,
	}, nil
}

// UpdatePayrollSettings implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdatePayrollSettings(ctx context.Context, req employee.PayrollSettingsRequest) (employee.PayrollSettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.PayrollSettingsResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return employee.PayrollSettingsResponse{}, err
	}

	baseSalary, allowance := emp.BaseSalary, emp.Allowance
	if req.BaseSalary != nil {
		baseSalary = req.BaseSalary
	}
	if req.Allowance != nil {
		allowance = req.Allowance
	}

	if err := s.employeeRepo.UpdatePayrollSettings(ctx, emp.ID, baseSalary, allowance); err != nil {
		return employee.PayrollSettingsResponse{}, fmt.Errorf("failed to update payroll settings: %w", err)
	}
	return s.GetPayrollSettings(ctx, emp.ID)
}
