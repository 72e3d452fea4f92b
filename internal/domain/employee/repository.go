package employee

import (
	"context"

	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/facematch"
	"github.com/shopspring/decimal"
)

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	// GetUnlinkedByEmail finds an employee created by a manager that no user has claimed yet.
	GetUnlinkedByEmail(ctx context.Context, email string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) error
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) error
	LinkUser(ctx context.Context, id string, userID string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	UpdateFaceProfile(ctx context.Context, id string, key string) error
	UpdateFaceEmbedding(ctx context.Context, id string, embedding facematch.Embedding) error
	UpdatePayrollSettings(ctx context.Context, id string, baseSalary, allowance *decimal.Decimal) error
}
