package employee

import (
	"context"
	"io"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// GetMe returns the caller's employee profile, creating it on first use.
	GetMe(ctx context.Context) (EmployeeResponse, error)
	UpdateMe(ctx context.Context, req UpdateProfileRequest) (EmployeeResponse, error)
	UploadMyFace(ctx context.Context, file io.Reader, filename string) (EmployeeResponse, error)
	SetMyFaceEmbedding(ctx context.Context, req FaceEmbeddingRequest) (EmployeeResponse, error)

	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, id string) error

	GetPayrollSettings(ctx context.Context, id string) (PayrollSettingsResponse, error)
	UpdatePayrollSettings(ctx context.Context, req PayrollSettingsRequest) (PayrollSettingsResponse, error)
}
