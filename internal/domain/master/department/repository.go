package department

import "context"

type DepartmentRepository interface {
	Create(ctx context.Context, department Department) (Department, error)
	GetByID(ctx context.Context, id string) (Department, error)
	List(ctx context.Context, filter DepartmentFilter) ([]Department, error)
	Update(ctx context.Context, department Department) (Department, error)
	Delete(ctx context.Context, id string) error
	// CountEmployees returns how many employees reference the department.
	CountEmployees(ctx context.Context, id string) (int64, error)
}
