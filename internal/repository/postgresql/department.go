package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/master/department"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

const departmentColumns = `id, name, description, is_active, created_at, updated_at`

func scanDepartment(row pgx.Row) (department.Department, error) {
	var d department.Department
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (r *departmentRepositoryImpl) one(ctx context.Context, query string, args ...any) (department.Department, error) {
	d, err := scanDepartment(GetQuerier(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return department.Department{}, department.ErrDepartmentNotFound
		case isUniqueViolation(err):
			return department.Department{}, department.ErrDepartmentNameExists
		}
		return department.Department{}, fmt.Errorf("failed to query department: %w", err)
	}
	return d, nil
}

// Create implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Create(ctx context.Context, d department.Department) (department.Department, error) {
	query := `
		INSERT INTO departments (id, name, description, is_active, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, NOW(), NOW())
		RETURNING ` + departmentColumns
	return r.one(ctx, query, d.Name, d.Description, d.IsActive)
}

// GetByID implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (department.Department, error) {
	return r.one(ctx, `SELECT `+departmentColumns+` FROM departments WHERE id = $1`, id)
}

// List implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) List(ctx context.Context, filter department.DepartmentFilter) ([]department.Department, error) {
	query := `
		SELECT ` + departmentColumns + `
		FROM departments
		WHERE ($1::text IS NULL OR name ILIKE '%' || $1 || '%')
		  AND (NOT $2 OR is_active)
		ORDER BY name ASC
	`
	rows, err := GetQuerier(ctx, r.db).Query(ctx, query, filter.Query, filter.ActiveOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	departments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (department.Department, error) {
		return scanDepartment(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan departments: %w", err)
	}
	return departments, nil
}

// Update implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Update(ctx context.Context, d department.Department) (department.Department, error) {
	query := `
		UPDATE departments
		SET name = $1, description = $2, is_active = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + departmentColumns
	return r.one(ctx, query, d.Name, d.Description, d.IsActive, d.ID)
}

// Delete implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Delete(ctx context.Context, id string) error {
	commandTag, err := GetQuerier(ctx, r.db).Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return department.ErrDepartmentInUse
		}
		return fmt.Errorf("failed to delete department: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}
	return nil
}

// CountEmployees implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) CountEmployees(ctx context.Context, id string) (int64, error) {
	var count int64
	err := GetQuerier(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE department_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count department employees: %w", err)
	}
	return count, nil
}
