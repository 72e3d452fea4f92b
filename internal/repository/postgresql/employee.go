package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/database"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/facematch"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelect = `
	SELECT e.id, e.user_id, e.employee_code, e.full_name, e.email, e.phone_number,
		   e.department_id, e.position_id, e.face_profile_key, e.face_embedding,
		   e.base_salary, e.allowance, e.created_at, e.updated_at,
		   d.name AS department_name, p.name AS position_name
	FROM employees e
	LEFT JOIN departments d ON d.id = e.department_id
	LEFT JOIN positions p ON p.id = e.position_id
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.UserID, &emp.EmployeeCode, &emp.FullName, &emp.Email, &emp.PhoneNumber,
		&emp.DepartmentID, &emp.PositionID, &emp.FaceProfileKey, &emp.FaceEmbedding,
		&emp.BaseSalary, &emp.Allowance, &emp.CreatedAt, &emp.UpdatedAt,
		&emp.DepartmentName, &emp.PositionName,
	)
	return emp, err
}

// mapEmployeeWriteError translates constraint violations into domain errors.
func mapEmployeeWriteError(err error) error {
	switch {
	case isUniqueViolation(err):
		switch violatedConstraint(err) {
		case "employees_employee_code_key":
			return employee.ErrEmployeeCodeExists
		case "employees_user_id_key":
			return employee.ErrUserAlreadyLinked
		default:
			return employee.ErrEmailExists
		}
	case isForeignKeyViolation(err):
		return employee.ErrInvalidReference
	}
	return err
}

func (e *employeeRepositoryImpl) getOne(ctx context.Context, where string, arg any) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	emp, err := scanEmployee(q.QueryRow(ctx, employeeSelect+" WHERE "+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return e.getOne(ctx, "e.id = $1", id)
}

// GetByUserID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	return e.getOne(ctx, "e.user_id = $1", userID)
}

// GetUnlinkedByEmail implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetUnlinkedByEmail(ctx context.Context, email string) (employee.Employee, error) {
	return e.getOne(ctx, "e.user_id IS NULL AND e.email = $1", email)
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			id, user_id, employee_code, full_name, email, phone_number,
			department_id, position_id, base_salary, allowance, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newEmployee.UserID,
		newEmployee.EmployeeCode,
		newEmployee.FullName,
		newEmployee.Email,
		newEmployee.PhoneNumber,
		newEmployee.DepartmentID,
		newEmployee.PositionID,
		newEmployee.BaseSalary,
		newEmployee.Allowance,
	).Scan(&newEmployee.ID, &newEmployee.CreatedAt, &newEmployee.UpdatedAt)
	if err != nil {
		if mapped := mapEmployeeWriteError(err); mapped != err {
			return employee.Employee{}, mapped
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return newEmployee, nil
}

// Update implements employee.EmployeeRepository. Empty department or position ids clear the reference.
func (e *employeeRepositoryImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, e.db)

	setClauses := make([]string, 0, 7)
	args := make([]any, 0, 8)
	set := func(col string, val any) {
		args = append(args, val)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	nullable := func(v *string) any {
		if *v == "" {
			return nil
		}
		return *v
	}

	if req.EmployeeCode != nil {
		set("employee_code", strings.TrimSpace(*req.EmployeeCode))
	}
	if req.FullName != nil {
		set("full_name", strings.TrimSpace(*req.FullName))
	}
	if req.Email != nil {
		set("email", *req.Email)
	}
	if req.PhoneNumber != nil {
		set("phone_number", nullable(req.PhoneNumber))
	}
	if req.DepartmentID != nil {
		set("department_id", nullable(req.DepartmentID))
	}
	if req.PositionID != nil {
		set("position_id", nullable(req.PositionID))
	}
	setClauses = append(setClauses, "updated_at = NOW()")

	args = append(args, req.ID)
	sql := fmt.Sprintf("UPDATE employees SET %s WHERE id = $%d", strings.Join(setClauses, ", "), len(args))

	commandTag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		if mapped := mapEmployeeWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to update employee with id %s: %w", req.ID, err)
	}
	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (e *employeeRepositoryImpl) exec(ctx context.Context, sql string, args ...any) error {
	q := GetQuerier(ctx, e.db)

	commandTag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		if mapped := mapEmployeeWriteError(err); mapped != err {
			return mapped
		}
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// UpdateProfile implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateProfile(ctx context.Context, id string, req employee.UpdateProfileRequest) error {
	return e.exec(ctx, `UPDATE employees SET full_name = $1, phone_number = $2, updated_at = NOW() WHERE id = $3`,
		req.FullName, req.PhoneNumber, id)
}

// LinkUser implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) LinkUser(ctx context.Context, id string, userID string) error {
	return e.exec(ctx, `UPDATE employees SET user_id = $1, updated_at = NOW() WHERE id = $2 AND user_id IS NULL`, userID, id)
}

// Delete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	return e.exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
}

// UpdateFaceProfile implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateFaceProfile(ctx context.Context, id string, key string) error {
	return e.exec(ctx, `UPDATE employees SET face_profile_key = $1, updated_at = NOW() WHERE id = $2`, key, id)
}

// UpdateFaceEmbedding implements employee.EmployeeRepository. The embedding is stored as a JSON array.
func (e *employeeRepositoryImpl) UpdateFaceEmbedding(ctx context.Context, id string, embedding facematch.Embedding) error {
	return e.exec(ctx, `UPDATE employees SET face_embedding = $1, updated_at = NOW() WHERE id = $2`, []float64(embedding), id)
}

// UpdatePayrollSettings implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdatePayrollSettings(ctx context.Context, id string, baseSalary, allowance *decimal.Decimal) error {
	return e.exec(ctx, `UPDATE employees SET base_salary = $1, allowance = $2, updated_at = NOW() WHERE id = $3`,
		baseSalary, allowance, id)
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, e.db)

	var conditions []string
	var args []any

	if filter.Query != nil && strings.TrimSpace(*filter.Query) != "" {
		args = append(args, "%"+strings.TrimSpace(*filter.Query)+"%")
		conditions = append(conditions, fmt.Sprintf("(e.full_name ILIKE $%d OR e.email ILIKE $%d OR e.employee_code ILIKE $%d)", len(args), len(args), len(args)))
	}
	if filter.DepartmentID != nil && *filter.DepartmentID != "" {
		args = append(args, *filter.DepartmentID)
		conditions = append(conditions, fmt.Sprintf("e.department_id = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM employees e"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)
	query := fmt.Sprintf("%s%s ORDER BY e.full_name ASC LIMIT $%d OFFSET $%d", employeeSelect, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return employees, total, nil
}
