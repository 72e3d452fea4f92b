package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/facematch"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/jwt"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID             string
	UserID         *string
	EmployeeCode   string
	FullName       string
	Email          string
	PhoneNumber    *string
	DepartmentID   *string
	PositionID     *string
	FaceProfileKey *string
	FaceEmbedding  facematch.Embedding
	BaseSalary     *decimal.Decimal
	Allowance      *decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// DTO / Join
	DepartmentName *string
	PositionName   *string
}

// HasFaceEmbedding reports whether a baseline embedding is enrolled.
func (e Employee) HasFaceEmbedding() bool {
	return len(e.FaceEmbedding) > 0
}

// Current resolves the employee linked to the authenticated user.
func Current(ctx context.Context, repo EmployeeRepository) (Employee, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return Employee{}, err
	}
	emp, err := repo.GetByUserID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			return Employee{}, ErrEmployeeNotFound
		}
		return Employee{}, fmt.Errorf("failed to get employee for user: %w", err)
	}
	return emp, nil
}
