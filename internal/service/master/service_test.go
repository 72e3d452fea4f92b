package master

import (
	"context"
	"strings"
	"testing"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/master/department"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/master/position"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-timekeeping/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDepartmentRepo struct {
	items     map[string]department.Department
	employees map[string]int64
}

func (r *fakeDepartmentRepo) Create(ctx context.Context, d department.Department) (department.Department, error) {
	for _, existing := range r.items {
		if existing.Name == d.Name {
			return department.Department{}, department.ErrDepartmentNameExists
		}
	}
	d.ID = servicetest.NewID()
	r.items[d.ID] = d
	return d, nil
}

func (r *fakeDepartmentRepo) GetByID(ctx context.Context, id string) (department.Department, error) {
	d, ok := r.items[id]
	if !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	return d, nil
}

func matchesCatalog(name string, active bool, query *string, activeOnly bool) bool {
	if activeOnly && !active {
		return false
	}
	return query == nil || strings.Contains(strings.ToLower(name), strings.ToLower(*query))
}

func (r *fakeDepartmentRepo) List(ctx context.Context, filter department.DepartmentFilter) ([]department.Department, error) {
	out := make([]department.Department, 0, len(r.items))
	for _, d := range r.items {
		if matchesCatalog(d.Name, d.IsActive, filter.Query, filter.ActiveOnly) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDepartmentRepo) Update(ctx context.Context, d department.Department) (department.Department, error) {
	if _, ok := r.items[d.ID]; !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	r.items[d.ID] = d
	return d, nil
}

func (r *fakeDepartmentRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return department.ErrDepartmentNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeDepartmentRepo) CountEmployees(ctx context.Context, id string) (int64, error) {
	return r.employees[id], nil
}

type fakePositionRepo struct {
	items     map[string]position.Position
	employees map[string]int64
}

func (r *fakePositionRepo) Create(ctx context.Context, p position.Position) (position.Position, error) {
	for _, existing := range r.items {
		if existing.Name == p.Name {
			return position.Position{}, position.ErrPositionNameExists
		}
	}
	p.ID = servicetest.NewID()
	r.items[p.ID] = p
	return p, nil
}

func (r *fakePositionRepo) GetByID(ctx context.Context, id string) (position.Position, error) {
	p, ok := r.items[id]
	if !ok {
		return position.Position{}, position.ErrPositionNotFound
	}
	return p, nil
}

func (r *fakePositionRepo) List(ctx context.Context, filter position.PositionFilter) ([]position.Position, error) {
	out := make([]position.Position, 0, len(r.items))
	for _, p := range r.items {
		if matchesCatalog(p.Name, p.IsActive, filter.Query, filter.ActiveOnly) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePositionRepo) Update(ctx context.Context, p position.Position) (position.Position, error) {
	if _, ok := r.items[p.ID]; !ok {
		return position.Position{}, position.ErrPositionNotFound
	}
	r.items[p.ID] = p
	return p, nil
}

func (r *fakePositionRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return position.ErrPositionNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakePositionRepo) CountEmployees(ctx context.Context, id string) (int64, error) {
	return r.employees[id], nil
}

func newService() (*fakeDepartmentRepo, *fakePositionRepo, *masterServiceImpl) {
	departments := &fakeDepartmentRepo{items: map[string]department.Department{}, employees: map[string]int64{}}
	positions := &fakePositionRepo{items: map[string]position.Position{}, employees: map[string]int64{}}
	return departments, positions, NewMasterService(departments, positions).(*masterServiceImpl)
}

func TestDepartments(t *testing.T) {
	ctx := context.Background()
	departments, _, svc := newService()

	created, err := svc.CreateDepartment(ctx, department.CreateDepartmentRequest{Name: "  Engineering "})
	require.NoError(t, err)
	assert.Equal(t, "Engineering", created.Name)
	assert.True(t, created.IsActive)
	assert.Nil(t, created.Description)

	_, err = svc.CreateDepartment(ctx, department.CreateDepartmentRequest{Name: "Engineering"})
	assert.ErrorIs(t, err, department.ErrDepartmentNameExists)

	_, err = svc.CreateDepartment(ctx, department.CreateDepartmentRequest{Name: ""})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	updated, err := svc.UpdateDepartment(ctx, department.UpdateDepartmentRequest{ID: created.ID, Name: "Platform"})
	require.NoError(t, err)
	assert.Equal(t, "Platform", updated.Name)

	list, err := svc.ListDepartments(ctx, department.DepartmentFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	departments.employees[created.ID] = 2
	assert.ErrorIs(t, svc.DeleteDepartment(ctx, created.ID), department.ErrDepartmentInUse)

	departments.employees[created.ID] = 0
	require.NoError(t, svc.DeleteDepartment(ctx, created.ID))
	_, err = svc.GetDepartment(ctx, created.ID)
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
}

func TestPositions(t *testing.T) {
	ctx := context.Background()
	_, positions, svc := newService()

	created, err := svc.CreatePosition(ctx, position.CreatePositionRequest{Name: "Backend Engineer"})
	require.NoError(t, err)

	got, err := svc.GetPosition(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", got.Name)

	positions.employees[created.ID] = 1
	assert.ErrorIs(t, svc.DeletePosition(ctx, created.ID), position.ErrPositionInUse)

	_, err = svc.UpdatePosition(ctx, position.UpdatePositionRequest{ID: servicetest.NewID(), Name: "Lead"})
	assert.ErrorIs(t, err, position.ErrPositionNotFound)
}

func TestDepartments_UpdateKeepsActiveFlagWhenOmitted(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newService()

	inactive := false
	desc := " Payments and billing "
	created, err := svc.CreateDepartment(ctx, department.CreateDepartmentRequest{Name: "Finance", Description: &desc, IsActive: &inactive})
	require.NoError(t, err)
	require.NotNil(t, created.Description)
	assert.Equal(t, "Payments and billing", *created.Description)
	assert.False(t, created.IsActive)

	updated, err := svc.UpdateDepartment(ctx, department.UpdateDepartmentRequest{ID: created.ID, Name: "Finance & Tax"})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Nil(t, updated.Description)
}

func TestCatalogFilters(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newService()

	inactive := false
	for _, req := range []position.CreatePositionRequest{
		{Name: "Backend Engineer"},
		{Name: "Frontend Engineer", IsActive: &inactive},
		{Name: "Recruiter"},
	} {
		_, err := svc.CreatePosition(ctx, req)
		require.NoError(t, err)
	}

	q := "engineer"
	all, err := svc.ListPositions(ctx, position.PositionFilter{Query: &q})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.ListPositions(ctx, position.PositionFilter{Query: &q, ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Backend Engineer", active[0].Name)
}

func TestPositions_DescriptionTooLong(t *testing.T) {
	_, _, svc := newService()

	long := strings.Repeat("x", 501)
	_, err := svc.CreatePosition(context.Background(), position.CreatePositionRequest{Name: "Analyst", Description: &long})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "description", verrs[0].Field)
}
