package employee

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/user"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-timekeeping/internal/service/file"
	"github.com/cmlabs-hris/hris-timekeeping/internal/service/servicetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc       employee.EmployeeService
	employees *servicetest.Employees
	storage   *storage.LocalStorage
	account   user.User
	ctx       context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	account := user.User{ID: "0192f1a0-7c1e-7a3b-9d4e-5f6a7b8c9d0e", Email: "maya@example.com", FullName: "Maya Putri", Role: user.RoleStaff}
	store, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	employees := servicetest.NewEmployees()
	return &fixture{
		svc:       NewEmployeeService(servicetest.Tx{}, employees, servicetest.NewUsers(account), file.NewFileService(store)),
		employees: employees,
		storage:   store,
		account:   account,
		ctx:       servicetest.Context(t, jwt.Identity{UserID: account.ID, Email: account.Email, Role: account.Role}),
	}
}

func pngPhoto(t *testing.T) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for x := 0; x < 32; x++ {
		img.Set(x, x, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestGetMe_ProvisionsEmployee(t *testing.T) {
	f := newFixture(t)

	me, err := f.svc.GetMe(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, "EMP-7B8C9D0E", me.EmployeeCode)
	assert.Equal(t, "Maya Putri", me.FullName)
	assert.False(t, me.HasFaceEmbedding)

	again, err := f.svc.GetMe(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, me.ID, again.ID)
	assert.Len(t, f.employees.Items, 1)
}

func TestGetMe_LinksUnclaimedEmployee(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		EmployeeCode: "EMP-100",
		FullName:     "Maya P.",
		Email:        "Maya@Example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "maya@example.com", created.Email)

	me, err := f.svc.GetMe(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, created.ID, me.ID)
	require.NotNil(t, me.UserID)
	assert.Equal(t, f.account.ID, *me.UserID)
}

func TestUpdateMe(t *testing.T) {
	f := newFixture(t)

	phone := "+628123456789"
	me, err := f.svc.UpdateMe(f.ctx, employee.UpdateProfileRequest{FullName: " Maya Putri Sari ", PhoneNumber: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Maya Putri Sari", me.FullName)

	_, err = f.svc.UpdateMe(f.ctx, employee.UpdateProfileRequest{FullName: ""})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestFaceEnrollment(t *testing.T) {
	f := newFixture(t)

	me, err := f.svc.UploadMyFace(f.ctx, pngPhoto(t), "selfie.png")
	require.NoError(t, err)
	require.NotNil(t, me.FaceProfileURL)
	assert.Contains(t, *me.FaceProfileURL, "http://localhost:8080/uploads/faces/"+me.ID+"/")
	firstKey := *f.employees.Items[me.ID].FaceProfileKey

	me, err = f.svc.UploadMyFace(f.ctx, pngPhoto(t), "selfie2.png")
	require.NoError(t, err)
	_, err = f.storage.Open(context.Background(), firstKey)
	assert.ErrorIs(t, err, storage.ErrFileNotFound, "previous photo is removed")

	_, err = f.svc.UploadMyFace(f.ctx, bytes.NewBufferString("not an image"), "notes.txt")
	assert.ErrorIs(t, err, file.ErrUnsupportedFileType)

	_, err = f.svc.SetMyFaceEmbedding(f.ctx, employee.FaceEmbeddingRequest{})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	me, err = f.svc.SetMyFaceEmbedding(f.ctx, employee.FaceEmbeddingRequest{Embedding: []float64{0.1, 0.2, 0.3}})
	require.NoError(t, err)
	assert.True(t, me.HasFaceEmbedding)
}

func TestEmployeeManagement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{EmployeeCode: "EMP-200", FullName: "Joko", Email: "joko@example.com"})
	require.NoError(t, err)

	_, err = f.svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{EmployeeCode: "EMP-200", FullName: "Other", Email: "other@example.com"})
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)

	name := "Joko Widodo"
	updated, err := f.svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: created.ID, FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.FullName)

	list, err := f.svc.ListEmployees(ctx, employee.EmployeeFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.TotalCount)
	assert.Equal(t, 20, list.Limit)

	require.NoError(t, f.svc.DeleteEmployee(ctx, created.ID))
	_, err = f.svc.GetEmployee(ctx, created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestUpdatePayrollSettings_MergesFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{EmployeeCode: "EMP-300", FullName: "Lina", Email: "lina@example.com"})
	require.NoError(t, err)

	base := decimal.NewFromInt(8_000_000)
	settings, err := f.svc.UpdatePayrollSettings(ctx, employee.PayrollSettingsRequest{EmployeeID: created.ID, BaseSalary: &base})
	require.NoError(t, err)
	assert.True(t, base.Equal(*settings.BaseSalary))
	assert.Nil(t, settings.Allowance)

	allowance := decimal.NewFromInt(750_000)
	settings, err = f.svc.UpdatePayrollSettings(ctx, employee.PayrollSettingsRequest{EmployeeID: created.ID, Allowance: &allowance})
	require.NoError(t, err)
	assert.True(t, base.Equal(*settings.BaseSalary), "base salary is kept")
	assert.True(t, allowance.Equal(*settings.Allowance))

	_, err = f.svc.UpdatePayrollSettings(ctx, employee.PayrollSettingsRequest{EmployeeID: servicetest.NewID()})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
