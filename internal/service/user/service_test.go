package user

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/user"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users []user.User
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	r.users = append(r.users, newUser)
	return newUser, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]user.User, error) {
	return r.users, nil
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, id string, role user.Role) (user.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].Role = role
			return r.users[i], nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func identityContext(t *testing.T, role user.Role) context.Context {
	t.Helper()
	ja := jwt.NewJWTService("test-secret", "1h", "24h").JWTAuth()
	ctx, err := jwt.NewContext(context.Background(), ja, jwt.Identity{UserID: "admin-1", Role: role})
	require.NoError(t, err)
	return ctx
}

func TestUserService_UpdateRole(t *testing.T) {
	repo := &fakeUserRepo{users: []user.User{{ID: "u1", Email: "staff@example.com", Role: user.RoleStaff}}}
	svc := NewUserService(repo)

	resp, err := svc.UpdateRole(identityContext(t, user.RoleAdmin), user.UpdateUserRoleRequest{ID: "u1", Role: "manager"})
	require.NoError(t, err)
	assert.Equal(t, "manager", resp.Role)

	_, err = svc.UpdateRole(identityContext(t, user.RoleManager), user.UpdateUserRoleRequest{ID: "u1", Role: "admin"})
	assert.ErrorIs(t, err, user.ErrAdminAccessRequired)

	_, err = svc.UpdateRole(identityContext(t, user.RoleAdmin), user.UpdateUserRoleRequest{ID: "missing", Role: "staff"})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserService_List(t *testing.T) {
	repo := &fakeUserRepo{users: []user.User{{ID: "u1", Role: user.RoleStaff}, {ID: "u2", Role: user.RoleAdmin}}}
	resp, err := NewUserService(repo).List(context.Background())
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "admin", resp[1].Role)
}
