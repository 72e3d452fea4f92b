package user

import "context"

type UserService interface {
	List(ctx context.Context) ([]UserResponse, error)
	UpdateRole(ctx context.Context, req UpdateUserRoleRequest) (UserResponse, error)
}
