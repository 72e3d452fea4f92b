package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/user"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/jwt"
)

type UserServiceImpl struct {
	userRepo user.UserRepository
}

func NewUserService(userRepo user.UserRepository) user.UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.NewUserResponse(u))
	}
	return responses, nil
}

// UpdateRole implements user.UserService.
func (s *UserServiceImpl) UpdateRole(ctx context.Context, req user.UpdateUserRoleRequest) (user.UserResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	if identity.Role != user.RoleAdmin {
		return user.UserResponse{}, user.ErrAdminAccessRequired
	}

	updated, err := s.userRepo.UpdateRole(ctx, req.ID, user.Role(req.Role))
	if err != nil {
		return user.UserResponse{}, err
	}
	slog.Info("user role updated", "user_id", updated.ID, "role", updated.Role, "by", identity.UserID)
	return user.NewUserResponse(updated), nil
}
