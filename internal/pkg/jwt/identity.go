package jwt

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

var ErrMissingIdentity = errors.New("missing or invalid token claims")

// Identity is the caller described by a verified access token.
type Identity struct {
	UserID     string
	Email      string
	EmployeeID *string
	Role       user.Role
}

func (i Identity) IsManager() bool {
	return i.Role.IsManager()
}

// IdentityFromContext reads the access token claims placed by jwtauth.Verifier.
func IdentityFromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, ErrMissingIdentity
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, ErrMissingIdentity
	}
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return Identity{}, ErrMissingIdentity
	}

	id := Identity{
		UserID: userID,
		Role:   user.Role(role),
	}
	id.Email, _ = claims["email"].(string)
	if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
		id.EmployeeID = &employeeID
	}
	return id, nil
}

// NewContext returns ctx carrying an access token for id, as jwtauth.Verifier would.
func NewContext(ctx context.Context, ja *jwtauth.JWTAuth, id Identity) (context.Context, error) {
	claims := map[string]interface{}{
		"user_id": id.UserID,
		"email":   id.Email,
		"role":    string(id.Role),
		"type":    TokenTypeAccess,
	}
	if id.EmployeeID != nil {
		claims["employee_id"] = *id.EmployeeID
	}
	token, _, err := ja.Encode(claims)
	if err != nil {
		return nil, err
	}
	return jwtauth.NewContext(ctx, token, nil), nil
}
