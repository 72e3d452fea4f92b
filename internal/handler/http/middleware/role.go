package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/user"
	"github.com/cmlabs-hris/hris-timekeeping/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/jwt"
)

// RequireRole admits callers whose role satisfies allowed and answers denied otherwise.
func RequireRole(allowed func(user.Role) bool, denied error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := jwt.IdentityFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if !allowed(identity.Role) {
				response.HandleError(w, denied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireManager requires manager or admin role
var RequireManager = RequireRole(user.Role.IsManager, user.ErrManagerAccessRequired)

// RequireAdmin requires admin role
var RequireAdmin = RequireRole(func(r user.Role) bool { return r == user.RoleAdmin }, user.ErrAdminAccessRequired)
