package middleware

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/auth"
	"github.com/cmlabs-hris/hris-timekeeping/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired admits requests whose verified token is an access token.
// It must run after jwtauth.Verifier. Refresh tokens are refused here.
func AuthRequired() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			switch {
			case err != nil:
				slog.Debug("rejected bearer token", "path", r.URL.Path, "error", err)
				response.HandleError(w, auth.ErrInvalidToken)
			case token == nil, claims["type"] != jwt.TokenTypeAccess:
				response.HandleError(w, auth.ErrInvalidToken)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
