package jwt

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "1h", "24h")
	employeeID := "0190b0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "staff@example.com", &employeeID, user.RoleStaff)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, int64(0))

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "staff@example.com", claims["email"])
	assert.Equal(t, employeeID, claims["employee_id"])
	assert.Equal(t, "staff", claims["role"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
}

func TestGenerateAccessToken_NilEmployee(t *testing.T) {
	svc := NewJWTService("secret", "1h", "24h")

	token, _, err := svc.GenerateAccessToken("user-1", "admin@example.com", nil, user.RoleAdmin)
	require.NoError(t, err)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Nil(t, claims["employee_id"])
}

func TestParseRefreshToken(t *testing.T) {
	svc := NewJWTService("secret", "1h", "24h")

	refresh, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	userID, err := svc.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	other, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	assert.NotEqual(t, refresh, other)

	access, _, err := svc.GenerateAccessToken("user-1", "a@b.cd", nil, user.RoleStaff)
	require.NoError(t, err)
	_, err = svc.ParseRefreshToken(access)
	assert.Error(t, err, "access tokens are not refresh tokens")

	foreign := NewJWTService("another-secret", "1h", "24h")
	_, err = foreign.ParseRefreshToken(refresh)
	assert.Error(t, err)
}

func TestParseRefreshToken_Expired(t *testing.T) {
	svc := NewJWTService("secret", "1h", "-1h")

	refresh, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	_, err = svc.ParseRefreshToken(refresh)
	assert.Error(t, err)
}

func TestInvalidExpiration(t *testing.T) {
	svc := NewJWTService("secret", "soon", "later")
	_, _, err := svc.GenerateAccessToken("user-1", "a@b.cd", nil, user.RoleStaff)
	assert.Error(t, err)
	_, _, err = svc.GenerateRefreshToken("user-1")
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService("secret", "1h", "24h")
	assert.False(t, svc.IsTokenRevoked("abc"))
	svc.RevokeToken("abc")
	assert.True(t, svc.IsTokenRevoked("abc"))
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := NewJWTService("secret", "1h", "24h")

	cookie := svc.RefreshTokenCookie("tok", 1700000000)
	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)

	cleared := svc.ClearRefreshTokenCookie()
	assert.Equal(t, -1, cleared.MaxAge)
	assert.Empty(t, cleared.Value)
}

func TestIdentityFromContext(t *testing.T) {
	svc := NewJWTService("secret", "1h", "24h")
	employeeID := "emp-1"

	ctx, err := NewContext(context.Background(), svc.JWTAuth(), Identity{
		UserID:     "user-1",
		Email:      "mgr@example.com",
		EmployeeID: &employeeID,
		Role:       user.RoleManager,
	})
	require.NoError(t, err)

	id, err := IdentityFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id.UserID)
	assert.Equal(t, "mgr@example.com", id.Email)
	require.NotNil(t, id.EmployeeID)
	assert.Equal(t, "emp-1", *id.EmployeeID)
	assert.True(t, id.IsManager())

	_, err = IdentityFromContext(context.Background())
	assert.ErrorIs(t, err, ErrMissingIdentity)
}

func TestRevokeToken_PrunesExpiredEntries(t *testing.T) {
	svc := NewJWTService("secret", "1h", "24h").(*JWTService)
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	svc.RevokeToken("stale")
	assert.True(t, svc.IsTokenRevoked("stale"))

	now = now.Add(48 * time.Hour)
	svc.RevokeToken("fresh")

	assert.False(t, svc.IsTokenRevoked("stale"))
	assert.True(t, svc.IsTokenRevoked("fresh"))
}

func TestRevokeToken_UsesTokenExpiry(t *testing.T) {
	svc := NewJWTService("secret", "1h", "2h").(*JWTService)

	refresh, expiresAt, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	assert.Equal(t, expiresAt, svc.revokedUntil(refresh).Unix())
}
