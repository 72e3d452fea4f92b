package jwt

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	refreshCookieName = "refresh_token"
	refreshCookiePath = "/api/v1/auth"
)

type Service interface {
	GenerateAccessToken(userID string, email string, employeeID *string, role user.Role) (token string, expiresAt int64, err error)
	GenerateRefreshToken(userID string) (token string, expiresAt int64, err error)
	ParseRefreshToken(tokenString string) (userID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
	ClearRefreshTokenCookie() *http.Cookie
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
}

// JWTService signs HS256 tokens and keeps an in-process denylist of
// refresh tokens that were rotated or logged out.
type JWTService struct {
	tokenAuth     *jwtauth.JWTAuth
	accessTTL     string
	refreshTTL    string
	mu            sync.RWMutex
	revoked       map[string]time.Time
	revokedPruned time.Time
	now           func() time.Time
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, refreshTokenExpirationTime string) Service {
	return &JWTService{
		tokenAuth:  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		accessTTL:  accessTokenExpirationTime,
		refreshTTL: refreshTokenExpirationTime,
		revoked:    make(map[string]time.Time),
		now:        time.Now,
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// sign stamps exp from ttl onto claims and encodes them.
func (j *JWTService) sign(ttl string, claims map[string]interface{}) (string, int64, error) {
	d, err := time.ParseDuration(ttl)
	if err != nil {
		return "", 0, fmt.Errorf("invalid token lifetime %q: %w", ttl, err)
	}
	expiresAt := j.now().Add(d).Unix()
	claims["exp"] = expiresAt

	_, signed, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (j *JWTService) GenerateAccessToken(userID string, email string, employeeID *string, role user.Role) (string, int64, error) {
	var employee interface{}
	if employeeID != nil {
		employee = *employeeID
	}
	return j.sign(j.accessTTL, map[string]interface{}{
		"type":        TokenTypeAccess,
		"user_id":     userID,
		"email":       email,
		"employee_id": employee,
		"role":        string(role),
	})
}

func (j *JWTService) GenerateRefreshToken(userID string) (string, int64, error) {
	return j.sign(j.refreshTTL, map[string]interface{}{
		"type":    TokenTypeRefresh,
		"user_id": userID,
		"jti":     uuid.NewString(),
	})
}

// ParseRefreshToken verifies signature, expiry and token type and returns the user id.
func (j *JWTService) ParseRefreshToken(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	if kind, _ := token.Get("type"); kind != TokenTypeRefresh {
		return "", jwt.ErrInvalidJWT()
	}
	raw, _ := token.Get("user_id")
	userID, _ := raw.(string)
	if userID == "" {
		return "", jwt.ErrInvalidJWT()
	}
	return userID, nil
}

func refreshCookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     refreshCookieName,
		Value:    value,
		Path:     refreshCookiePath,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	c := refreshCookie(token)
	c.Expires = time.Unix(expiresAt, 0)
	return c
}

func (j *JWTService) ClearRefreshTokenCookie() *http.Cookie {
	c := refreshCookie("")
	c.MaxAge = -1
	return c
}

// RevokeToken denylists token until it would have expired anyway. Tokens
// that cannot be parsed are kept for one refresh lifetime.
func (j *JWTService) RevokeToken(token string) {
	until := j.revokedUntil(token)

	j.mu.Lock()
	defer j.mu.Unlock()
	j.revoked[token] = until

	now := j.now()
	if now.Sub(j.revokedPruned) < time.Hour {
		return
	}
	for t, exp := range j.revoked {
		if now.After(exp) {
			delete(j.revoked, t)
		}
	}
	j.revokedPruned = now
}

func (j *JWTService) revokedUntil(token string) time.Time {
	if parsed, err := j.tokenAuth.Decode(token); err == nil && !parsed.Expiration().IsZero() {
		return parsed.Expiration()
	}
	ttl, err := time.ParseDuration(j.refreshTTL)
	if err != nil || ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return j.now().Add(ttl)
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revoked[token]
	return revoked
}
