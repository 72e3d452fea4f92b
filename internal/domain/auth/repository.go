package auth

import (
	"context"
	"time"
)

type OTPRepository interface {
	// Upsert replaces any pending code for the email.
	Upsert(ctx context.Context, otp EmailOTP) error
	GetByEmail(ctx context.Context, email string) (EmailOTP, error)
	DecrementAttempts(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	// DeleteExpired removes codes that expired before the given time.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, sessionReq SessionTrackingRequest) error
	IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error)
	RevokeRefreshToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
