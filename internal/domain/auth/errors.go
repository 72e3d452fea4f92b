package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrEmailAlreadyExists  = errors.New("email already registered")

	ErrOTPNotFound        = errors.New("no pending verification code for this email")
	ErrOTPExpired         = errors.New("verification code has expired")
	ErrOTPInvalid         = errors.New("verification code is incorrect")
	ErrOTPTooManyAttempts = errors.New("too many incorrect attempts, request a new code")
	ErrOTPResendTooSoon   = errors.New("a code was sent recently, try again later")
)
