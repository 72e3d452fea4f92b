package auth

import (
	"context"
)

type AuthService interface {
	RequestOTP(ctx context.Context, req RequestOTPRequest) (OTPResponse, error)
	VerifyOTP(ctx context.Context, req VerifyOTPRequest) (MeResponse, error)
	Register(ctx context.Context, req RegisterRequest) (MeResponse, error)
	Login(ctx context.Context, req LoginRequest, sessionReq SessionTrackingRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string, sessionReq SessionTrackingRequest) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context) (MeResponse, error)
}
