package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/config"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/auth"
	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/user"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/database"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/email"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	tx database.Transactor
	user.UserRepository
	auth.OTPRepository
	auth.RefreshTokenRepository
	jwt.Service
	email.EmailService
	otp config.OTPConfig
	now func() time.Time
}

func NewAuthService(
	tx database.Transactor,
	userRepository user.UserRepository,
	otpRepository auth.OTPRepository,
	refreshTokenRepository auth.RefreshTokenRepository,
	jwtService jwt.Service,
	emailService email.EmailService,
	otpConfig config.OTPConfig,
) auth.AuthService {
	return &AuthServiceImpl{
		tx:                     tx,
		UserRepository:         userRepository,
		OTPRepository:          otpRepository,
		RefreshTokenRepository: refreshTokenRepository,
		Service:                jwtService,
		EmailService:           emailService,
		otp:                    otpConfig,
		now:                    time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// generateOTPCode returns a uniformly random 6-digit code.
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// RequestOTP implements auth.AuthService.
func (a *AuthServiceImpl) RequestOTP(ctx context.Context, req auth.RequestOTPRequest) (auth.OTPResponse, error) {
	addr := normalizeEmail(req.Email)
	now := a.now()

	exists, err := a.UserRepository.ExistsByEmail(ctx, addr)
	if err != nil {
		return auth.OTPResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return auth.OTPResponse{}, auth.ErrEmailAlreadyExists
	}

	pending, err := a.OTPRepository.GetByEmail(ctx, addr)
	switch {
	case err == nil:
		if now.Sub(pending.LastSentAt) < a.otp.ResendInterval {
			return auth.OTPResponse{}, auth.ErrOTPResendTooSoon
		}
	case errors.Is(err, auth.ErrOTPNotFound):
	default:
		return auth.OTPResponse{}, fmt.Errorf("failed to get pending otp: %w", err)
	}

	code, err := generateOTPCode()
	if err != nil {
		return auth.OTPResponse{}, fmt.Errorf("failed to generate otp: %w", err)
	}
	codeHash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return auth.OTPResponse{}, fmt.Errorf("failed to hash otp: %w", err)
	}

	otp := auth.EmailOTP{
		Email:        addr,
		CodeHash:     string(codeHash),
		ExpiresAt:    now.Add(a.otp.TTL),
		AttemptsLeft: a.otp.MaxAttempts,
		LastSentAt:   now,
	}
	if err := a.OTPRepository.Upsert(ctx, otp); err != nil {
		return auth.OTPResponse{}, fmt.Errorf("failed to save otp: %w", err)
	}

	if err := a.EmailService.SendRegisterOTP(addr, code, a.otp.TTL); err != nil {
		return auth.OTPResponse{}, fmt.Errorf("failed to send otp email: %w", err)
	}
	slog.Info("registration otp sent", "email", addr)

	return auth.OTPResponse{
		Email:     addr,
		ExpiresAt: otp.ExpiresAt.UTC().Format(time.RFC3339),
	}, nil
}

// VerifyOTP implements auth.AuthService.
func (a *AuthServiceImpl) VerifyOTP(ctx context.Context, req auth.VerifyOTPRequest) (auth.MeResponse, error) {
	addr := normalizeEmail(req.Email)

	otp, err := a.OTPRepository.GetByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, auth.ErrOTPNotFound) {
			return auth.MeResponse{}, auth.ErrOTPNotFound
		}
		return auth.MeResponse{}, fmt.Errorf("failed to get otp: %w", err)
	}

	if otp.IsExpired(a.now()) {
		if err := a.OTPRepository.Delete(ctx, otp.ID); err != nil {
			return auth.MeResponse{}, fmt.Errorf("failed to delete expired otp: %w", err)
		}
		return auth.MeResponse{}, auth.ErrOTPExpired
	}
	if otp.AttemptsLeft <= 0 {
		return auth.MeResponse{}, auth.ErrOTPTooManyAttempts
	}

	if err := bcrypt.CompareHashAndPassword([]byte(otp.CodeHash), []byte(req.OTP)); err != nil {
		// The decrement is committed on its own so a failed guess always counts.
		if err := a.OTPRepository.DecrementAttempts(ctx, otp.ID); err != nil {
			return auth.MeResponse{}, fmt.Errorf("failed to record otp attempt: %w", err)
		}
		if otp.AttemptsLeft-1 <= 0 {
			return auth.MeResponse{}, auth.ErrOTPTooManyAttempts
		}
		return auth.MeResponse{}, auth.ErrOTPInvalid
	}

	var created user.User
	err = a.tx.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = a.createStaffUser(txCtx, addr, req.FullName, req.Password)
		if err != nil {
			return err
		}
		if err := a.OTPRepository.Delete(txCtx, otp.ID); err != nil {
			return fmt.Errorf("failed to delete used otp: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.MeResponse{}, err
	}

	return newMeResponse(created), nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.MeResponse, error) {
	created, err := a.createStaffUser(ctx, normalizeEmail(req.Email), req.FullName, req.Password)
	if err != nil {
		return auth.MeResponse{}, err
	}
	return newMeResponse(created), nil
}

func (a *AuthServiceImpl) createStaffUser(ctx context.Context, addr, fullName, password string) (user.User, error) {
	exists, err := a.UserRepository.ExistsByEmail(ctx, addr)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return user.User{}, auth.ErrEmailAlreadyExists
	}

	hashed, err := a.hashPassword(password)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := a.UserRepository.Create(ctx, user.User{
		Email:        addr,
		PasswordHash: &hashed,
		FullName:     strings.TrimSpace(fullName),
		Role:         user.RoleStaff,
	})
	if err != nil {
		if errors.Is(err, user.ErrUserEmailExists) {
			return user.User{}, auth.ErrEmailAlreadyExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	slog.Info("user registered", "user_id", created.ID)
	return created, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, normalizeEmail(loginReq.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, userData, sessionTrackReq, "")
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if a.Service.IsTokenRevoked(refreshToken) {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userID, err := a.Service.ParseRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	revoked, err := a.RefreshTokenRepository.IsRefreshTokenRevoked(ctx, refreshToken)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	tokens, err := a.issueTokens(ctx, userData, sessionTrackReq, refreshToken)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	a.Service.RevokeToken(refreshToken)
	return tokens, nil
}

// issueTokens signs a token pair and stores the refresh token, revoking previous when set.
func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData user.User, sessionTrackReq auth.SessionTrackingRequest, previous string) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse

	err := a.tx.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		if previous != "" {
			if err := a.RefreshTokenRepository.RevokeRefreshToken(txCtx, previous); err != nil {
				return fmt.Errorf("failed to revoke refresh token: %w", err)
			}
		}

		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.EmployeeID, userData.Role)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		err = a.RefreshTokenRepository.CreateRefreshToken(txCtx, userData.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, sessionTrackReq)
		if err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := a.RefreshTokenRepository.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	a.Service.RevokeToken(refreshToken)
	return nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context) (auth.MeResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return auth.MeResponse{}, err
	}

	userData, err := a.UserRepository.GetByID(ctx, identity.UserID)
	if err != nil {
		return auth.MeResponse{}, fmt.Errorf("failed to get user: %w", err)
	}
	return newMeResponse(userData), nil
}

func newMeResponse(u user.User) auth.MeResponse {
	return auth.MeResponse{
		UserID:     u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       string(u.Role),
		EmployeeID: u.EmployeeID,
	}
}
