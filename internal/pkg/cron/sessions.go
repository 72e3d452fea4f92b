package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/auth"
)

// SessionJobs prunes expired verification codes and refresh tokens.
type SessionJobs struct {
	otpRepo     auth.OTPRepository
	refreshRepo auth.RefreshTokenRepository
	now         func() time.Time
}

func NewSessionJobs(otpRepo auth.OTPRepository, refreshRepo auth.RefreshTokenRepository) *SessionJobs {
	return &SessionJobs{
		otpRepo:     otpRepo,
		refreshRepo: refreshRepo,
		now:         time.Now,
	}
}

func (j *SessionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("purge_expired_otps", 15*time.Minute, j.PurgeExpiredOTPs)
	scheduler.AddJob("purge_expired_refresh_tokens", time.Hour, j.PurgeExpiredRefreshTokens)
}

func (j *SessionJobs) PurgeExpiredOTPs(ctx context.Context) error {
	n, err := j.otpRepo.DeleteExpired(ctx, j.now())
	if err != nil {
		return fmt.Errorf("failed to purge expired otps: %w", err)
	}
	if n > 0 {
		slog.Info("Cron: purged expired otps", "count", n)
	}
	return nil
}

// PurgeExpiredRefreshTokens drops tokens that expired more than a day ago.
func (j *SessionJobs) PurgeExpiredRefreshTokens(ctx context.Context) error {
	n, err := j.refreshRepo.DeleteExpired(ctx, j.now().Add(-24*time.Hour))
	if err != nil {
		return fmt.Errorf("failed to purge expired refresh tokens: %w", err)
	}
	if n > 0 {
		slog.Info("Cron: purged expired refresh tokens", "count", n)
	}
	return nil
}
