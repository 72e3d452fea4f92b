package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/auth"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type otpRepositoryImpl struct {
	db *database.DB
}

func NewOTPRepository(db *database.DB) auth.OTPRepository {
	return &otpRepositoryImpl{db: db}
}

// Upsert implements auth.OTPRepository.
func (r *otpRepositoryImpl) Upsert(ctx context.Context, otp auth.EmailOTP) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO email_otps (id, email, code_hash, expires_at, attempts_left, last_sent_at, created_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, NOW())
		ON CONFLICT (email) DO UPDATE
		SET code_hash = EXCLUDED.code_hash,
			expires_at = EXCLUDED.expires_at,
			attempts_left = EXCLUDED.attempts_left,
			last_sent_at = EXCLUDED.last_sent_at
	`
	_, err := q.Exec(ctx, query, otp.Email, otp.CodeHash, otp.ExpiresAt, otp.AttemptsLeft, otp.LastSentAt)
	if err != nil {
		return fmt.Errorf("failed to upsert otp: %w", err)
	}
	return nil
}

// GetByEmail implements auth.OTPRepository.
func (r *otpRepositoryImpl) GetByEmail(ctx context.Context, email string) (auth.EmailOTP, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, email, code_hash, expires_at, attempts_left, last_sent_at, created_at
		FROM email_otps
		WHERE email = $1
	`

	var otp auth.EmailOTP
	err := q.QueryRow(ctx, query, email).Scan(
		&otp.ID,
		&otp.Email,
		&otp.CodeHash,
		&otp.ExpiresAt,
		&otp.AttemptsLeft,
		&otp.LastSentAt,
		&otp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.EmailOTP{}, auth.ErrOTPNotFound
		}
		return auth.EmailOTP{}, fmt.Errorf("failed to get otp: %w", err)
	}
	return otp, nil
}

// DecrementAttempts implements auth.OTPRepository.
func (r *otpRepositoryImpl) DecrementAttempts(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE email_otps SET attempts_left = GREATEST(attempts_left - 1, 0) WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to decrement otp attempts: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return auth.ErrOTPNotFound
	}
	return nil
}

// Delete implements auth.OTPRepository.
func (r *otpRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM email_otps WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete otp: %w", err)
	}
	return nil
}

// DeleteExpired implements auth.OTPRepository.
func (r *otpRepositoryImpl) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM email_otps WHERE expires_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired otps: %w", err)
	}
	return tag.RowsAffected(), nil
}
