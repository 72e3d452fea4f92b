package auth

import "time"

// EmailOTP is a pending registration code. At most one exists per email.
type EmailOTP struct {
	ID           string
	Email        string
	CodeHash     string
	ExpiresAt    time.Time
	AttemptsLeft int
	LastSentAt   time.Time
	CreatedAt    time.Time
}

func (o EmailOTP) IsExpired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}
