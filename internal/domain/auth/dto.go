package auth

import "github.com/cmlabs-hris/hris-timekeeping/internal/pkg/validator"

func validateEmail(errs validator.ValidationErrors, email string) validator.ValidationErrors {
	if validator.IsEmpty(email) {
		return append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	}
	if len(email) > 254 {
		return append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must not exceed 254 characters",
		})
	}
	if !validator.IsValidEmail(email) {
		return append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address, e.g. user@example.com",
		})
	}
	return errs
}

func validatePassword(errs validator.ValidationErrors, password string) validator.ValidationErrors {
	if validator.IsEmpty(password) {
		return append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(password) < 8 {
		return append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters long",
		})
	} else if len(password) > 72 {
		return append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must not exceed 72 characters",
		})
	}
	return errs
}

func validateFullName(errs validator.ValidationErrors, fullName string) validator.ValidationErrors {
	if validator.IsEmpty(fullName) {
		return append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}
	if len(fullName) > 255 {
		return append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not exceed 255 characters",
		})
	}
	return errs
}

type RequestOTPRequest struct {
	Email string `json:"email"`
}

func (r *RequestOTPRequest) Validate() error {
	errs := validateEmail(nil, r.Email)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type VerifyOTPRequest struct {
	Email    string `json:"email"`
	OTP      string `json:"otp"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

func (r *VerifyOTPRequest) Validate() error {
	errs := validateEmail(nil, r.Email)

	if !validator.IsValidOTPCode(r.OTP) {
		errs = append(errs, validator.ValidationError{
			Field:   "otp",
			Message: "otp must be a 6-digit code",
		})
	}

	errs = validateFullName(errs, r.FullName)
	errs = validatePassword(errs, r.Password)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RegisterRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Validate() error {
	errs := validateEmail(nil, r.Email)
	errs = validateFullName(errs, r.FullName)
	errs = validatePassword(errs, r.Password)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	errs := validateEmail(nil, r.Email)

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SessionTrackingRequest struct {
	UserAgent string
	IPAddress string
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"-"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
}

type OTPResponse struct {
	Email     string `json:"email"`
	ExpiresAt string `json:"expires_at"`
}

type MeResponse struct {
	UserID     string  `json:"user_id"`
	Email      string  `json:"email"`
	FullName   string  `json:"full_name"`
	Role       string  `json:"role"`
	EmployeeID *string `json:"employee_id,omitempty"`
}
