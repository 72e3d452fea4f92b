package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Storage   StorageConfig
	SMTP      SMTPConfig
	Payroll   PayrollConfig
	FaceMatch FaceMatchConfig
	OTP       OTPConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	Timezone           string
	CORSAllowedOrigins []string
}

type StorageConfig struct {
	Type     string
	BasePath string
	BaseURL  string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// PayrollConfig holds the fallbacks used when an employee has no salary settings.
type PayrollConfig struct {
	DefaultBaseSalary    decimal.Decimal
	DefaultAllowance     decimal.Decimal
	DefaultOtRate        decimal.Decimal
	DefaultHolidayRate   decimal.Decimal
	LatePenaltyPerMinute decimal.Decimal
}

// FaceMatchConfig holds the similarity thresholds of the two face check-in flows.
type FaceMatchConfig struct {
	AttendanceThreshold     float64
	FaceAttendanceThreshold float64
}

type OTPConfig struct {
	TTL            time.Duration
	ResendInterval time.Duration
	MaxAttempts    int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment.
func FromEnv() (*Config, error) {
	config := &Config{}
	var err error

	// Database configuration
	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	maxConns, err := getEnvInt("DB_MAX_CONNS", 25)
	if err != nil {
		return nil, err
	}
	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, err
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hris-timekeeping"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := getEnvInt("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Timezone:           getEnv("APP_TIMEZONE", "UTC"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "local"),
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
	}

	smtpPort, err := getEnvInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "no-reply@hris.local"),
		FromName: getEnv("SMTP_FROM_NAME", "HRIS Timekeeping"),
	}

	// Payroll defaults
	if config.Payroll.DefaultBaseSalary, err = getEnvDecimal("PAYROLL_DEFAULT_BASE_SALARY", "15000000"); err != nil {
		return nil, err
	}
	if config.Payroll.DefaultAllowance, err = getEnvDecimal("PAYROLL_DEFAULT_ALLOWANCE", "1500000"); err != nil {
		return nil, err
	}
	if config.Payroll.DefaultOtRate, err = getEnvDecimal("PAYROLL_DEFAULT_OT_RATE", "1.5"); err != nil {
		return nil, err
	}
	if config.Payroll.DefaultHolidayRate, err = getEnvDecimal("PAYROLL_DEFAULT_HOLIDAY_RATE", "2.0"); err != nil {
		return nil, err
	}
	if config.Payroll.LatePenaltyPerMinute, err = getEnvDecimal("PAYROLL_LATE_PENALTY_PER_MINUTE", "5000"); err != nil {
		return nil, err
	}

	// Face match thresholds
	if config.FaceMatch.AttendanceThreshold, err = getEnvFloat("FACE_MATCH_THRESHOLD_ATTENDANCE", 0.60); err != nil {
		return nil, err
	}
	if config.FaceMatch.FaceAttendanceThreshold, err = getEnvFloat("FACE_MATCH_THRESHOLD_FACE_ATTENDANCE", 0.75); err != nil {
		return nil, err
	}

	// OTP
	if config.OTP.TTL, err = getEnvDuration("OTP_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if config.OTP.ResendInterval, err = getEnvDuration("OTP_RESEND_INTERVAL", 60*time.Second); err != nil {
		return nil, err
	}
	if config.OTP.MaxAttempts, err = getEnvInt("OTP_MAX_ATTEMPTS", 5); err != nil {
		return nil, err
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := time.ParseDuration(c.JWT.RefreshExpiration); err != nil {
		return fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_TIME: %w", err)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	if c.Storage.Type != "local" {
		return fmt.Errorf("unsupported STORAGE_TYPE %q", c.Storage.Type)
	}

	one := decimal.NewFromInt(1)
	if c.Payroll.DefaultBaseSalary.IsNegative() {
		return fmt.Errorf("PAYROLL_DEFAULT_BASE_SALARY must not be negative")
	}
	if c.Payroll.DefaultAllowance.IsNegative() {
		return fmt.Errorf("PAYROLL_DEFAULT_ALLOWANCE must not be negative")
	}
	if c.Payroll.LatePenaltyPerMinute.IsNegative() {
		return fmt.Errorf("PAYROLL_LATE_PENALTY_PER_MINUTE must not be negative")
	}
	if c.Payroll.DefaultOtRate.LessThan(one) {
		return fmt.Errorf("PAYROLL_DEFAULT_OT_RATE must be at least 1")
	}
	if c.Payroll.DefaultHolidayRate.LessThan(one) {
		return fmt.Errorf("PAYROLL_DEFAULT_HOLIDAY_RATE must be at least 1")
	}

	for key, th := range map[string]float64{
		"FACE_MATCH_THRESHOLD_ATTENDANCE":      c.FaceMatch.AttendanceThreshold,
		"FACE_MATCH_THRESHOLD_FACE_ATTENDANCE": c.FaceMatch.FaceAttendanceThreshold,
	} {
		if th <= 0 || th > 1 {
			return fmt.Errorf("%s must be in (0, 1], got %v", key, th)
		}
	}

	if c.OTP.MaxAttempts <= 0 {
		return fmt.Errorf("OTP_MAX_ATTEMPTS must be positive")
	}
	return nil
}

// Location returns the timezone attendance days are anchored to.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		slog.Warn("invalid timezone, falling back to UTC", "timezone", c.App.Timezone, "error", err)
		return time.UTC
	}
	return loc
}

// SlogLevel maps LOG_LEVEL to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getEnvDecimal(key, fallback string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(getEnv(key, fallback))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
