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
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Auth     AuthConfig
	Payroll  PayrollConfig
	Cron     CronConfig
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
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// AuthConfig holds the payroll administrator credentials.
type AuthConfig struct {
	AdminUsername     string
	AdminPasswordHash string
}

// PayrollConfig holds payroll policy values.
type PayrollConfig struct {
	ShiftStart                time.Duration
	ShiftEnd                  time.Duration
	WorkingDaysPerMonth       decimal.Decimal
	HoursPerDay               decimal.Decimal
	OvertimeMultiplier        decimal.Decimal
	TardinessDeductionEnabled bool
	BatchConcurrency          int
	PayslipDir                string
}

type CronConfig struct {
	Enabled         bool
	PayrollInterval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "aoopdatabase_payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "8h"),
	}

	config.Auth = AuthConfig{
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}

	config.Payroll, err = loadPayroll()
	if err != nil {
		return nil, err
	}

	cronEnabled, err := strconv.ParseBool(getEnv("CRON_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid CRON_ENABLED: %w", err)
	}
	payrollInterval, err := time.ParseDuration(getEnv("CRON_PAYROLL_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid CRON_PAYROLL_INTERVAL: %w", err)
	}
	config.Cron = CronConfig{
		Enabled:         cronEnabled,
		PayrollInterval: payrollInterval,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadPayroll() (PayrollConfig, error) {
	shiftStart, err := ParseClock(getEnv("PAYROLL_SHIFT_START", "08:00"))
	if err != nil {
		return PayrollConfig{}, fmt.Errorf("invalid PAYROLL_SHIFT_START: %w", err)
	}
	shiftEnd, err := ParseClock(getEnv("PAYROLL_SHIFT_END", "17:00"))
	if err != nil {
		return PayrollConfig{}, fmt.Errorf("invalid PAYROLL_SHIFT_END: %w", err)
	}
	workingDays, err := decimal.NewFromString(getEnv("PAYROLL_WORKING_DAYS_PER_MONTH", "22"))
	if err != nil {
		return PayrollConfig{}, fmt.Errorf("invalid PAYROLL_WORKING_DAYS_PER_MONTH: %w", err)
	}
	hoursPerDay, err := decimal.NewFromString(getEnv("PAYROLL_HOURS_PER_DAY", "8"))
	if err != nil {
		return PayrollConfig{}, fmt.Errorf("invalid PAYROLL_HOURS_PER_DAY: %w", err)
	}
	multiplier, err := decimal.NewFromString(getEnv("PAYROLL_OVERTIME_MULTIPLIER", "1.25"))
	if err != nil {
		return PayrollConfig{}, fmt.Errorf("invalid PAYROLL_OVERTIME_MULTIPLIER: %w", err)
	}
	tardiness, err := strconv.ParseBool(getEnv("PAYROLL_TARDINESS_DEDUCTION", "true"))
	if err != nil {
		return PayrollConfig{}, fmt.Errorf("invalid PAYROLL_TARDINESS_DEDUCTION: %w", err)
	}
	concurrency, err := strconv.Atoi(getEnv("PAYROLL_BATCH_CONCURRENCY", "4"))
	if err != nil {
		return PayrollConfig{}, fmt.Errorf("invalid PAYROLL_BATCH_CONCURRENCY: %w", err)
	}

	return PayrollConfig{
		ShiftStart:                shiftStart,
		ShiftEnd:                  shiftEnd,
		WorkingDaysPerMonth:       workingDays,
		HoursPerDay:               hoursPerDay,
		OvertimeMultiplier:        multiplier,
		TardinessDeductionEnabled: tardiness,
		BatchConcurrency:          concurrency,
		PayslipDir:                getEnv("PAYROLL_PAYSLIP_DIR", "storage/payslips"),
	}, nil
}

// DefaultPayroll returns the standard policy: 08:00-17:00 shift, 22 working days,
// 8 hours per day, 125% overtime.
func DefaultPayroll() PayrollConfig {
	return PayrollConfig{
		ShiftStart:                8 * time.Hour,
		ShiftEnd:                  17 * time.Hour,
		WorkingDaysPerMonth:       decimal.NewFromInt(22),
		HoursPerDay:               decimal.NewFromInt(8),
		OvertimeMultiplier:        decimal.RequireFromString("1.25"),
		TardinessDeductionEnabled: true,
		BatchConcurrency:          4,
		PayslipDir:                "storage/payslips",
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Auth.AdminPasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH is required")
	}
	return c.Payroll.Validate()
}

// Validate checks the payroll policy for values the calculator cannot divide by.
func (p PayrollConfig) Validate() error {
	if p.ShiftEnd <= p.ShiftStart {
		return fmt.Errorf("PAYROLL_SHIFT_END must be after PAYROLL_SHIFT_START")
	}
	if !p.WorkingDaysPerMonth.IsPositive() {
		return fmt.Errorf("PAYROLL_WORKING_DAYS_PER_MONTH must be positive")
	}
	if !p.HoursPerDay.IsPositive() {
		return fmt.Errorf("PAYROLL_HOURS_PER_DAY must be positive")
	}
	if p.OvertimeMultiplier.IsNegative() {
		return fmt.Errorf("PAYROLL_OVERTIME_MULTIPLIER cannot be negative")
	}
	if p.BatchConcurrency <= 0 {
		return fmt.Errorf("PAYROLL_BATCH_CONCURRENCY must be positive")
	}
	return nil
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

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseClock parses "HH:MM" into an offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key, fallback string) []string {
	value := getEnv(key, fallback)
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}
