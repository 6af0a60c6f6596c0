package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timeutil"
	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Business BusinessConfig
	Admin    AdminConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
	Storage     string
}

// BusinessConfig holds the company rules the attendance engine runs with.
type BusinessConfig struct {
	Timezone             string
	ShiftStart           string
	ShiftEnd             string
	BreakStart           string
	BreakEnd             string
	NightStart           string
	NightEnd             string
	StandardDailyMinutes int
	LeaveDaysInitial     int
	LeaveDaysCap         int
	AbsenceSweepInterval time.Duration
}

// AdminConfig seeds the first administrator on startup when Code is set.
type AdminConfig struct {
	Code     string
	Name     string
	Password string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded, using process environment", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "kintai"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		Storage:     getEnv("STORAGE_DRIVER", StoragePostgres),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "8h"),
	}

	// Business rules
	standardMinutes, err := getEnvInt("STANDARD_DAILY_MINUTES", 480)
	if err != nil {
		return nil, err
	}
	initialDays, err := getEnvInt("LEAVE_DAYS_INITIAL", 10)
	if err != nil {
		return nil, err
	}
	capDays, err := getEnvInt("LEAVE_DAYS_CAP", 40)
	if err != nil {
		return nil, err
	}
	sweep, err := time.ParseDuration(getEnv("ABSENCE_SWEEP_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid ABSENCE_SWEEP_INTERVAL: %w", err)
	}

	config.Business = BusinessConfig{
		Timezone:             getEnv("TIMEZONE", "Asia/Tokyo"),
		ShiftStart:           getEnv("SHIFT_START", "09:00"),
		ShiftEnd:             getEnv("SHIFT_END", "18:00"),
		BreakStart:           getEnv("BREAK_START", "12:00"),
		BreakEnd:             getEnv("BREAK_END", "13:00"),
		NightStart:           getEnv("NIGHT_START", "22:00"),
		NightEnd:             getEnv("NIGHT_END", "05:00"),
		StandardDailyMinutes: standardMinutes,
		LeaveDaysInitial:     initialDays,
		LeaveDaysCap:         capDays,
		AbsenceSweepInterval: sweep,
	}

	config.Admin = AdminConfig{
		Code:     getEnv("ADMIN_CODE", ""),
		Name:     getEnv("ADMIN_NAME", "Administrator"),
		Password: getEnv("ADMIN_PASSWORD", ""),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	switch c.App.Storage {
	case StoragePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q", StoragePostgres, StorageMemory)
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.Schedule(); err != nil {
		return err
	}
	if c.Business.AbsenceSweepInterval <= 0 {
		return fmt.Errorf("ABSENCE_SWEEP_INTERVAL must be positive")
	}
	if c.Admin.Code != "" && c.Admin.Password == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required when ADMIN_CODE is set")
	}
	if c.Business.LeaveDaysInitial < 0 || c.Business.LeaveDaysInitial > c.Business.LeaveDaysCap {
		return fmt.Errorf("LEAVE_DAYS_INITIAL must be between 0 and LEAVE_DAYS_CAP")
	}
	return nil
}

// Location returns the business timezone all dates are computed in.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Business.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Business.Timezone, err)
	}
	return loc, nil
}

// Schedule parses the configured shift into a validated ShiftSchedule.
func (c *Config) Schedule() (schedule.ShiftSchedule, error) {
	b := c.Business
	var s schedule.ShiftSchedule

	var errs []error
	parse := func(key, value string, dst *timeutil.TimeOfDay) {
		tod, err := timeutil.ParseTimeOfDay(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*dst = tod
	}
	parse("SHIFT_START", b.ShiftStart, &s.StandardStart)
	parse("SHIFT_END", b.ShiftEnd, &s.StandardEnd)
	parse("BREAK_START", b.BreakStart, &s.BreakStart)
	parse("BREAK_END", b.BreakEnd, &s.BreakEnd)
	parse("NIGHT_START", b.NightStart, &s.NightStart)
	parse("NIGHT_END", b.NightEnd, &s.NightEnd)
	if err := errors.Join(errs...); err != nil {
		return schedule.ShiftSchedule{}, err
	}

	s.StandardDailyMinutes = b.StandardDailyMinutes
	if err := s.Validate(); err != nil {
		return schedule.ShiftSchedule{}, fmt.Errorf("invalid shift schedule: %w", err)
	}
	return s, nil
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

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
