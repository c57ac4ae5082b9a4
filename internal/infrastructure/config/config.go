package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/fitdesk/retention/internal/domain"
)

// Config holds all configuration for the application.
// loaded from environment variables, no magic defaults for required fields.
type Config struct {
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Retention RetentionConfig
	Alerts    AlertConfig
}

// DatabaseConfig contains database connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Schema   string
}

// RedisConfig contains redis connection parameters.
// redis is optional; an empty Addr disables the outreach ranking cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a redis instance was configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// AuthConfig contains authentication configuration.
type AuthConfig struct {
	// JWTSecret is the shared secret for staff token validation
	JWTSecret string
}

// RetentionConfig carries the classification thresholds. every field has
// a default, so deployments only override what they need.
type RetentionConfig struct {
	FallbackFee            float64
	SoonWindowDays         int
	NewMemberWindowDays    int
	DueSoonWindowDays      int
	OverdueThresholdDays   int
	RecalculateIntervalSec int
}

// Thresholds maps the config onto the domain threshold set.
func (c RetentionConfig) Thresholds() domain.RetentionThresholds {
	return domain.RetentionThresholds{
		FallbackFee:          c.FallbackFee,
		SoonWindowDays:       c.SoonWindowDays,
		NewMemberWindowDays:  c.NewMemberWindowDays,
		DueSoonWindowDays:    c.DueSoonWindowDays,
		OverdueThresholdDays: c.OverdueThresholdDays,
	}
}

// AlertConfig carries the revenue-at-risk alerting policy.
type AlertConfig struct {
	MinRevenueAtRisk float64
	MinMemberCount   int
}

// Thresholds maps onto the domain alert policy.
func (c AlertConfig) Thresholds() domain.RiskAlertThresholds {
	return domain.RiskAlertThresholds{
		MinRevenueAtRisk: c.MinRevenueAtRisk,
		MinMemberCount:   c.MinMemberCount,
	}
}

// ConnectionString returns the postgres connection string.
func (c DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&search_path=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Name,
		c.SSLMode,
		c.Schema,
	)
}

// Load reads configuration from environment variables.
// loads .env file if present, but doesn't fail if it's missing.
func Load() (*Config, error) {
	// try to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	dbConfig, err := loadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("database config: %w", err)
	}

	authConfig, err := loadAuthConfig()
	if err != nil {
		return nil, fmt.Errorf("auth config: %w", err)
	}

	retentionConfig, err := loadRetentionConfig()
	if err != nil {
		return nil, fmt.Errorf("retention config: %w", err)
	}

	alertConfig, err := loadAlertConfig()
	if err != nil {
		return nil, fmt.Errorf("alert config: %w", err)
	}

	return &Config{
		Database:  dbConfig,
		Redis:     loadRedisConfig(),
		Auth:      authConfig,
		Retention: retentionConfig,
		Alerts:    alertConfig,
	}, nil
}

func loadAuthConfig() (AuthConfig, error) {
	config := AuthConfig{
		JWTSecret: os.Getenv("JWT_SECRET"),
	}

	if config.JWTSecret == "" {
		return config, errors.New("JWT_SECRET is required")
	}

	return config, nil
}

func loadDatabaseConfig() (DatabaseConfig, error) {
	config := DatabaseConfig{
		Host:     getEnvOrDefault("DB_HOST", "localhost"),
		Port:     getEnvOrDefault("DB_PORT", "5432"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		SSLMode:  getEnvOrDefault("DB_SSL_MODE", "require"),
		Schema:   getEnvOrDefault("DB_SCHEMA", "retention"),
	}

	// required fields must be set
	if config.User == "" {
		return config, errors.New("DB_USER is required")
	}
	if config.Password == "" {
		return config, errors.New("DB_PASSWORD is required")
	}
	if config.Name == "" {
		return config, errors.New("DB_NAME is required")
	}

	return config, nil
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       getEnvIntOrDefault("REDIS_DB", 0),
	}
}

func loadRetentionConfig() (RetentionConfig, error) {
	config := RetentionConfig{
		FallbackFee:            getEnvFloatOrDefault("RETENTION_FALLBACK_FEE", 1000),
		SoonWindowDays:         getEnvIntOrDefault("RETENTION_SOON_WINDOW_DAYS", 5),
		NewMemberWindowDays:    getEnvIntOrDefault("RETENTION_NEW_MEMBER_WINDOW_DAYS", 30),
		DueSoonWindowDays:      getEnvIntOrDefault("RETENTION_DUE_SOON_WINDOW_DAYS", 3),
		OverdueThresholdDays:   getEnvIntOrDefault("RETENTION_OVERDUE_THRESHOLD_DAYS", 2),
		RecalculateIntervalSec: getEnvIntOrDefault("RETENTION_RECALC_INTERVAL_SEC", 300),
	}

	if config.FallbackFee < 0 {
		return config, errors.New("RETENTION_FALLBACK_FEE cannot be negative")
	}
	if config.SoonWindowDays < 0 || config.NewMemberWindowDays < 0 ||
		config.DueSoonWindowDays < 0 || config.OverdueThresholdDays < 0 {
		return config, errors.New("retention window days cannot be negative")
	}
	if config.RecalculateIntervalSec < 1 {
		return config, errors.New("RETENTION_RECALC_INTERVAL_SEC must be at least 1")
	}

	return config, nil
}

func loadAlertConfig() (AlertConfig, error) {
	defaults := domain.DefaultRiskAlertThresholds()
	config := AlertConfig{
		MinRevenueAtRisk: getEnvFloatOrDefault("ALERT_MIN_REVENUE_AT_RISK", defaults.MinRevenueAtRisk),
		MinMemberCount:   getEnvIntOrDefault("ALERT_MIN_MEMBER_COUNT", defaults.MinMemberCount),
	}

	if config.MinRevenueAtRisk < 0 {
		return config, errors.New("ALERT_MIN_REVENUE_AT_RISK cannot be negative")
	}
	if config.MinMemberCount < 1 {
		return config, errors.New("ALERT_MIN_MEMBER_COUNT must be at least 1")
	}

	return config, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}
