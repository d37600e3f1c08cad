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
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	Kiosk        KioskConfig
	Notification NotificationConfig
	Bootstrap    BootstrapConfig
}

// DatabaseConfig holds the PostgreSQL settings. URL wins over the
// individual fields. With neither set the server runs on in-memory storage.
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string
}

type KioskConfig struct {
	ErrorDisplay   time.Duration
	SuccessDisplay time.Duration
	IdleTTL        time.Duration
	Timezone       string
}

type NotificationConfig struct {
	Workers   int
	QueueSize int
}

// BootstrapConfig seeds the first administrator when both fields are set.
type BootstrapConfig struct {
	AdminEmail    string
	AdminPassword string
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

	config.Database = DatabaseConfig{
		URL:      getEnv("DATABASE_URL", ""),
		Host:     getEnv("DB_HOST", ""),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "asistencia"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}

	// JWT configuration
	accessExpiration, err := getEnvDuration("JWT_ACCESS_EXPIRATION_TIME", "1h")
	if err != nil {
		return nil, err
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: accessExpiration,
	}

	// Kiosk configuration
	if config.Kiosk.ErrorDisplay, err = getEnvDuration("KIOSK_ERROR_DISPLAY", "1.5s"); err != nil {
		return nil, err
	}
	if config.Kiosk.SuccessDisplay, err = getEnvDuration("KIOSK_SUCCESS_DISPLAY", "5s"); err != nil {
		return nil, err
	}
	if config.Kiosk.IdleTTL, err = getEnvDuration("KIOSK_SESSION_IDLE_TTL", "10m"); err != nil {
		return nil, err
	}
	config.Kiosk.Timezone = getEnv("KIOSK_TIMEZONE", "America/Guayaquil")

	// Notification workers
	workers, err := strconv.Atoi(getEnv("NOTIFICATION_WORKERS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFICATION_WORKERS: %w", err)
	}
	queueSize, err := strconv.Atoi(getEnv("NOTIFICATION_QUEUE_SIZE", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFICATION_QUEUE_SIZE: %w", err)
	}
	config.Notification = NotificationConfig{Workers: workers, QueueSize: queueSize}

	config.Bootstrap = BootstrapConfig{
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
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
	if c.JWT.AccessExpiration <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME must be positive")
	}
	if c.Database.URL == "" && c.Database.Host != "" && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required when DB_HOST is set")
	}
	if c.Kiosk.ErrorDisplay <= 0 || c.Kiosk.SuccessDisplay <= 0 || c.Kiosk.IdleTTL <= 0 {
		return fmt.Errorf("kiosk durations must be positive")
	}
	if _, err := time.LoadLocation(c.Kiosk.Timezone); err != nil {
		return fmt.Errorf("invalid KIOSK_TIMEZONE: %w", err)
	}
	if c.Notification.Workers < 1 || c.Notification.QueueSize < 1 {
		return fmt.Errorf("NOTIFICATION_WORKERS and NOTIFICATION_QUEUE_SIZE must be positive")
	}
	if (c.Bootstrap.AdminEmail == "") != (c.Bootstrap.AdminPassword == "") {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	return nil
}

// UsesPostgres reports whether a database connection is configured.
func (c *Config) UsesPostgres() bool {
	return c.Database.URL != "" || c.Database.Host != ""
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
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
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// KioskLocation resolves the kiosk timezone. Validate has already checked it.
func (c *Config) KioskLocation() *time.Location {
	loc, err := time.LoadLocation(c.Kiosk.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}

func getEnvDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
