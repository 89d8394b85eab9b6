package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/AlexandreFerreir/BD-Project/internal/shared/infrastructure/database"
)

const devSecret = "default-dev-secret"

// Config holds all configuration for the application
type Config struct {
	Env        string
	Server     ServerConfig
	Database   database.PostgresConfig
	JWT        JWTConfig
	Logging    LoggingConfig
	Migrations MigrationsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	AllowedOrigins string
	ShutdownGrace  time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string
	Pretty bool
}

// MigrationsConfig controls schema migrations on start
type MigrationsConfig struct {
	Path    string // empty uses the migrations embedded in the binary
	AutoRun bool
}

// LoadDotEnv loads variables from .env files into the process environment.
// Missing files are ignored; variables already set are never overridden.
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
		}
	}
}

// Load reads configuration from environment variables
func Load() Config {
	return Config{
		Env: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:4200"),
			ShutdownGrace:  parseDuration(getEnv("SHUTDOWN_GRACE", "20s"), 20*time.Second),
		},
		Database: database.PostgresConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			DBName:       getEnv("DB_NAME", "soundbase"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: parseInt(getEnv("DB_MAX_OPEN_CONNS", "25"), 25),
			MaxIdleConns: parseInt(getEnv("DB_MAX_IDLE_CONNS", "5"), 5),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", devSecret),
			Expiry: parseDuration(getEnv("JWT_EXPIRATION", "24h"), 24*time.Hour),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnv("LOG_PRETTY", "true") == "true",
		},
		Migrations: MigrationsConfig{
			Path:    os.Getenv("MIGRATIONS_PATH"),
			AutoRun: getEnv("AUTO_MIGRATE", "false") == "true",
		},
	}
}

// Validate checks settings that have no safe default
func (c Config) Validate() error {
	if c.Database.Host == "" {
		return errors.New("DB_HOST is required")
	}
	if c.Database.DBName == "" {
		return errors.New("DB_NAME is required")
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Env == "production" && c.JWT.Secret == devSecret {
		return errors.New("JWT_SECRET must be set in production")
	}
	return nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseDuration parses a duration string or returns a default value
func parseDuration(value string, defaultValue time.Duration) time.Duration {
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}

func parseInt(value string, defaultValue int) int {
	if n, err := strconv.Atoi(value); err == nil && n > 0 {
		return n
	}
	return defaultValue
}
