// Package config provides configuration management for the guide.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backend names accepted by STORAGE_BACKEND
const (
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	Storage StorageConfig
	Persist PersistConfig
	Catalog CatalogConfig
	Logging LoggingConfig
}

// StorageConfig selects and configures the key-value backend
type StorageConfig struct {
	Backend         string
	KeyPrefix       string
	ConnectAttempts int
	SQLite          SQLiteConfig
	Redis           RedisConfig
	Postgres        PostgresConfig

	// FallbackToMemory keeps the app usable when the backend is unreachable
	FallbackToMemory bool
}

// SQLiteConfig holds the on-device database location
type SQLiteConfig struct {
	Path string
}

// PostgresConfig holds Postgres configuration
type PostgresConfig struct {
	Host           string
	Port           string
	Database       string
	User           string
	Password       string
	MaxConnections int
}

// URL returns the postgres:// URL used by migrations
func (c PostgresConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.Database,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host           string
	Port           string
	Password       string
	DB             int
	MaxConnections int
}

// PersistConfig tunes the background persistence worker
type PersistConfig struct {
	MinInterval        time.Duration // minimum spacing between two writes
	WriteTimeout       time.Duration
	BreakerMaxFailures int
	BreakerCooldown    time.Duration
}

// CatalogConfig points at an optional catalog file replacing the built-in one
type CatalogConfig struct {
	Path string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadConfig loads configuration from .env file and environment variables
func LoadConfig() (*Config, error) {
	// .env is optional, environment variables can be set directly
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	config := &Config{
		Storage: StorageConfig{
			Backend:          strings.ToLower(getEnv("STORAGE_BACKEND", BackendSQLite)),
			KeyPrefix:        getEnv("STORAGE_KEY_PREFIX", "vibe-guide:"),
			ConnectAttempts:  getEnvAsInt("STORAGE_CONNECT_ATTEMPTS", 3),
			FallbackToMemory: getEnvAsBool("STORAGE_FALLBACK_TO_MEMORY", true),
			SQLite: SQLiteConfig{
				Path: getEnv("SQLITE_PATH", "./data/guide.db"),
			},
			Redis: RedisConfig{
				Host:           getEnv("REDIS_HOST", "localhost"),
				Port:           getEnv("REDIS_PORT", "6379"),
				Password:       getEnv("REDIS_PASSWORD", ""),
				DB:             getEnvAsInt("REDIS_DB", 0),
				MaxConnections: getEnvAsInt("REDIS_MAX_CONNECTIONS", 10),
			},
			Postgres: PostgresConfig{
				Host:           getEnv("POSTGRES_HOST", "localhost"),
				Port:           getEnv("POSTGRES_PORT", "5432"),
				Database:       getEnv("POSTGRES_DB", "vibe_guide"),
				User:           getEnv("POSTGRES_USER", "guide"),
				Password:       getEnv("POSTGRES_PASSWORD", ""),
				MaxConnections: getEnvAsInt("POSTGRES_MAX_CONNECTIONS", 4),
			},
		},
		Persist: PersistConfig{
			MinInterval:        getEnvAsDuration("PERSIST_MIN_INTERVAL", 100*time.Millisecond),
			WriteTimeout:       getEnvAsDuration("PERSIST_WRITE_TIMEOUT", 3*time.Second),
			BreakerMaxFailures: getEnvAsInt("PERSIST_BREAKER_MAX_FAILURES", 5),
			BreakerCooldown:    getEnvAsDuration("PERSIST_BREAKER_COOLDOWN", 30*time.Second),
		},
		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_PATH", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks values that cannot be defaulted silently
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendRedis, BackendPostgres, BackendMemory:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}
	if c.Storage.ConnectAttempts < 1 {
		c.Storage.ConnectAttempts = 1
	}
	return nil
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool gets an environment variable as a boolean with a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration gets an environment variable as a duration with a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
