package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Driver names accepted in DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const devJWTSecret = "cookbook-dev-secret"

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration. Redis is optional; without it drafts live in
	// process memory and caching, rate limiting and token revocation are off.
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Auth
	JWTSecret string
	TokenTTL  time.Duration

	// Recipe snapshot cache lifetime.
	CacheTTL time.Duration

	// Image storage. Uploads to S3 are enabled when S3Bucket is set.
	S3Bucket  string
	AWSRegion string

	// Logging
	LogLevel  string
	LogFormat string

	// Browser origins allowed by CORS.
	CORSOrigins []string
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// RedisEnabled reports whether a redis endpoint is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// PostgresDSN builds the lib/pq connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := defaults(env)

	switch env {
	case CI:
		loadFromEnv(cfg, nil)
	case Development, Test:
		loadFromEnv(cfg, readSecret)
	case Production:
		loadFromEnv(cfg, readSecret)
		// sensitive values come only from Docker secrets in production
		cfg.DBPassword = readSecret("db_password")
		cfg.JWTSecret = readSecret("jwt_secret")
		if secret := readSecret("redis_password"); secret != "" {
			cfg.RedisPassword = secret
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func defaults(env Environment) *Config {
	cfg := &Config{
		Env:         env,
		ServerPort:  "8080",
		ServerHost:  "0.0.0.0",
		DBDriver:    DriverSQLite,
		DBPort:      "5432",
		DBSSLMode:   "disable",
		SQLitePath:  "cookbook.db",
		RedisPort:   "6379",
		TokenTTL:    24 * time.Hour,
		CacheTTL:    time.Minute,
		LogLevel:    "info",
		LogFormat:   "text",
		CORSOrigins: []string{"http://localhost:8100", "http://localhost:4200"},
	}
	switch env {
	case Development, Test:
		cfg.JWTSecret = devJWTSecret
	case Production:
		cfg.DBDriver = DriverPostgres
		cfg.LogFormat = "json"
	}
	return cfg
}

// loadFromEnv overrides cfg with environment variables. When secret is not
// nil it is consulted for variables that are unset.
func loadFromEnv(cfg *Config, secret func(string) string) {
	get := func(envVar, secretName string) string {
		if v := os.Getenv(envVar); v != "" {
			return v
		}
		if secret != nil && secretName != "" {
			return secret(secretName)
		}
		return ""
	}
	set := func(dst *string, envVar, secretName string) {
		if v := get(envVar, secretName); v != "" {
			*dst = v
		}
	}

	set(&cfg.ServerPort, "SERVER_PORT", "server_port")
	set(&cfg.ServerHost, "SERVER_HOST", "server_host")
	set(&cfg.DBDriver, "DB_DRIVER", "")
	set(&cfg.DBHost, "DB_HOST", "db_host")
	set(&cfg.DBPort, "DB_PORT", "db_port")
	set(&cfg.DBUser, "DB_USER", "db_user")
	set(&cfg.DBPassword, "DB_PASSWORD", "db_password")
	set(&cfg.DBName, "DB_NAME", "db_name")
	set(&cfg.DBSSLMode, "DB_SSL_MODE", "db_ssl_mode")
	set(&cfg.SQLitePath, "SQLITE_PATH", "")
	set(&cfg.RedisHost, "REDIS_HOST", "redis_host")
	set(&cfg.RedisPort, "REDIS_PORT", "redis_port")
	set(&cfg.RedisPassword, "REDIS_PASSWORD", "redis_password")
	set(&cfg.RedisURL, "REDIS_URL", "redis_url")
	set(&cfg.JWTSecret, "JWT_SECRET", "jwt_secret")
	set(&cfg.S3Bucket, "S3_BUCKET_NAME", "")
	set(&cfg.AWSRegion, "AWS_REGION", "")
	set(&cfg.LogLevel, "LOG_LEVEL", "")
	set(&cfg.LogFormat, "LOG_FORMAT", "")

	if v := get("CORS_ALLOWED_ORIGINS", ""); v != "" {
		cfg.CORSOrigins = splitList(v)
	}

	cfg.DBDriver = strings.ToLower(cfg.DBDriver)
	if v, err := strconv.Atoi(get("REDIS_DB", "")); err == nil {
		cfg.RedisDB = v
	}
	if d, err := time.ParseDuration(get("TOKEN_TTL", "")); err == nil {
		cfg.TokenTTL = d
	}
	if d, err := time.ParseDuration(get("CACHE_TTL", "")); err == nil {
		cfg.CacheTTL = d
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
