package config

import (
	"errors"
	"fmt"
	"strconv"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks if the configuration meets the requirements for its environment.
// All failures are reported together.
func ValidateConfig(cfg *Config) error {
	var errs []error
	fail := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		fail("SERVER_PORT", fmt.Sprintf("invalid port %q", cfg.ServerPort))
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DBHost == "" {
			fail("DB_HOST", "required for the postgres driver")
		}
		if cfg.DBUser == "" {
			fail("DB_USER", "required for the postgres driver")
		}
		if cfg.DBName == "" {
			fail("DB_NAME", "required for the postgres driver")
		}
		if cfg.DBPassword == "" {
			if cfg.Env == CI {
				fail("DB_PASSWORD", "environment variable is required in CI environment")
			} else {
				fail("db_password", "secret is required")
			}
		}
	case DriverSQLite:
		if cfg.Env == Production {
			fail("DB_DRIVER", "sqlite is not supported in production")
		}
		if cfg.SQLitePath == "" {
			fail("SQLITE_PATH", "required for the sqlite driver")
		}
	default:
		fail("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	if cfg.JWTSecret == "" {
		if cfg.Env == CI {
			fail("JWT_SECRET", "environment variable is required in CI environment")
		} else {
			fail("jwt_secret", "secret is required")
		}
	}
	if cfg.TokenTTL <= 0 {
		fail("TOKEN_TTL", "must be positive")
	}

	return errors.Join(errs...)
}
