package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that everything the current environment requires is
// present. Development and test tolerate missing credentials so local sqlite
// runs and unit tests work without secrets.
func ValidateConfig(cfg *Config, env Environment) error {
	var errors []string

	if cfg.ServerPort == "" {
		errors = append(errors, "server port is required")
	}

	if env == Production || env == CI {
		if cfg.DBUser == "" {
			errors = append(errors, "db user is required (DB_USER or db_user secret)")
		}
		if cfg.DBPassword == "" {
			errors = append(errors, "db password is required (DB_PASSWORD or db_password secret)")
		}
		if cfg.DBName == "" {
			errors = append(errors, "db name is required")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "\n"))
	}
	return nil
}
