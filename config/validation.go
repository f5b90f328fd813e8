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

// ValidateConfig checks that every setting the server cannot run without is
// present. Redis and S3 settings are optional: rate limiting is skipped
// without Redis, and image uploads fall back to local storage without S3.
func ValidateConfig(cfg *Config) error {
	var errors []string

	required := map[string]string{
		"DB_USER":     cfg.DBUser,
		"DB_PASSWORD": cfg.DBPassword,
		"DB_NAME":     cfg.DBName,
		"JWT_SECRET":  cfg.JWTSecret,
	}
	for name, value := range required {
		if value == "" {
			errors = append(errors, fmt.Sprintf("required setting %s is not set", name))
		}
	}

	if len(cfg.JWTSecret) > 0 && len(cfg.JWTSecret) < 16 {
		errors = append(errors, "JWT_SECRET must be at least 16 characters")
	}

	if len(errors) > 0 {
		return fmt.Errorf("invalid configuration:\n  %s", strings.Join(errors, "\n  "))
	}
	return nil
}
