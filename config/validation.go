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

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	RequiredFields []string
}

var (
	// Environment-specific requirements. The model credential and endpoint are
	// not listed; the proxy endpoints report them per request.
	requirements = map[Environment]ConfigRequirements{
		Development: {RequiredFields: []string{"SERVER_PORT", "S3_BUCKET_NAME"}},
		Test:        {RequiredFields: []string{"SERVER_PORT"}},
		CI:          {RequiredFields: []string{"SERVER_PORT"}},
		Production: {
			RequiredFields: []string{
				"SERVER_PORT",
				"S3_BUCKET_NAME",
				"AWS_REGION",
			},
		},
	}
)

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	reqs := requirements[env]

	values := map[string]string{
		"SERVER_PORT":    cfg.ServerPort,
		"S3_BUCKET_NAME": cfg.S3BucketName,
		"AWS_REGION":     cfg.AWSRegion,
	}

	var errors []string
	for _, field := range reqs.RequiredFields {
		if values[field] == "" {
			errors = append(errors, ValidationError{Field: field, Message: "is required"}.Error())
		}
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBHost == "" || cfg.DBName == "" {
			errors = append(errors, ValidationError{Field: "DB_HOST", Message: "postgres driver needs DB_HOST and DB_NAME"}.Error())
		}
		if env == Production && cfg.DBPassword == "" {
			errors = append(errors, ValidationError{Field: "DB_PASSWORD", Message: "is required in production"}.Error())
		}
	case "sqlite":
		if cfg.SQLitePath == "" {
			errors = append(errors, ValidationError{Field: "SQLITE_PATH", Message: "is required for the sqlite driver"}.Error())
		}
		if env == Production {
			errors = append(errors, ValidationError{Field: "DB_DRIVER", Message: "sqlite is not allowed in production"}.Error())
		}
	default:
		errors = append(errors, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)}.Error())
	}

	if cfg.ImageMaxWidth == 0 {
		errors = append(errors, ValidationError{Field: "IMAGE_MAX_WIDTH", Message: "must be positive"}.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
