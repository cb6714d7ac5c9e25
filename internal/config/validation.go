package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	if c.Server.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "server.host",
			Message: "host is required",
		})
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   "server.port",
			Message: fmt.Sprintf("port must be between 1 and 65535, got %d", c.Server.Port),
		})
	}
	if c.Server.User == "" {
		errors = append(errors, ValidationError{
			Field:   "server.user",
			Message: "user is required",
		})
	}
	switch c.Server.TLS {
	case "", "disable", "preferred", "required":
	default:
		errors = append(errors, ValidationError{
			Field:   "server.tls",
			Message: fmt.Sprintf("tls must be disable, preferred, or required, got %q", c.Server.TLS),
		})
	}

	switch c.Resolve.Direction {
	case "", "dependents", "dependencies":
	default:
		errors = append(errors, ValidationError{
			Field:   "resolve.direction",
			Message: fmt.Sprintf("direction must be dependents or dependencies, got %q", c.Resolve.Direction),
		})
	}
	if c.Resolve.MaxDepth < 0 {
		errors = append(errors, ValidationError{
			Field:   "resolve.max_depth",
			Message: fmt.Sprintf("max_depth must not be negative, got %d", c.Resolve.MaxDepth),
		})
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("level must be debug, info, warn, or error, got %q", c.Logging.Level),
		})
	}
	switch c.Logging.Format {
	case "", "json", "text":
	default:
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("format must be json or text, got %q", c.Logging.Format),
		})
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}
