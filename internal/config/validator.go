package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "storage.departments_file")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateStorage()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateTUI()...)

	return errors
}

// validateStorage validates the StorageConfig
func (c *Config) validateStorage() []ValidationError {
	var errors []ValidationError

	check := func(field, value string) {
		if value == "" {
			errors = append(errors, ValidationError{
				Field:   field,
				Value:   value,
				Message: "cannot be empty",
			})
			return
		}
		if strings.ContainsRune(value, '\x00') {
			errors = append(errors, ValidationError{
				Field:   field,
				Value:   value,
				Message: "path contains invalid null character",
			})
		}
		const maxPathLength = 4096
		if len(value) > maxPathLength {
			errors = append(errors, ValidationError{
				Field:   field,
				Value:   value,
				Message: fmt.Sprintf("path exceeds maximum length of %d characters", maxPathLength),
			})
		}
	}
	check("storage.departments_file", c.Storage.DepartmentsFile)
	check("storage.units_file", c.Storage.UnitsFile)

	if c.Storage.DepartmentsFile != "" && c.Storage.DepartmentsFile == c.Storage.UnitsFile {
		errors = append(errors, ValidationError{
			Field:   "storage.units_file",
			Value:   c.Storage.UnitsFile,
			Message: "must differ from departments_file",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	const minRefreshSeconds = 1
	const maxRefreshSeconds = 3600

	if c.TUI.RefreshSeconds < minRefreshSeconds {
		errors = append(errors, ValidationError{
			Field:   "tui.refresh_seconds",
			Value:   c.TUI.RefreshSeconds,
			Message: fmt.Sprintf("must be at least %d", minRefreshSeconds),
		})
	}
	if c.TUI.RefreshSeconds > maxRefreshSeconds {
		errors = append(errors, ValidationError{
			Field:   "tui.refresh_seconds",
			Value:   c.TUI.RefreshSeconds,
			Message: fmt.Sprintf("exceeds maximum of %d", maxRefreshSeconds),
		})
	}

	return errors
}
