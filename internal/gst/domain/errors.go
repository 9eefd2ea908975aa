package domain

import "fmt"

// ConfigError means the seller configuration is unusable. It is fatal for the
// deployment: no calculation may run until the config is corrected.
type ConfigError struct {
	Field   string
	Value   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %s (got %q)", e.Field, e.Message, e.Value)
}

// ValidationError means a single calculation was rejected because of bad
// per-call input. The caller corrects the input and resubmits; nothing is
// retried automatically.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s: %s (got %q)", e.Field, e.Message, e.Value)
}

func newValidationError(field, value, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}
