package types

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports user input that failed a validation rule.
// Recoverable: the same question is re-presented with the message.
type ValidationError struct {
	RuleType string
	Message  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.RuleType, e.Message)
}

// NotFoundError means a referenced form state, question or external entity
// does not exist. Fatal for the current operation, not for the process.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

// ExternalStoreError wraps a failed or timed out call to the keyed row store
// or a fact provider. Callers treat it as retryable.
type ExternalStoreError struct {
	Op  string
	Err error
}

func (e *ExternalStoreError) Error() string {
	return fmt.Sprintf("external store failure during %s: %v", e.Op, e.Err)
}

func (e *ExternalStoreError) Unwrap() error {
	return e.Err
}

// ConfigurationError reports catalog inconsistencies. Detected by the startup
// validation pass; must fail process start, never a running conversation.
type ConfigurationError struct {
	Problems []string
}

func (e *ConfigurationError) Error() string {
	return "invalid question catalog: " + strings.Join(e.Problems, "; ")
}

func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsExternalStoreError(err error) bool {
	var target *ExternalStoreError
	return errors.As(err, &target)
}

func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}
