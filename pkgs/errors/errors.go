package errors

import (
	"errors"
	"fmt"
)

// Error types for the failures the knave CLI reports
const (
	// Invocation errors
	ErrMissingInput = "MISSING_INPUT"
	ErrBadExtension = "BAD_EXTENSION"

	// Input/File errors
	ErrInputRead  = "INPUT_READ_ERROR"
	ErrEmptyInput = "EMPTY_INPUT"

	// Output errors
	ErrEncode = "ENCODE_ERROR"

	// Watch mode errors
	ErrWatch = "WATCH_ERROR"

	// Configuration errors
	ErrConfig = "CONFIG_ERROR"
)

// KnaveError represents a structured error with type and context
type KnaveError struct {
	Type    string
	Message string
	Hint    string // How to fix it, shown on its own line by the CLI
	Cause   error
	Context map[string]any
}

// Error implements the error interface
func (e *KnaveError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap allows error unwrapping
func (e *KnaveError) Unwrap() error {
	return e.Cause
}

// New creates a new KnaveError
func New(errorType, message string) *KnaveError {
	return &KnaveError{
		Type:    errorType,
		Message: message,
		Context: make(map[string]any),
	}
}

// Wrap creates a new KnaveError wrapping an existing error
func Wrap(errorType, message string, cause error) *KnaveError {
	return &KnaveError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error
func (e *KnaveError) WithContext(key string, value any) *KnaveError {
	e.Context[key] = value
	return e
}

// WithHint attaches a remediation hint
func (e *KnaveError) WithHint(hint string) *KnaveError {
	e.Hint = hint
	return e
}

// GetContext returns context value by key
func (e *KnaveError) GetContext(key string) (any, bool) {
	value, exists := e.Context[key]
	return value, exists
}

// Helper functions for common error scenarios

// NewMissingInputError reports that no input path was given
func NewMissingInputError() *KnaveError {
	return New(ErrMissingInput, "Input not provided.")
}

// NewExtensionError reports a path without the required source extension
func NewExtensionError(path, extension string) *KnaveError {
	return New(ErrBadExtension, fmt.Sprintf("%s is not a source file.", path)).
		WithContext("path", path).
		WithContext("extension", extension)
}

// NewInputError reports a file that could not be opened, sized or read
func NewInputError(path string, cause error) *KnaveError {
	return Wrap(ErrInputRead, fmt.Sprintf("Could not read file %s.", path), cause).
		WithContext("path", path)
}

// NewEmptyInputError reports a file with no content
func NewEmptyInputError(path string) *KnaveError {
	return New(ErrEmptyInput, fmt.Sprintf("Could not read file %s: file is empty.", path)).
		WithContext("path", path)
}

// NewEncodeError reports a failure writing the token stream
func NewEncodeError(format string, cause error) *KnaveError {
	return Wrap(ErrEncode, fmt.Sprintf("Could not write %s output", format), cause).
		WithContext("format", format)
}

// NewWatchError reports a failure setting up or running the file watcher
func NewWatchError(path string, cause error) *KnaveError {
	return Wrap(ErrWatch, fmt.Sprintf("Could not watch file %s", path), cause).
		WithContext("path", path)
}

// NewConfigError reports an invalid configuration value
func NewConfigError(message string) *KnaveError {
	return New(ErrConfig, message)
}

// IsErrorType checks if an error, or any error it wraps, is of a specific type
func IsErrorType(err error, errorType string) bool {
	var knaveErr *KnaveError
	if errors.As(err, &knaveErr) {
		return knaveErr.Type == errorType
	}
	return false
}
