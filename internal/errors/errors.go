// Package errors provides sentinel errors and structured error details for
// the carto-create CLI.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrConfiguration indicates unusable template or target directories.
	ErrConfiguration = errors.New("configuration error")

	// ErrValidation indicates a missing or malformed configuration answer.
	ErrValidation = errors.New("validation error")

	// ErrCancelled indicates the user aborted a prompt or declined to overwrite.
	ErrCancelled = errors.New("cancelled")

	// ErrFilesystem indicates a read, write, copy or delete failure.
	ErrFilesystem = errors.New("filesystem error")

	// ErrManifestParse indicates package.json is not a JSON object.
	ErrManifestParse = errors.New("manifest parse error")
)

// DetailError captures structured error information.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file path involved (optional).
	Location string

	// Field is the configuration key involved (optional).
	Field string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	if e.Field != "" {
		b.WriteString("  Field: ")
		b.WriteString(e.Field)
		b.WriteString("\n")
	}

	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(e.Context[k])
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError reports a template/target directory problem.
func NewConfigurationError(message, location, hint string) error {
	return &DetailError{
		Type:     "invalid configuration",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrConfiguration,
	}
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, field, hint string) error {
	return &DetailError{
		Type:    "validation failed",
		Message: message,
		Field:   field,
		Hint:    hint,
		Cause:   ErrValidation,
	}
}

// NewCancelledError reports a user abort.
func NewCancelledError(message string) error {
	return &DetailError{
		Type:    "cancelled",
		Message: message,
		Cause:   ErrCancelled,
	}
}

// NewFilesystemError wraps an I/O failure with the operation and path.
func NewFilesystemError(op, path string, err error) error {
	return &DetailError{
		Type:     "filesystem operation failed",
		Message:  fmt.Sprintf("%s: %v", op, err),
		Location: path,
		Context:  map[string]string{"Operation": op},
		Cause:    fmt.Errorf("%w: %w", ErrFilesystem, err),
	}
}

// NewManifestParseError reports a package.json that cannot be edited.
func NewManifestParseError(message, location string) error {
	return &DetailError{
		Type:     "manifest parse failed",
		Message:  message,
		Location: location,
		Hint:     "package.json must contain a single JSON object",
		Cause:    ErrManifestParse,
	}
}
