//nolint:revive // Package name matches the package it tests
package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	all := []error{ErrConfiguration, ErrValidation, ErrCancelled, ErrFilesystem, ErrManifestParse}
	for i := range all {
		for j := range all {
			if i != j {
				assert.NotErrorIs(t, all[i], all[j])
			}
		}
	}
}

func TestDetailErrorError(t *testing.T) {
	detail := &DetailError{
		Type:     "validation failed",
		Message:  "a value is required",
		Location: "/tmp/app/package.json",
		Field:    "title",
		Context:  map[string]string{"Step": "manifest", "Operation": "write"},
		Hint:     "Pass --title",
	}

	output := detail.Error()

	assert.Contains(t, output, "Error: validation failed")
	assert.Contains(t, output, "Location: /tmp/app/package.json")
	assert.Contains(t, output, "Field: title")
	assert.Contains(t, output, "a value is required")
	assert.Contains(t, output, "Hint: Pass --title")
	assert.Less(t, strings.Index(output, "Operation: write"), strings.Index(output, "Step: manifest"))
}

func TestDetailErrorUnwrap(t *testing.T) {
	detail := &DetailError{Type: "test", Message: "test message", Cause: ErrCancelled}

	assert.True(t, errors.Is(detail, ErrCancelled))
	assert.Equal(t, ErrCancelled, detail.Unwrap())
}

func TestNewFilesystemError(t *testing.T) {
	err := NewFilesystemError("copy", "/tmp/x", fs.ErrPermission)

	assert.ErrorIs(t, err, ErrFilesystem)
	assert.ErrorIs(t, err, fs.ErrPermission)

	var detail *DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "/tmp/x", detail.Location)
	assert.Equal(t, "copy", detail.Context["Operation"])
}

func TestConstructorsCarrySentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"configuration", NewConfigurationError("same dir", "/a", ""), ErrConfiguration},
		{"validation", NewValidationError("required", "title", ""), ErrValidation},
		{"cancelled", NewCancelledError("declined"), ErrCancelled},
		{"manifest", NewManifestParseError("not an object", "/a/package.json"), ErrManifestParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
		})
	}
}

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"cancelled", NewCancelledError("x"), ExitCancelled},
		{"validation", NewValidationError("x", "title", ""), ExitValidationError},
		{"configuration", NewConfigurationError("x", "", ""), ExitConfigurationError},
		{"filesystem", NewFilesystemError("read", "/x", fs.ErrNotExist), ExitFilesystemError},
		{"manifest", NewManifestParseError("x", ""), ExitManifestError},
		{"wrapped", fmt.Errorf("step tokens: %w", NewCancelledError("x")), ExitCancelled},
		{"explicit", &ExitError{Err: errors.New("boom"), Code: 42}, 42},
		{"unknown", errors.New("boom"), ExitGeneralError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitError(t *testing.T) {
	err := NewExitError(NewCancelledError("Project creation cancelled."))

	assert.Equal(t, ExitCancelled, err.Code)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Contains(t, err.Error(), "Project creation cancelled.")
	assert.Equal(t, "Cancelled", (&ExitError{Code: ExitCancelled}).Error())
	assert.Equal(t, "Unknown", ExitCodeName(99))
}
