package errors

import "errors"

// Exit codes returned by the carto-create binary.
const (
	ExitSuccess            = 0
	ExitGeneralError       = 1
	ExitCancelled          = 2
	ExitValidationError    = 3
	ExitConfigurationError = 4
	ExitFilesystemError    = 5
	ExitManifestError      = 6
)

// ExitError carries a process exit code alongside the error.
type ExitError struct {
	Err  error
	Code int

	// Printed reports whether the error was already shown to the user.
	Printed bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ExitCodeName(e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError wraps err with the exit code derived from its sentinel.
func NewExitError(err error) *ExitError {
	return &ExitError{Err: err, Code: ExitCodeFromError(err)}
}

// ExitCodeFromError maps known sentinels to exit codes.
func ExitCodeFromError(err error) int {
	var exitErr *ExitError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, ErrCancelled):
		return ExitCancelled
	case errors.Is(err, ErrValidation):
		return ExitValidationError
	case errors.Is(err, ErrConfiguration):
		return ExitConfigurationError
	case errors.Is(err, ErrManifestParse):
		return ExitManifestError
	case errors.Is(err, ErrFilesystem):
		return ExitFilesystemError
	default:
		return ExitGeneralError
	}
}

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitCancelled:
		return "Cancelled"
	case ExitValidationError:
		return "Validation Error"
	case ExitConfigurationError:
		return "Configuration Error"
	case ExitFilesystemError:
		return "Filesystem Error"
	case ExitManifestError:
		return "Manifest Error"
	default:
		return "Unknown"
	}
}
