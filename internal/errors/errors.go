package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Exit codes for the bundlecheck CLI.
const (
	// ExitSuccess indicates every validated bundle passed.
	ExitSuccess = 0

	// ExitFailed indicates at least one error-level issue was reported.
	ExitFailed = 1

	// ExitUsage indicates an invalid invocation (bad flags, bad config).
	ExitUsage = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrValidationFailed indicates one or more bundles have blocking issues.
	ErrValidationFailed = errors.New("validation failed")

	// ErrNoFiles indicates path expansion produced nothing to validate.
	ErrNoFiles = errors.New("no bundle files found")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Re-exported helpers so callers only import this package.
var (
	New   = errors.New
	Newf  = errors.Newf
	Wrap  = errors.Wrap
	Wrapf = errors.Wrapf
	Is    = errors.Is
	As    = errors.As
	Mark  = errors.Mark
)

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUsageError creates an ExitError with ExitUsage code and a suggestion.
func NewUsageError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUsage,
		Suggestion: suggestion,
	}
}

// NewFailedError creates an ExitError with ExitFailed code.
func NewFailedError(err error) *ExitError {
	return &ExitError{
		Err:  err,
		Code: ExitFailed,
	}
}

// NewConfigError creates a usage error pointing at the config file.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        errors.Mark(err, ErrInvalidConfig),
		Code:       ExitUsage,
		Suggestion: "Run: bundlecheck config show",
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode extracts the exit code carried by err. A nil error maps to
// ExitSuccess and an error without an ExitError in its chain maps to ExitFailed.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailed
}
