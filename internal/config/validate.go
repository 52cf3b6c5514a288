package config

import (
	"slices"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"

	"github.com/thoreinstein/bundlecheck/internal/errors"
	"github.com/thoreinstein/bundlecheck/internal/health"
)

// Validation errors for configuration fields.
var (
	// ErrInvalidMode indicates an unrecognized validation mode.
	ErrInvalidMode = errors.New("invalid mode")

	// ErrInvalidFormat indicates an unrecognized output format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrNotPositive indicates a numeric setting that must be greater than zero.
	ErrNotPositive = errors.New("must be greater than zero")

	// ErrInvalidPattern indicates a malformed include or ignore glob.
	ErrInvalidPattern = errors.New("invalid pattern")
)

// Formats lists the accepted output formats.
func Formats() []string {
	return []string{"text", "json"}
}

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if _, err := health.ParseMode(cfg.Mode); err != nil {
		errs = append(errs, &FieldError{Field: "mode", Value: cfg.Mode, Err: ErrInvalidMode})
	}

	if !validFormat(cfg.Format) {
		errs = append(errs, &FieldError{Field: "format", Value: cfg.Format, Err: ErrInvalidFormat})
	}

	if cfg.Network.Timeout <= 0 {
		errs = append(errs, &FieldError{Field: "network.timeout", Value: cfg.Network.Timeout.String(), Err: ErrNotPositive})
	}
	if cfg.Network.Concurrency <= 0 {
		errs = append(errs, &FieldError{Field: "network.concurrency", Value: itoa(int64(cfg.Network.Concurrency)), Err: ErrNotPositive})
	}
	if cfg.Limits.MaxFileSize <= 0 {
		errs = append(errs, &FieldError{Field: "limits.max_file_size", Value: itoa(cfg.Limits.MaxFileSize), Err: ErrNotPositive})
	}

	for _, p := range cfg.Include {
		if !doublestar.ValidatePattern(p) {
			errs = append(errs, &FieldError{Field: "include", Value: p, Err: ErrInvalidPattern})
		}
	}
	for _, p := range cfg.Ignore {
		if _, err := glob.Compile(p, '/'); err != nil {
			errs = append(errs, &FieldError{Field: "ignore", Value: p, Err: ErrInvalidPattern})
		}
	}

	return errs
}

func validFormat(format string) bool {
	return slices.Contains(Formats(), format)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

// FieldError represents an invalid value for a specific configuration key.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
