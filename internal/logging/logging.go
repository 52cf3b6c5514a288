package logging

import (
	"io"
	"log/slog"
	"os"
	"slices"
	"testing"

	"github.com/thoreinstein/bundlecheck/internal/errors"
)

// Format specifies the output format for log messages.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown log format")

// Formats lists the accepted --log-format values.
func Formats() []string {
	return []string{string(FormatText), string(FormatJSON)}
}

// ParseFormat converts a --log-format value. The empty string means text.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	if !slices.Contains(Formats(), name) {
		return "", errors.Wrapf(ErrUnknownFormat, "%q (want text or json)", name)
	}
	return Format(name), nil
}

// Config holds the configuration for creating a new logger.
type Config struct {
	// Level sets the minimum log level. Messages below this level are discarded.
	Level slog.Level

	// Format specifies the console output format.
	Format Format

	// Output is the console destination. Defaults to os.Stderr if nil.
	Output io.Writer

	// Color controls coloring of text output. The zero value is ColorAuto.
	Color ColorMode

	// File, when set, also receives every record as JSON at the same level.
	File io.Writer
}

// New creates a logger with the given configuration. An unrecognized Format
// falls back to FormatText.
func New(cfg Config) *slog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: cfg.Level,
	}

	var console slog.Handler
	switch cfg.Format {
	case FormatJSON:
		console = slog.NewJSONHandler(output, opts)
	default:
		console = newHandler(output, opts, cfg.Color.Enabled(output))
	}

	var file slog.Handler
	if cfg.File != nil {
		file = slog.NewJSONHandler(cfg.File, opts)
	}

	return slog.New(Fanout(console, file))
}

// NewDiscard creates a logger that discards all output.
// Use this for quiet mode or when logging should be suppressed.
func NewDiscard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// testWriter adapts testing.T to io.Writer for use with slog handlers.
type testWriter struct {
	t *testing.T
}

// Write implements io.Writer by logging to the test.
func (w *testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	// t.Log adds its own newline
	msg := string(p)
	if len(msg) > 0 && msg[len(msg)-1] == '\n' {
		msg = msg[:len(msg)-1]
	}
	w.t.Log(msg)
	return len(p), nil
}

// ForTest creates a logger that writes to the test's log output at trace
// level, so orchestrator and check tracing shows up when a test fails.
func ForTest(t *testing.T) *slog.Logger {
	t.Helper()
	return New(Config{
		Level:  LevelTrace,
		Format: FormatText,
		Output: &testWriter{t: t},
		Color:  ColorNever,
	})
}
