package commands

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/thoreinstein/bundlecheck/internal/errors"
	"github.com/thoreinstein/bundlecheck/internal/logging"
)

func TestSetupLogging_VerbosityFlags(t *testing.T) {
	// Save/Restore original state
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	tests := []struct {
		name      string
		verbosity int
		wantLevel slog.Level
	}{
		{"default (0)", 0, slog.LevelWarn},
		{"verbose (1)", 1, slog.LevelInfo},
		{"debug (2)", 2, slog.LevelDebug},
		{"trace (3)", 3, logging.LevelTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = tt.verbosity
			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel > logging.LevelTrace {
				shouldBeDisabled := tt.wantLevel - 4
				if logger.Enabled(t.Context(), shouldBeDisabled) {
					t.Errorf("expected level %v to be disabled", shouldBeDisabled)
				}
			}
		})
	}
}

func TestSetupLogging_EnvVar(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	tests := []struct {
		name      string
		envVal    string
		wantLevel slog.Level
	}{
		{"BUNDLECHECK_DEBUG=1", "1", slog.LevelDebug},
		{"BUNDLECHECK_DEBUG=true", "true", slog.LevelDebug},
		{"BUNDLECHECK_DEBUG=2", "2", logging.LevelTrace},
		{"BUNDLECHECK_DEBUG=0", "0", slog.LevelWarn},
		{"BUNDLECHECK_DEBUG=unknown", "foo", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = 0
			t.Setenv("BUNDLECHECK_DEBUG", tt.envVal)

			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel == slog.LevelDebug && logger.Enabled(t.Context(), logging.LevelTrace) {
				t.Error("expected Trace level to be disabled when BUNDLECHECK_DEBUG=1")
			}
		})
	}
}

func TestSetupLogging_FlagPrecedence(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	t.Setenv("BUNDLECHECK_DEBUG", "2")
	verbosity = 1

	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}

	logger := slog.Default()
	if !logger.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("expected Info level to be enabled")
	}
	if logger.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("expected Debug level to be disabled (flag should override env var)")
	}
}

func TestSetupLogging_Quiet(t *testing.T) {
	origQuiet := quiet
	origVerbosity := verbosity
	defer func() {
		quiet = origQuiet
		verbosity = origVerbosity
	}()

	quiet = true
	verbosity = 0

	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger := slog.Default()
	if !logger.Enabled(t.Context(), slog.LevelError) {
		t.Error("expected Error level to be enabled")
	}
	if logger.Enabled(t.Context(), slog.LevelWarn) {
		t.Error("expected Warn level to be disabled")
	}
}

func TestSetupLogging_QuietMutualExclusion(t *testing.T) {
	origVerbosity := verbosity
	origQuiet := quiet
	defer func() {
		verbosity = origVerbosity
		quiet = origQuiet
	}()

	verbosity = 1
	quiet = true

	err := setupLogging(rootCmd)
	if err == nil {
		t.Fatal("expected error when both --quiet and --verbose are set")
	}
	if got := errors.ExitCode(err); got != errors.ExitUsage {
		t.Errorf("ExitCode() = %d, want %d", got, errors.ExitUsage)
	}
}

func TestSetupLogging_LogFile(t *testing.T) {
	origLogFile := logFile
	origVerbosity := verbosity
	defer func() {
		closeLogSink()
		logFile = origLogFile
		verbosity = origVerbosity
		slog.SetDefault(slog.New(logging.NewHandler(os.Stderr, nil)))
	}()

	logFile = filepath.Join(t.TempDir(), "bundlecheck.log")
	verbosity = 1

	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	slog.Info("hello from test", "path", "a.md")
	slog.Debug("below the configured level")

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("log file has %d lines, want 1: %q", len(lines), data)
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("log file line is not JSON: %v", err)
	}
	if record["msg"] != "hello from test" || record["path"] != "a.md" {
		t.Errorf("log file record = %v", record)
	}
}

func TestSetupLogging_LogFileReplacesPreviousSink(t *testing.T) {
	origLogFile := logFile
	defer func() {
		closeLogSink()
		logFile = origLogFile
		slog.SetDefault(slog.New(logging.NewHandler(os.Stderr, nil)))
	}()

	dir := t.TempDir()
	logFile = filepath.Join(dir, "first.log")
	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	first := logSink

	logFile = ""
	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	if logSink != nil {
		t.Error("expected no sink without --log-file")
	}
	if err := first.Close(); err == nil {
		t.Error("expected the previous sink to be closed already")
	}
}

func TestSetupLogging_InvalidFormatAndColor(t *testing.T) {
	origFormat, origColor := logFormat, colorMode
	defer func() {
		logFormat, colorMode = origFormat, origColor
	}()

	tests := []struct {
		name   string
		format string
		color  string
	}{
		{"unknown log format", "yaml", "auto"},
		{"unknown color mode", "text", "sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logFormat, colorMode = tt.format, tt.color
			err := setupLogging(rootCmd)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.ExitCode(err); got != errors.ExitUsage {
				t.Errorf("ExitCode() = %d, want %d", got, errors.ExitUsage)
			}
		})
	}
}

func TestSetupLogging_ColorMode(t *testing.T) {
	origColor, origNoColor := colorMode, color.NoColor
	defer func() {
		colorMode = origColor
		color.NoColor = origNoColor
	}()

	colorMode = "always"
	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	if color.NoColor {
		t.Error("--color always should enable report colors")
	}

	colorMode = "never"
	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	if !color.NoColor {
		t.Error("--color never should disable report colors")
	}

	colorMode = "auto"
	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	if color.NoColor != startupNoColor {
		t.Errorf("--color auto should restore startup detection (%v)", startupNoColor)
	}
}
