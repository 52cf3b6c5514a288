// Package commands implements the CLI commands for bundlecheck.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/bundlecheck/cmd"
	"github.com/thoreinstein/bundlecheck/internal/config"
	"github.com/thoreinstein/bundlecheck/internal/errors"
	"github.com/thoreinstein/bundlecheck/internal/logging"
	"github.com/thoreinstein/bundlecheck/internal/paths"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// colorMode holds the value of the --color flag.
var colorMode string

// logSink is the open --log-file, if any.
var logSink *os.File

// startupNoColor is fatih/color's own terminal detection, kept so --color
// auto can restore it.
var startupNoColor = color.NoColor

// configPath holds the value of the --config flag.
var configPath string

// loadedConfig is the configuration read by initConfig.
var loadedConfig *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"only report failing files and errors")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", string(logging.FormatText),
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default: ./config.yaml, then "+paths.ConfigFile()+")")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("bundlecheck version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.NewUsageError(err, "Run: "+cmd.CommandPath()+" --help")
	})
}

// usageArgs marks positional argument errors as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return errors.NewUsageError(err, "Run: "+cmd.CommandPath()+" --help")
		}
		return nil
	}
}

func initConfig() {
	config.Init()
	loadedConfig, configLoadErr = config.Load(configPath)
}

var rootCmd = &cobra.Command{
	Use:   "bundlecheck",
	Short: "Validate bundle and agent definition files",
	Long: `bundlecheck validates markdown bundle files: YAML or TOML front matter
declaring a bundle (name, providers, tools, hooks) or an agent (meta),
followed by a markdown body.

Fast mode checks structure locally. Comprehensive mode also requests module
sources over the network.`,
	Example: `  # Validate every bundle under the current directory
  bundlecheck validate

  # Validate one file, including network checks
  bundlecheck validate bundle.md --comprehensive

  # Machine-readable output
  bundlecheck validate --json bundles/

  See Also: bundlecheck checks, bundlecheck config`,
	Args: usageArgs(cobra.NoArgs),
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Cobra checks flag groups after this hook; checking here lets
		// conflicts exit as usage errors.
		if err := cmd.ValidateFlagGroups(); err != nil {
			return errors.NewUsageError(err, "Run: "+cmd.CommandPath()+" --help")
		}
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger from the verbosity, format,
// color, and log file flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUsageError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("BUNDLECHECK_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return errors.NewUsageError(err, "Use --log-format text or --log-format json")
	}
	mode, err := logging.ParseColorMode(colorMode)
	if err != nil {
		return errors.NewUsageError(err, "Use --color auto, always, or never")
	}
	applyColorMode(mode)

	cfg := logging.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
		Color:  mode,
	}

	// A previous run in the same process may have opened a sink.
	closeLogSink()
	if logFile != "" {
		path, err := paths.ExpandHome(logFile)
		if err != nil {
			return errors.NewUsageError(err, "")
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUsageError(errors.Wrap(err, "opening log file"), "")
		}
		logSink = f
		cfg.File = f
	}

	logger := logging.New(cfg)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// applyColorMode makes the report renderer follow --color. Auto restores
// the terminal detection done at startup.
func applyColorMode(mode logging.ColorMode) {
	switch mode {
	case logging.ColorAlways:
		color.NoColor = false
	case logging.ColorNever:
		color.NoColor = true
	default:
		color.NoColor = startupNoColor
	}
}

func closeLogSink() {
	if logSink != nil {
		_ = logSink.Close()
		logSink = nil
	}
}

// checkConfig surfaces configuration errors for commands that need config.
func checkConfig(cmd *cobra.Command) error {
	// Skip validation for help and version commands, and for config
	// commands which report the error themselves.
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c == configCmd {
			return nil
		}
	}
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	return nil
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	defer closeLogSink()
	return rootCmd.ExecuteContext(ctx)
}
