package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/bundlecheck/internal/config"
	"github.com/thoreinstein/bundlecheck/internal/editor"
	"github.com/thoreinstein/bundlecheck/internal/errors"
	"github.com/thoreinstein/bundlecheck/internal/paths"
	"github.com/thoreinstein/bundlecheck/pkg/fileutil"
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect bundlecheck configuration",
	Long: `Inspect the effective bundlecheck configuration.

Configuration is read from ./config.yaml, then from the user config
directory. BUNDLECHECK_* environment variables override file values.

Without a subcommand, shows the effective configuration.`,
	Example: `  # Show the effective configuration
  bundlecheck config

  # Get a single value
  bundlecheck config get network.timeout

  # Print the user config file location
  bundlecheck config path

  # Edit the config file
  bundlecheck config edit

See Also: bundlecheck validate`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration as YAML, after defaults, the config
file, and environment variables are merged.

If the configuration is invalid, the validation error is reported and the
raw merged values are shown instead.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a single configuration value by key.

Supports dot notation for nested keys. List values are printed one per line.`,
	Example: `  bundlecheck config get mode
  bundlecheck config get ignore`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: runConfigGet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the user configuration file path",
	Args:  usageArgs(cobra.NoArgs),
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), userConfigFile())
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the configuration file in your editor",
	Long: `Open the configuration file in $EDITOR (or $VISUAL).

Edits the file that was loaded, or the user config file when none was. A
missing user config file is created with the current effective values.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runConfigEdit,
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := config.FileUsed()
	if path == "" {
		path = userConfigFile()
		if err := writeDefaultConfig(path); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Location: %s\n", path)
	return editor.Open(cmd.Context(), path, 0, editor.Streams{
		In:  cmd.InOrStdin(),
		Out: cmd.OutOrStdout(),
		Err: cmd.ErrOrStderr(),
	})
}

// userConfigFile is the config file in the user config directory, honoring
// BUNDLECHECK_CONFIG_DIR.
func userConfigFile() string {
	return filepath.Join(config.ConfigDir(), paths.ConfigFileName)
}

// writeDefaultConfig creates path from the effective configuration unless
// it already exists.
func writeDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	cfg := loadedConfig
	if cfg == nil {
		cfg = &config.Config{}
	}
	var buf bytes.Buffer
	if err := cfg.WriteYAML(&buf); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	return errors.Wrap(fileutil.AtomicWriteFile(path, buf.Bytes(), 0o644), "writing config file")
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	if used := config.FileUsed(); used != "" {
		fmt.Fprintf(w, "# config file: %s\n", used)
	} else {
		fmt.Fprintln(w, "# config file: none (defaults)")
	}

	if configLoadErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", configLoadErr)
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(viper.AllSettings()); err != nil {
			return errors.Wrap(err, "encoding config")
		}
		if err := enc.Close(); err != nil {
			return errors.Wrap(err, "encoding config")
		}
		return errors.NewConfigError(configLoadErr)
	}

	return loadedConfig.WriteYAML(w)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	key := args[0]

	if !viper.IsSet(key) {
		return errors.NewUsageError(errors.Newf("unknown config key %q", key),
			"Run: bundlecheck config show")
	}

	switch v := viper.Get(key).(type) {
	case []any:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	case []string:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	default:
		fmt.Fprintln(w, viper.GetString(key))
	}
	return nil
}
