// Package config provides configuration management for bundlecheck using Viper.
package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/bundlecheck/internal/errors"
	"github.com/thoreinstein/bundlecheck/internal/paths"
)

// EnvPrefix prefixes every environment variable bundlecheck reads.
const EnvPrefix = "BUNDLECHECK"

// configDirEnv overrides the per-user configuration directory.
const configDirEnv = EnvPrefix + "_CONFIG_DIR"

// Config represents the top-level configuration structure.
type Config struct {
	Mode    string   `mapstructure:"mode" yaml:"mode"`
	Format  string   `mapstructure:"format" yaml:"format"`
	Include []string `mapstructure:"include" yaml:"include"`
	Ignore  []string `mapstructure:"ignore" yaml:"ignore"`
	Checks  Checks   `mapstructure:"checks" yaml:"checks"`
	Network Network  `mapstructure:"network" yaml:"network"`
	Limits  Limits   `mapstructure:"limits" yaml:"limits"`
}

// Checks toggles the optional checks.
type Checks struct {
	Recommended bool `mapstructure:"recommended" yaml:"recommended"`
	Agent       bool `mapstructure:"agent" yaml:"agent"`
	Body        bool `mapstructure:"body" yaml:"body"`
	Sources     bool `mapstructure:"sources" yaml:"sources"`
}

// Network bounds the source requests run in comprehensive mode.
type Network struct {
	Timeout     time.Duration `mapstructure:"timeout" yaml:"-"`
	Concurrency int           `mapstructure:"concurrency" yaml:"concurrency"`
}

// MarshalYAML writes Timeout in duration notation.
func (n Network) MarshalYAML() (any, error) {
	return struct {
		Timeout     string `yaml:"timeout"`
		Concurrency int    `yaml:"concurrency"`
	}{n.Timeout.String(), n.Concurrency}, nil
}

// Limits bounds the files read.
type Limits struct {
	MaxFileSize int64 `mapstructure:"max_file_size" yaml:"max_file_size"`
}

// Init resets Viper and installs defaults, search paths, and environment
// bindings. Call this once at application startup before Load.
func Init() {
	viper.Reset()

	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(ConfigDir())

	// Environment variable support: BUNDLECHECK_NETWORK_TIMEOUT etc.
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("mode", "fast")
	viper.SetDefault("format", "text")
	viper.SetDefault("include", []string{"**/*.md"})
	viper.SetDefault("ignore", []string{})
	viper.SetDefault("checks.recommended", true)
	viper.SetDefault("checks.agent", true)
	viper.SetDefault("checks.body", true)
	viper.SetDefault("checks.sources", true)
	viper.SetDefault("network.timeout", "10s")
	viper.SetDefault("network.concurrency", 4)
	viper.SetDefault("limits.max_file_size", 1<<20)
}

// ConfigDir returns the per-user configuration directory, honoring
// BUNDLECHECK_CONFIG_DIR.
func ConfigDir() string {
	if dir := os.Getenv(configDirEnv); dir != "" {
		return dir
	}
	return paths.ConfigDir()
}

// Load reads the configuration file and validates the result.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file exists.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
		switch {
		case missing && path == "":
			// Implicit load without a file uses defaults.
		case missing:
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, errors.Mark(
			errors.Newf("validating config: %s", strings.Join(msgs, "; ")),
			errors.ErrInvalidConfig,
		)
	}

	return &cfg, nil
}

// FileUsed returns the configuration file Load read, or "" when defaults
// were used.
func FileUsed() string {
	return viper.ConfigFileUsed()
}

// WriteYAML writes cfg to w as YAML.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return errors.Wrap(err, "encoding config")
	}
	return enc.Close()
}
