// Package config provides configuration management for the bundlecheck CLI.
//
// # Configuration File
//
// Settings are read from config.yaml in the current directory, then from
// the per-user directory (~/.config/bundlecheck on Linux, overridable with
// BUNDLECHECK_CONFIG_DIR). Every key can also be set through the
// environment, e.g. BUNDLECHECK_NETWORK_TIMEOUT=30s.
//
//	mode: fast            # or comprehensive
//	format: text          # or json
//	include:
//	  - "**/*.md"
//	ignore:
//	  - "node_modules/**"
//	checks:
//	  recommended: true
//	  agent: true
//	  body: true
//	  sources: true
//	network:
//	  timeout: 10s
//	  concurrency: 4
//	limits:
//	  max_file_size: 1048576
//
// # Loading Configuration
//
// Call [Init] once, then [Load]:
//
//	config.Init()
//	cfg, err := config.Load(flagPath)
//
// Load validates the result with [Validate]; invalid settings are reported
// together in one error marked with errors.ErrInvalidConfig.
package config
