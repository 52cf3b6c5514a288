// Package paths resolves the per-user locations bundlecheck reads its
// configuration from.
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// Specification compliance. On Linux the configuration file lives at
// ~/.config/bundlecheck/config.yaml; macOS and Windows use their native
// application support directories.
package paths
