package logging

import (
	"io"
	"os"
	"slices"

	"golang.org/x/term"

	"github.com/thoreinstein/bundlecheck/internal/errors"
)

// ColorMode is the value of the --color flag.
type ColorMode string

const (
	// ColorAuto colors terminals unless NO_COLOR or TERM=dumb say otherwise.
	ColorAuto ColorMode = "auto"
	// ColorAlways colors even when output is redirected.
	ColorAlways ColorMode = "always"
	// ColorNever disables color.
	ColorNever ColorMode = "never"
)

// ColorModes lists the accepted --color values.
func ColorModes() []string {
	return []string{string(ColorAuto), string(ColorAlways), string(ColorNever)}
}

// ParseColorMode converts a --color value. The empty string means auto.
func ParseColorMode(name string) (ColorMode, error) {
	if name == "" {
		return ColorAuto, nil
	}
	if !slices.Contains(ColorModes(), name) {
		return "", errors.Newf("unknown color mode %q (want auto, always, or never)", name)
	}
	return ColorMode(name), nil
}

// Enabled reports whether output to w should be colored under m.
func (m ColorMode) Enabled(w io.Writer) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return SupportsColor(w)
	}
}

// IsTTY returns true if the given writer is a terminal.
// It supports os.File and any wrapper that provides an Fd() method.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SupportsColor returns true if w is a terminal and neither NO_COLOR nor
// TERM=dumb is set.
func SupportsColor(w io.Writer) bool {
	return supportsColor(IsTTY(w))
}

func supportsColor(isTTY bool) bool {
	// https://no-color.org
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY
}
