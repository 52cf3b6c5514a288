package health

import (
	"strings"

	"github.com/thoreinstein/bundlecheck/internal/errors"
)

// Mode selects which registered checks a run executes.
type Mode int

const (
	// ModeFast runs only local, structural checks.
	ModeFast Mode = iota

	// ModeComprehensive runs local checks followed by network-dependent checks.
	ModeComprehensive
)

// Modes lists the accepted mode names.
func Modes() []string {
	return []string{ModeFast.String(), ModeComprehensive.String()}
}

func (m Mode) String() string {
	switch m {
	case ModeFast:
		return "fast"
	case ModeComprehensive:
		return "comprehensive"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name into a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fast", "":
		return ModeFast, nil
	case "comprehensive", "full":
		return ModeComprehensive, nil
	default:
		return ModeFast, errors.Newf("unknown mode %q (valid: %s)", name, strings.Join(Modes(), ", "))
	}
}

// Set implements pflag.Value so Mode can back a command-line flag.
func (m *Mode) Set(value string) error {
	parsed, err := ParseMode(value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value.
func (m *Mode) Type() string {
	return "mode"
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
