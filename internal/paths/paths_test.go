package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/bundlecheck/internal/errors"
)

func TestHome(t *testing.T) {
	got := Home()
	want, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("os.UserHomeDir() failed: %v", err)
	}
	if got != want {
		t.Errorf("Home() = %q, want %q", got, want)
	}
}

func TestResolveHome(t *testing.T) {
	got, err := ResolveHome()
	want, _ := os.UserHomeDir()

	if err != nil {
		// This might happen in some restricted environments,
		// but normally should succeed.
		if !errors.Is(err, ErrHomeDirNotFound) {
			t.Errorf("unexpected error type: %v", err)
		}
	} else if got != want {
		t.Errorf("ResolveHome() = %q, want %q", got, want)
	}
}

func TestConfigHome(t *testing.T) {
	got := ConfigHome()
	if got == "" {
		t.Error("ConfigHome() returned empty string")
	}
	// Verify it's an absolute path
	if !filepath.IsAbs(got) {
		t.Errorf("ConfigHome() = %q, want absolute path", got)
	}
}

func TestConfigDir(t *testing.T) {
	got := ConfigDir()
	if !strings.HasPrefix(got, ConfigHome()) {
		t.Errorf("ConfigDir() = %q, want prefix %q", got, ConfigHome())
	}
	if filepath.Base(got) != AppName {
		t.Errorf("ConfigDir() = %q, want final element %q", got, AppName)
	}
}

func TestConfigFile(t *testing.T) {
	got := ConfigFile()
	if filepath.Dir(got) != ConfigDir() {
		t.Errorf("ConfigFile() dir = %q, want %q", filepath.Dir(got), ConfigDir())
	}
	if filepath.Base(got) != ConfigFileName {
		t.Errorf("ConfigFile() base = %q, want %q", filepath.Base(got), ConfigFileName)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/reports/out.json", filepath.Join(home, "reports", "out.json")},
		{"relative/out.json", "relative/out.json"},
		{"/abs/out.json", "/abs/out.json"},
		{"~other/out.json", "~other/out.json"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandHome(tt.in)
			if err != nil {
				t.Fatalf("ExpandHome(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestXDGHomeConsistency verifies XDG lookups return consistent results
// across multiple calls.
func TestXDGHomeConsistency(t *testing.T) {
	configHome1 := ConfigHome()
	configHome2 := ConfigHome()
	if configHome1 != configHome2 {
		t.Errorf("ConfigHome() not consistent: %q != %q", configHome1, configHome2)
	}

	configFile1 := ConfigFile()
	configFile2 := ConfigFile()
	if configFile1 != configFile2 {
		t.Errorf("ConfigFile() not consistent: %q != %q", configFile1, configFile2)
	}
}
