// Package editor launches the user's preferred text editor on a file,
// optionally positioned at a line.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/thoreinstein/bundlecheck/internal/errors"
)

// Streams are the terminal streams handed to the editor process.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process's own standard streams.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Open launches the user's editor on path and waits for it to exit. A line
// greater than zero positions the cursor for editors that support it.
// Uses $EDITOR, falling back to $VISUAL, then nano, then vi.
func Open(ctx context.Context, path string, line int, s Streams) error {
	fields := strings.Fields(detectEditor())
	if len(fields) == 0 {
		return errors.New("no editor configured")
	}

	args := slices.Concat(fields[1:], positionArgs(fields[0], path, line))
	cmd := exec.CommandContext(ctx, fields[0], args...)
	cmd.Stdin = s.In
	cmd.Stdout = s.Out
	cmd.Stderr = s.Err

	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "running editor")
	}
	return nil
}

// positionArgs builds the file arguments for editor, adding the line where
// the editor's convention is known.
func positionArgs(editor, path string, line int) []string {
	if line <= 0 {
		return []string{path}
	}

	n := strconv.Itoa(line)
	switch filepath.Base(editor) {
	case "vi", "vim", "nvim", "nano", "emacs", "emacsclient", "micro", "kak":
		return []string{"+" + n, path}
	case "code", "code-insiders", "codium", "cursor":
		return []string{"--goto", path + ":" + n}
	case "subl", "zed", "hx":
		return []string{path + ":" + n}
	default:
		return []string{path}
	}
}

// detectEditor returns the editor command to use based on environment variables
// and available binaries. Fallback chain: $EDITOR → $VISUAL → nano → vi
func detectEditor() string {
	// Check $EDITOR first (most common)
	if editor := strings.TrimSpace(os.Getenv("EDITOR")); editor != "" {
		return editor
	}

	// Then $VISUAL (for full-screen editors)
	if visual := strings.TrimSpace(os.Getenv("VISUAL")); visual != "" {
		return visual
	}

	// User-friendly fallback (nano is easier for beginners)
	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}

	// POSIX standard fallback (vi is available on all Unix systems)
	return "vi"
}
