package commands

import (
	"fmt"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/bundlecheck/internal/errors"
	"github.com/thoreinstein/bundlecheck/pkg/fileutil"
)

// previewLimit caps how much of a file the preview window reads.
const previewLimit = 64 * 1024

// selectFiles lets the user pick files with a fuzzy finder. Aborting the
// finder selects nothing.
func selectFiles(files []string) ([]string, error) {
	idxs, err := fuzzyfinder.FindMulti(
		files,
		func(i int) string {
			return files[i]
		},
		fuzzyfinder.WithHeader("Tab to select, Enter to validate"),
		fuzzyfinder.WithPreviewWindow(func(i, _, h int) string {
			if i == -1 {
				return ""
			}
			return preview(files[i], h)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}

	selected := make([]string, len(idxs))
	for i, idx := range idxs {
		selected[i] = files[idx]
	}
	return selected, nil
}

// preview returns the first lines of path that fit in height rows.
func preview(path string, height int) string {
	text, err := fileutil.ReadText(path, previewLimit)
	if err != nil {
		return fmt.Sprintf("cannot preview %s: %v", path, err)
	}
	lines := strings.Split(text, "\n")
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
