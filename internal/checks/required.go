package checks

import (
	"context"
	"fmt"

	"github.com/thoreinstein/bundlecheck/internal/health"
)

const minimalBundleHint = "add a bundle section:\n  bundle:\n    name: my-bundle"

// RequiredFields verifies that a bundle file declares a non-empty bundle.name.
// An empty or whitespace-only name counts as missing. Agent files follow a
// different schema and yield no issues.
func RequiredFields(_ context.Context, in *health.Input) []health.Issue {
	if in.Kind == health.KindAgent {
		return nil
	}

	raw, ok := in.Config["bundle"]
	if !ok {
		return []health.Issue{{
			Severity: health.SeverityError,
			Code:     CodeMissingBundleSection,
			Message:  "front matter has no bundle section",
			FilePath: in.Path,
			FixHint:  minimalBundleHint,
		}}
	}

	bundle, ok := asMapping(raw)
	if !ok {
		return []health.Issue{{
			Severity: health.SeverityError,
			Code:     CodeInvalidBundleSection,
			Message:  fmt.Sprintf("bundle must be a mapping, found %s", typeName(raw)),
			FilePath: in.Path,
			FixHint:  minimalBundleHint,
		}}
	}

	if blankString(bundle["name"]) {
		return []health.Issue{{
			Severity: health.SeverityError,
			Code:     CodeMissingBundleName,
			Message:  "bundle.name is required",
			FilePath: in.Path,
			FixHint:  `add the "name" field under bundle, e.g. name: my-bundle`,
		}}
	}

	return nil
}
