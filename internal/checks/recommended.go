package checks

import (
	"context"

	"github.com/thoreinstein/bundlecheck/internal/health"
)

// RecommendedFields reports bundle fields that are optional but expected of
// published bundles. A malformed bundle section is left to RequiredFields.
func RecommendedFields(_ context.Context, in *health.Input) []health.Issue {
	bundle, ok := asMapping(in.Config["bundle"])
	if !ok {
		return nil
	}

	var issues []health.Issue
	if blankString(bundle["version"]) {
		issues = append(issues, health.Issue{
			Severity: health.SeverityWarning,
			Code:     CodeMissingBundleVersion,
			Message:  "bundle.version is not set",
			FilePath: in.Path,
			FixHint:  `add version: "1.0.0" under bundle`,
		})
	}
	if blankString(bundle["description"]) {
		issues = append(issues, health.Issue{
			Severity: health.SeverityInfo,
			Code:     CodeMissingBundleDescription,
			Message:  "bundle.description is not set",
			FilePath: in.Path,
			FixHint:  "add a one-line description under bundle",
		})
	}
	return issues
}
