package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/bundlecheck/internal/checks"
	"github.com/thoreinstein/bundlecheck/internal/editor"
	"github.com/thoreinstein/bundlecheck/internal/errors"
	"github.com/thoreinstein/bundlecheck/internal/health"
	"github.com/thoreinstein/bundlecheck/internal/logging"
)

func init() {
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit <file>",
	Short: "Open a bundle file at its first issue",
	Long: `Validate a bundle file in fast mode and open it in $EDITOR positioned at
the first issue that carries a line number. Errors take precedence over
warnings and info.

Files without located issues open at the top.`,
	Example: `  bundlecheck edit bundles/review.md`,
	Args:    usageArgs(cobra.ExactArgs(1)),
	RunE:    runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx := cmd.Context()

	opts := checks.DefaultOptions()
	opts.Sources = false
	opts.Logger = logging.FromContext(ctx)
	if loadedConfig != nil {
		opts.MaxFileSize = loadedConfig.Limits.MaxFileSize
	}

	report := checks.New(opts).Run(ctx, path, health.ModeFast)
	for _, issue := range report.Issues {
		if issue.Code == health.CodeFileNotFound || issue.Code == health.CodeFileReadError {
			return errors.NewUsageError(errors.New(issue.Message), "")
		}
	}

	line := 0
	if issue, ok := firstLocatedIssue(report); ok {
		line = issue.Line
		fmt.Fprintf(cmd.ErrOrStderr(), "%s (line %d): %s\n", issue.Code, issue.Line, issue.Message)
	}

	return editor.Open(ctx, path, line, editor.Streams{
		In:  cmd.InOrStdin(),
		Out: cmd.OutOrStdout(),
		Err: cmd.ErrOrStderr(),
	})
}

// firstLocatedIssue returns the most severe issue with a line number,
// earliest first among equals.
func firstLocatedIssue(r *health.Report) (health.Issue, bool) {
	for _, sev := range []health.Severity{health.SeverityError, health.SeverityWarning, health.SeverityInfo} {
		for _, issue := range r.Filter(sev) {
			if issue.Line > 0 {
				return issue, true
			}
		}
	}
	return health.Issue{}, false
}
