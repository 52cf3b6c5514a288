package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/thoreinstein/bundlecheck/internal/errors"
	"github.com/thoreinstein/bundlecheck/internal/health"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// ParseFormat converts a format name into a Format.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", errors.Newf("unknown format %q (valid: text, json)", name)
	}
}

// Reporter formats and writes validation reports.
type Reporter struct {
	out    io.Writer
	format Format
	quiet  bool
}

// Option configures a Reporter.
type Option func(*Reporter)

// Quiet limits text output to files that failed plus the summary line.
func Quiet(q bool) Option {
	return func(r *Reporter) {
		r.quiet = q
	}
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format, opts ...Option) *Reporter {
	r := &Reporter{
		out:    out,
		format: format,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report writes the reports to the output.
func (r *Reporter) Report(reports []*health.Report) error {
	summary := Summarize(reports)

	switch r.format {
	case FormatJSON:
		return r.reportJSON(summary)
	default:
		return r.reportText(summary)
	}
}

// reportJSON writes the summary as JSON.
func (r *Reporter) reportJSON(s *Summary) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(s), "encoding JSON report")
}

// reportText writes the summary as human-readable text.
func (r *Reporter) reportText(s *Summary) error {
	for _, report := range s.Reports {
		if r.quiet && report.Passed() {
			continue
		}
		r.printReport(report)
	}

	if s.Files == 0 {
		fmt.Fprintln(r.out, "No bundle files to validate")
		return nil
	}

	parts := []string{fmt.Sprintf("%d file(s)", s.Files)}
	if s.Errors > 0 {
		parts = append(parts, color.RedString("%d error(s)", s.Errors))
	}
	if s.Warnings > 0 {
		parts = append(parts, color.YellowString("%d warning(s)", s.Warnings))
	}
	if s.Infos > 0 {
		parts = append(parts, color.CyanString("%d info", s.Infos))
	}

	if s.Passed {
		fmt.Fprintf(r.out, "%s %s\n", color.GreenString("✓ Validation passed:"), strings.Join(parts, ", "))
	} else {
		fmt.Fprintf(r.out, "%s %s\n", color.RedString("✗ Validation failed:"), strings.Join(parts, ", "))
	}
	return nil
}

func (r *Reporter) printReport(report *health.Report) {
	mark := color.GreenString("✓")
	if !report.Passed() {
		mark = color.RedString("✗")
	}

	header := report.BundlePath
	if report.Kind != "" {
		header += color.New(color.FgHiBlack).Sprintf(" (%s)", report.Kind)
	}
	fmt.Fprintf(r.out, "%s %s\n", mark, header)

	groups := []struct {
		severity health.Severity
		label    string
		attr     color.Attribute
	}{
		{health.SeverityError, "Errors:", color.FgRed},
		{health.SeverityWarning, "Warnings:", color.FgYellow},
		{health.SeverityInfo, "Info:", color.FgCyan},
	}
	for _, g := range groups {
		issues := report.Filter(g.severity)
		if len(issues) == 0 {
			continue
		}
		fmt.Fprintf(r.out, "  %s\n", g.label)
		for _, issue := range issues {
			r.printIssue(issue, g.attr)
		}
	}
	if len(report.Issues) > 0 {
		fmt.Fprintln(r.out)
	}
}

func (r *Reporter) printIssue(i health.Issue, c color.Attribute) {
	printer := color.New(c).SprintFunc()

	// Format:  • CODE (line N): message
	var sb strings.Builder
	sb.WriteString("    • ")
	sb.WriteString(printer(i.Code))
	if i.Line > 0 {
		sb.WriteString(color.New(color.FgHiBlack).Sprintf(" (line %d)", i.Line))
	}
	sb.WriteString(": ")
	sb.WriteString(i.Message)
	fmt.Fprintln(r.out, sb.String())

	if i.FixHint != "" {
		hint := strings.ReplaceAll(i.FixHint, "\n", "\n        ")
		fmt.Fprintln(r.out, color.New(color.FgHiBlack).Sprintf("      → %s", hint))
	}
}
