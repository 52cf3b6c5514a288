package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/bundlecheck/internal/health"
)

func init() {
	color.NoColor = true
}

func sampleReports() []*health.Report {
	return []*health.Report{
		{
			BundlePath: "good.md",
			Kind:       health.KindBundle,
			Issues:     []health.Issue{},
			ChecksRun:  []string{"required-fields"},
		},
		{
			BundlePath: "bad.md",
			Kind:       health.KindBundle,
			Issues: []health.Issue{
				{Severity: health.SeverityError, Code: "MISSING_BUNDLE_NAME", Message: "bundle.name is required", FilePath: "bad.md", FixHint: "add name"},
				{Severity: health.SeverityWarning, Code: "MISSING_BUNDLE_VERSION", Message: "bundle.version is not set", FilePath: "bad.md"},
				{Severity: health.SeverityError, Code: "YAML_SYNTAX", Message: "bad indent", FilePath: "bad.md", Line: 3, FixHint: "line one\nline two"},
			},
			ChecksRun: []string{"required-fields"},
		},
	}
}

func TestReporter_Report(t *testing.T) {
	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewReporter(&buf, FormatText).Report(sampleReports()))

		output := buf.String()
		for _, want := range []string{
			"✓ good.md (bundle)",
			"✗ bad.md (bundle)",
			"Errors:",
			"• MISSING_BUNDLE_NAME: bundle.name is required",
			"→ add name",
			"• YAML_SYNTAX (line 3): bad indent",
			"→ line one\n        line two",
			"Warnings:",
			"✗ Validation failed: 2 file(s), 2 error(s), 1 warning(s)",
		} {
			assert.Contains(t, output, want)
		}
		// Errors are listed before warnings.
		assert.Less(t, strings.Index(output, "YAML_SYNTAX"), strings.Index(output, "MISSING_BUNDLE_VERSION"))
	})

	t.Run("quiet text hides passing files", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewReporter(&buf, FormatText, Quiet(true)).Report(sampleReports()))

		assert.NotContains(t, buf.String(), "good.md")
		assert.Contains(t, buf.String(), "bad.md")
	})

	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewReporter(&buf, FormatJSON).Report(sampleReports()))

		var decoded struct {
			Passed  bool `json:"passed"`
			Files   int  `json:"files"`
			Failed  int  `json:"failed"`
			Errors  int  `json:"errors"`
			Reports []struct {
				BundlePath string         `json:"bundle_path"`
				Passed     bool           `json:"passed"`
				HasErrors  bool           `json:"has_errors"`
				Issues     []health.Issue `json:"issues"`
			} `json:"reports"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

		assert.False(t, decoded.Passed)
		assert.Equal(t, 2, decoded.Files)
		assert.Equal(t, 1, decoded.Failed)
		assert.Equal(t, 2, decoded.Errors)
		require.Len(t, decoded.Reports, 2)
		assert.True(t, decoded.Reports[0].Passed)
		assert.True(t, decoded.Reports[1].HasErrors)
		require.Len(t, decoded.Reports[1].Issues, 3)
		assert.Equal(t, sampleReports()[1].Issues, decoded.Reports[1].Issues)
	})

	t.Run("all passed text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewReporter(&buf, FormatText).Report(sampleReports()[:1]))
		assert.Contains(t, buf.String(), "✓ Validation passed: 1 file(s)")
	})

	t.Run("no files", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewReporter(&buf, FormatText).Report(nil))
		assert.Contains(t, buf.String(), "No bundle files to validate")

		buf.Reset()
		require.NoError(t, NewReporter(&buf, FormatJSON).Report(nil))
		assert.Contains(t, buf.String(), `"reports": []`)
		assert.Contains(t, buf.String(), `"passed": true`)
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleReports())
	assert.False(t, s.Passed)
	assert.Equal(t, 2, s.Files)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 2, s.Errors)
	assert.Equal(t, 1, s.Warnings)
	assert.Equal(t, 0, s.Infos)
}
