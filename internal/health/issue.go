package health

import (
	"fmt"
	"strings"
)

// Issue describes one defect found in a bundle file. Issues are values;
// once a check returns one it is never modified.
type Issue struct {
	// Severity indicates the impact of the issue.
	Severity Severity `json:"severity"`

	// Code is a short, stable identifier for the defect class,
	// e.g. MISSING_BUNDLE_NAME.
	Code string `json:"code"`

	// Message is a human-readable explanation.
	Message string `json:"message"`

	// FilePath locates the offending file (optional).
	FilePath string `json:"file_path,omitempty"`

	// Line is the 1-indexed line number, or 0 when unknown.
	Line int `json:"line,omitempty"`

	// FixHint is an actionable remediation (optional).
	FixHint string `json:"fix_hint,omitempty"`
}

// IssueKey distinguishes issues from one another.
type IssueKey struct {
	Code     string
	FilePath string
	Line     int
	Message  string
}

// Key returns the identity of the issue.
func (i Issue) Key() IssueKey {
	return IssueKey{
		Code:     i.Code,
		FilePath: i.FilePath,
		Line:     i.Line,
		Message:  i.Message,
	}
}

// Location formats FilePath and Line as "path:line", omitting what is unset.
func (i Issue) Location() string {
	switch {
	case i.FilePath != "" && i.Line > 0:
		return fmt.Sprintf("%s:%d", i.FilePath, i.Line)
	case i.FilePath != "":
		return i.FilePath
	case i.Line > 0:
		return fmt.Sprintf("line %d", i.Line)
	default:
		return ""
	}
}

// Error implements the error interface.
func (i Issue) Error() string {
	var sb strings.Builder
	sb.WriteString(i.Severity.String())
	sb.WriteString(" ")
	sb.WriteString(i.Code)
	if loc := i.Location(); loc != "" {
		sb.WriteString(" at ")
		sb.WriteString(loc)
	}
	sb.WriteString(": ")
	sb.WriteString(i.Message)
	return sb.String()
}
