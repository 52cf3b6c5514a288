package health

import "encoding/json"

// Report aggregates the issues found in one bundle file together with the
// names of the checks that executed. A Report is built by a single
// Orchestrator.Run call and belongs to the caller once returned.
type Report struct {
	// BundlePath is the file that was validated.
	BundlePath string

	// Mode is the execution mode the run used.
	Mode Mode

	// Kind is the classification of the parsed front matter. It is empty
	// when the run stopped before parsing succeeded.
	Kind Kind

	// Issues are ordered by check execution.
	Issues []Issue

	// ChecksRun lists executed checks in execution order.
	ChecksRun []string

	// ChecksSkipped lists checks that do not apply to Kind.
	ChecksSkipped []string
}

func newReport(path string, mode Mode) *Report {
	return &Report{
		BundlePath:    path,
		Mode:          mode,
		Issues:        []Issue{},
		ChecksRun:     []string{},
		ChecksSkipped: []string{},
	}
}

// HasErrors returns true if any issue has SeverityError.
func (r *Report) HasErrors() bool {
	if r == nil {
		return false
	}
	for _, i := range r.Issues {
		if i.Severity.Blocking() {
			return true
		}
	}
	return false
}

// HasWarnings returns true if any issue has SeverityWarning.
func (r *Report) HasWarnings() bool {
	return r.Count(SeverityWarning) > 0
}

// Passed reports whether the bundle has no error-level issues. Warnings and
// info never fail a bundle.
func (r *Report) Passed() bool {
	return !r.HasErrors()
}

// Count returns the number of issues with the given severity.
func (r *Report) Count(s Severity) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, i := range r.Issues {
		if i.Severity == s {
			n++
		}
	}
	return n
}

// Filter returns the issues with the given severity.
func (r *Report) Filter(s Severity) []Issue {
	if r == nil {
		return nil
	}
	var res []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			res = append(res, i)
		}
	}
	return res
}

// Codes returns the issue codes in report order.
func (r *Report) Codes() []string {
	if r == nil {
		return nil
	}
	codes := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		codes[i] = issue.Code
	}
	return codes
}

func (r *Report) add(issues ...Issue) {
	r.Issues = append(r.Issues, issues...)
}

// reportJSON is the wire shape of a Report, including the derived flags.
type reportJSON struct {
	BundlePath    string   `json:"bundle_path"`
	Mode          Mode     `json:"mode"`
	Kind          Kind     `json:"kind,omitempty"`
	Passed        bool     `json:"passed"`
	HasErrors     bool     `json:"has_errors"`
	Issues        []Issue  `json:"issues"`
	ChecksRun     []string `json:"checks_run"`
	ChecksSkipped []string `json:"checks_skipped,omitempty"`
}

// MarshalJSON includes the derived passed and has_errors flags.
func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(reportJSON{
		BundlePath:    r.BundlePath,
		Mode:          r.Mode,
		Kind:          r.Kind,
		Passed:        r.Passed(),
		HasErrors:     r.HasErrors(),
		Issues:        r.Issues,
		ChecksRun:     r.ChecksRun,
		ChecksSkipped: r.ChecksSkipped,
	})
}

// UnmarshalJSON restores a Report written by MarshalJSON. The derived flags
// are recomputed from the issues rather than trusted.
func (r *Report) UnmarshalJSON(data []byte) error {
	var raw struct {
		reportJSON
		Mode string `json:"mode"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	mode, err := ParseMode(raw.Mode)
	if err != nil {
		return err
	}
	*r = Report{
		BundlePath:    raw.BundlePath,
		Mode:          mode,
		Kind:          raw.Kind,
		Issues:        raw.Issues,
		ChecksRun:     raw.ChecksRun,
		ChecksSkipped: raw.ChecksSkipped,
	}
	return nil
}
