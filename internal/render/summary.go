package render

import "github.com/thoreinstein/bundlecheck/internal/health"

// Summary is the JSON document describing one validation invocation.
type Summary struct {
	Passed   bool             `json:"passed"`
	Files    int              `json:"files"`
	Failed   int              `json:"failed"`
	Errors   int              `json:"errors"`
	Warnings int              `json:"warnings"`
	Infos    int              `json:"infos"`
	Reports  []*health.Report `json:"reports"`
}

// Summarize counts the outcome of reports.
func Summarize(reports []*health.Report) *Summary {
	s := &Summary{
		Passed:  true,
		Files:   len(reports),
		Reports: reports,
	}
	if s.Reports == nil {
		s.Reports = []*health.Report{}
	}

	for _, r := range reports {
		if !r.Passed() {
			s.Passed = false
			s.Failed++
		}
		s.Errors += r.Count(health.SeverityError)
		s.Warnings += r.Count(health.SeverityWarning)
		s.Infos += r.Count(health.SeverityInfo)
	}
	return s
}
