package checks

import (
	"context"
	"fmt"

	"github.com/thoreinstein/bundlecheck/internal/health"
)

// ModuleListFormat validates the providers, tools, and hooks sections. Each
// is optional; when present it must be a list of mappings that carry a
// module key. Every defect is reported, in section then index order. Agent
// files yield no issues.
func ModuleListFormat(_ context.Context, in *health.Input) []health.Issue {
	if in.Kind == health.KindAgent {
		return nil
	}

	var issues []health.Issue
	for _, section := range moduleSections {
		raw, ok := in.Config[section]
		if !ok {
			continue
		}
		issues = append(issues, checkModuleList(in.Path, section, raw)...)
	}
	return issues
}

func checkModuleList(path, section string, raw any) []health.Issue {
	entries, ok := raw.([]any)
	if !ok {
		return []health.Issue{{
			Severity: health.SeverityError,
			Code:     CodeInvalidModuleList,
			Message:  fmt.Sprintf("%s must be a list, found %s", section, typeName(raw)),
			FilePath: path,
			FixHint:  fmt.Sprintf("write %s as a list:\n  %s:\n    - module: <module-name>", section, section),
		}}
	}

	var issues []health.Issue
	for i, entry := range entries {
		ref := fmt.Sprintf("%s[%d]", section, i)

		m, ok := asMapping(entry)
		if !ok {
			issues = append(issues, health.Issue{
				Severity: health.SeverityError,
				Code:     CodeInvalidModuleFormat,
				Message:  fmt.Sprintf("%s must be a mapping, found %s", ref, typeName(entry)),
				FilePath: path,
				FixHint:  "use the mapping form: - module: " + scalarText(entry),
			})
			continue
		}

		if _, ok := m["module"]; !ok {
			issues = append(issues, health.Issue{
				Severity: health.SeverityError,
				Code:     CodeMissingModuleKey,
				Message:  fmt.Sprintf("%s has no module key", ref),
				FilePath: path,
				FixHint:  "add a module field naming the module to load",
			})
		}
	}
	return issues
}
