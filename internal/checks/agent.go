package checks

import (
	"context"
	"fmt"

	"github.com/thoreinstein/bundlecheck/internal/health"
)

// AgentRequiredFields validates the meta section of an agent file.
func AgentRequiredFields(_ context.Context, in *health.Input) []health.Issue {
	raw := in.Config["meta"]
	meta, ok := asMapping(raw)
	if !ok {
		return []health.Issue{{
			Severity: health.SeverityError,
			Code:     CodeInvalidMetaSection,
			Message:  fmt.Sprintf("meta must be a mapping, found %s", typeName(raw)),
			FilePath: in.Path,
			FixHint:  "add a meta section:\n  meta:\n    name: my-agent\n    description: What the agent does",
		}}
	}

	var issues []health.Issue
	if blankString(meta["name"]) {
		issues = append(issues, health.Issue{
			Severity: health.SeverityError,
			Code:     CodeMissingAgentName,
			Message:  "meta.name is required",
			FilePath: in.Path,
			FixHint:  `add the "name" field under meta`,
		})
	}
	if blankString(meta["description"]) {
		issues = append(issues, health.Issue{
			Severity: health.SeverityWarning,
			Code:     CodeMissingAgentDescription,
			Message:  "meta.description is not set",
			FilePath: in.Path,
			FixHint:  "describe when the agent should be used",
		})
	}
	return issues
}
