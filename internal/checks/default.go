package checks

import "github.com/thoreinstein/bundlecheck/internal/health"

// NewDefaultOrchestrator returns a new Orchestrator with the structural
// checks registered as fast checks, in order: front-matter syntax, required
// fields, module list format. The three run for every parsed file, so
// ChecksRun always lists all of them. Each call builds an independent
// instance.
func NewDefaultOrchestrator(opts ...health.Option) *health.Orchestrator {
	o := health.NewOrchestrator(opts...)
	registerDefaults(o)
	return o
}

func registerDefaults(o *health.Orchestrator) {
	o.RegisterFastCheck(NameFrontMatterSyntax, FrontMatterSyntax)
	o.RegisterFastCheck(NameRequiredFields, RequiredFields)
	o.RegisterFastCheck(NameModuleListFormat, ModuleListFormat)
}
