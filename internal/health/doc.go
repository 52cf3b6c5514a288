// Package health runs ordered checks against a single bundle file and
// collects what they find into a Report.
//
// An [Orchestrator] owns two ordered collections of checks. Fast checks
// inspect only the parsed file; slow checks may reach the network and run
// only in [ModeComprehensive]. [Orchestrator.Run] reads and parses the file
// once, classifies its front matter as a bundle or agent ([Kind]), and hands
// the same read-only [Input] to every applicable check:
//
//	o := health.NewOrchestrator()
//	o.RegisterFastCheck("required-fields", checkRequired, health.ForKinds(health.KindBundle))
//	report := o.Run(ctx, "bundle.md", health.ModeFast)
//	if !report.Passed() {
//		// report.Issues holds at least one SeverityError issue
//	}
//
// Missing files, unreadable files, and malformed front matter each end the
// run with a single issue; Run never returns an error.
package health
