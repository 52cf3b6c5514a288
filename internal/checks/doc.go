// Package checks provides the bundle checks run by a health.Orchestrator.
//
// [NewDefaultOrchestrator] registers the structural checks every bundle must
// pass. [New] adds the optional recommended-field, agent, body, and
// source-reachability checks on top, gated by [Options].
package checks
