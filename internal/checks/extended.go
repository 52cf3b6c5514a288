package checks

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/thoreinstein/bundlecheck/internal/health"
)

// Options selects the checks New registers beyond the defaults.
type Options struct {
	// Recommended enables recommended-fields.
	Recommended bool

	// Agent enables agent-required-fields.
	Agent bool

	// Body enables body-content.
	Body bool

	// Sources enables the slow source-reachability check.
	Sources bool

	// SourceTimeout bounds each source request.
	SourceTimeout time.Duration

	// SourceConcurrency limits source requests in flight per bundle.
	SourceConcurrency int

	// HTTPClient is used for source requests. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Logger receives orchestrator and source check debug output.
	Logger *slog.Logger

	// MaxFileSize limits the bundle files read.
	MaxFileSize int64
}

// DefaultOptions enables every check.
func DefaultOptions() Options {
	return Options{
		Recommended:      true,
		Agent:            true,
		Body:             true,
		Sources:          true,
		SourceTimeout:     DefaultSourceTimeout,
		SourceConcurrency: DefaultSourceConcurrency,
	}
}

// New returns an Orchestrator with the default checks followed by the
// optional checks enabled in opts.
func New(opts Options) *health.Orchestrator {
	o := health.NewOrchestrator(
		health.WithLogger(opts.Logger),
		health.WithMaxFileSize(opts.MaxFileSize),
	)
	registerDefaults(o)

	if opts.Recommended {
		o.RegisterFastCheck(NameRecommendedFields, RecommendedFields, health.ForKinds(health.KindBundle))
	}
	if opts.Agent {
		o.RegisterFastCheck(NameAgentRequiredFields, AgentRequiredFields, health.ForKinds(health.KindAgent))
	}
	if opts.Body {
		o.RegisterFastCheck(NameBodyContent, BodyContent)
	}
	if opts.Sources {
		sc := NewSourceChecker(
			WithHTTPClient(opts.HTTPClient),
			WithSourceTimeout(opts.SourceTimeout),
			WithSourceConcurrency(opts.SourceConcurrency),
			WithSourceLogger(opts.Logger),
		)
		o.RegisterSlowCheck(NameSourceReachability, sc.Check, health.ForKinds(health.KindBundle))
	}
	return o
}
