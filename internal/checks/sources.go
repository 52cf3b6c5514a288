package checks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/thoreinstein/bundlecheck/internal/errors"
	"github.com/thoreinstein/bundlecheck/internal/health"
	"github.com/thoreinstein/bundlecheck/internal/logging"
)

const (
	// DefaultSourceTimeout bounds a single source request.
	DefaultSourceTimeout = 10 * time.Second

	// DefaultSourceConcurrency is the number of source requests in flight per bundle.
	DefaultSourceConcurrency = 4
)

// requestSchemes maps accepted source URL schemes to the scheme requested.
var requestSchemes = map[string]string{
	"http":      "http",
	"https":     "https",
	"git+http":  "http",
	"git+https": "https",
}

// SourceChecker checks that module sources served over HTTP respond.
type SourceChecker struct {
	client      *http.Client
	timeout     time.Duration
	concurrency int
	logger      *slog.Logger
}

// SourceOption configures a SourceChecker.
type SourceOption func(*SourceChecker)

// WithHTTPClient sets the client used for source requests.
func WithHTTPClient(c *http.Client) SourceOption {
	return func(p *SourceChecker) {
		if c != nil {
			p.client = c
		}
	}
}

// WithSourceTimeout bounds each request. Values <= 0 keep the default.
func WithSourceTimeout(d time.Duration) SourceOption {
	return func(p *SourceChecker) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithSourceConcurrency limits requests in flight. Values <= 0 keep the default.
func WithSourceConcurrency(n int) SourceOption {
	return func(p *SourceChecker) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithSourceLogger sets the logger for source check results.
func WithSourceLogger(l *slog.Logger) SourceOption {
	return func(p *SourceChecker) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewSourceChecker creates a SourceChecker.
func NewSourceChecker(opts ...SourceOption) *SourceChecker {
	p := &SourceChecker{
		client:      http.DefaultClient,
		timeout:     DefaultSourceTimeout,
		concurrency: DefaultSourceConcurrency,
		logger:      logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// sourceRef is one module entry that declares a source.
type sourceRef struct {
	ref    string // e.g. providers[2]
	source string
}

// Check requests every HTTP module source in the bundle. Issues come back in
// section then index order no matter which request finishes first.
func (p *SourceChecker) Check(ctx context.Context, in *health.Input) []health.Issue {
	refs := collectSources(in.Config)
	results := make([]*health.Issue, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, r := range refs {
		target, err := normalizeSource(r.source)
		if err != nil {
			results[i] = &health.Issue{
				Severity: health.SeverityError,
				Code:     CodeInvalidSourceURL,
				Message:  fmt.Sprintf("%s source %q is not a valid URL: %v", r.ref, r.source, err),
				FilePath: in.Path,
				FixHint:  "use a full URL such as git+https://github.com/org/repo@main",
			}
			continue
		}
		if target == "" {
			continue
		}

		g.Go(func() error {
			if failure := p.reach(gctx, target); failure != "" {
				results[i] = &health.Issue{
					Severity: health.SeverityWarning,
					Code:     CodeUnreachableSource,
					Message:  fmt.Sprintf("%s source %s is unreachable: %s", r.ref, r.source, failure),
					FilePath: in.Path,
					FixHint:  "check the URL and that the repository is public",
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	var issues []health.Issue
	for _, issue := range results {
		if issue != nil {
			issues = append(issues, *issue)
		}
	}
	return issues
}

// reach returns an empty string when url answers with a status below 400,
// and a description of the failure otherwise.
func (p *SourceChecker) reach(ctx context.Context, target string) string {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	status, err := p.request(ctx, http.MethodHead, target)
	if err == nil && (status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented) {
		status, err = p.request(ctx, http.MethodGet, target)
	}

	if err != nil {
		p.logger.Debug("source request failed", "url", target, "error", err)
		return err.Error()
	}
	p.logger.Debug("source reached", "url", target, "status", status)
	if status >= http.StatusBadRequest {
		return fmt.Sprintf("HTTP %d", status)
	}
	return ""
}

func (p *SourceChecker) request(ctx context.Context, method, target string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", "bundlecheck")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	return resp.StatusCode, nil
}

func collectSources(cfg map[string]any) []sourceRef {
	var refs []sourceRef
	for _, section := range moduleSections {
		entries, ok := cfg[section].([]any)
		if !ok {
			continue
		}
		for i, entry := range entries {
			m, ok := asMapping(entry)
			if !ok {
				continue
			}
			if src, ok := m["source"].(string); ok && strings.TrimSpace(src) != "" {
				refs = append(refs, sourceRef{
					ref:    fmt.Sprintf("%s[%d]", section, i),
					source: strings.TrimSpace(src),
				})
			}
		}
	}
	return refs
}

// normalizeSource turns a module source into the URL to request. Sources with
// schemes that are not fetched over HTTP return "" and no error. A trailing
// @ref on the last path segment and any fragment are dropped.
func normalizeSource(source string) (string, error) {
	scheme, _, found := strings.Cut(source, "://")
	if !found {
		return "", nil
	}
	reqScheme, ok := requestSchemes[strings.ToLower(scheme)]
	if !ok {
		return "", nil
	}

	u, err := url.Parse(reqScheme + source[len(scheme):])
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", errors.New("missing host")
	}

	if at := strings.LastIndex(u.Path, "@"); at > strings.LastIndex(u.Path, "/") {
		u.Path = u.Path[:at]
		u.RawPath = ""
	}
	u.Fragment = ""
	u.RawFragment = ""
	return u.String(), nil
}
