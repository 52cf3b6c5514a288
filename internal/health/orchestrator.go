package health

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"

	"github.com/thoreinstein/bundlecheck/internal/errors"
	"github.com/thoreinstein/bundlecheck/internal/logging"
	"github.com/thoreinstein/bundlecheck/pkg/fileutil"
	"github.com/thoreinstein/bundlecheck/pkg/frontmatter"
)

// Issue codes produced by the orchestrator itself.
const (
	CodeFileNotFound       = "FILE_NOT_FOUND"
	CodeFileReadError      = "FILE_READ_ERROR"
	CodeYAMLSyntax         = "YAML_SYNTAX"
	CodeTOMLSyntax         = "TOML_SYNTAX"
	CodeCheckInternalError = "CHECK_INTERNAL_ERROR"
)

const syntaxFixHint = "common causes: bad indentation, unquoted special characters (: # @ ` | >), " +
	"tab characters used for indentation"

// Input is what every check receives. Checks must treat it as read-only;
// the same Input is shared by all checks of one run.
type Input struct {
	// Config is the decoded front-matter mapping.
	Config map[string]any

	// Body is the text after the front matter.
	Body string

	// Path is the bundle file being validated.
	Path string

	// Kind is the classification of Config.
	Kind Kind
}

// CheckFunc inspects one parsed bundle and returns the issues it found, in a
// deterministic order. Fast checks ignore ctx; slow checks use it to bound
// their own network I/O.
type CheckFunc func(ctx context.Context, in *Input) []Issue

// Speed distinguishes local checks from network-dependent ones.
type Speed string

const (
	// SpeedFast checks only need the parsed file.
	SpeedFast Speed = "fast"
	// SpeedSlow checks need network access or external resources.
	SpeedSlow Speed = "slow"
)

// CheckInfo describes a registered check.
type CheckInfo struct {
	Name  string `json:"name"`
	Speed Speed  `json:"speed"`
	Kinds []Kind `json:"kinds"`
}

type registeredCheck struct {
	name  string
	fn    CheckFunc
	kinds []Kind
}

func (c registeredCheck) appliesTo(k Kind) bool {
	return len(c.kinds) == 0 || slices.Contains(c.kinds, k)
}

// CheckOption configures a single check registration.
type CheckOption func(*registeredCheck)

// ForKinds restricts a check to files of the given kinds. Without it a check
// applies to every kind.
func ForKinds(kinds ...Kind) CheckOption {
	return func(c *registeredCheck) {
		c.kinds = append(c.kinds, kinds...)
	}
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger used for run tracing.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMaxFileSize sets the largest file Run will read. Values <= 0 use
// fileutil.MaxFileSize.
func WithMaxFileSize(n int64) Option {
	return func(o *Orchestrator) {
		o.maxFileSize = n
	}
}

// Orchestrator owns the ordered fast and slow check collections and drives a
// validation run.
//
// Registration must finish before Run is called concurrently; the
// collections are not locked.
type Orchestrator struct {
	fast        []registeredCheck
	slow        []registeredCheck
	logger      *slog.Logger
	maxFileSize int64
}

// NewOrchestrator creates an Orchestrator with no checks registered.
func NewOrchestrator(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		fast:   make([]registeredCheck, 0),
		slow:   make([]registeredCheck, 0),
		logger: logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RegisterFastCheck appends a local check. Registering the same name twice
// runs the check twice.
func (o *Orchestrator) RegisterFastCheck(name string, fn CheckFunc, opts ...CheckOption) {
	o.fast = append(o.fast, newRegisteredCheck(name, fn, opts))
}

// RegisterSlowCheck appends a network-dependent check, executed only in
// ModeComprehensive.
func (o *Orchestrator) RegisterSlowCheck(name string, fn CheckFunc, opts ...CheckOption) {
	o.slow = append(o.slow, newRegisteredCheck(name, fn, opts))
}

func newRegisteredCheck(name string, fn CheckFunc, opts []CheckOption) registeredCheck {
	c := registeredCheck{name: name, fn: fn}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Checks describes every registered check, fast checks first.
func (o *Orchestrator) Checks() []CheckInfo {
	infos := make([]CheckInfo, 0, len(o.fast)+len(o.slow))
	for _, c := range o.fast {
		infos = append(infos, checkInfo(c, SpeedFast))
	}
	for _, c := range o.slow {
		infos = append(infos, checkInfo(c, SpeedSlow))
	}
	return infos
}

func checkInfo(c registeredCheck, speed Speed) CheckInfo {
	kinds := c.kinds
	if len(kinds) == 0 {
		kinds = AllKinds()
	}
	return CheckInfo{Name: c.name, Speed: speed, Kinds: slices.Clone(kinds)}
}

// Run validates the bundle at path. It never returns an error: a missing
// file, an unreadable file, or unparseable front matter each produce a
// single issue and end the run before any check executes.
func (o *Orchestrator) Run(ctx context.Context, path string, mode Mode) *Report {
	report := newReport(path, mode)
	logger := o.logger.With("path", path, "mode", mode.String())

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("bundle file not found")
			report.add(Issue{
				Severity: SeverityError,
				Code:     CodeFileNotFound,
				Message:  "file not found: " + path,
				FilePath: path,
				FixHint:  "check the path",
			})
			return report
		}
		report.add(readErrorIssue(path, err))
		return report
	}

	text, err := fileutil.ReadText(path, o.maxFileSize)
	if err != nil {
		logger.Debug("bundle file unreadable", "error", err)
		report.add(readErrorIssue(path, err))
		return report
	}

	cfg, body, err := frontmatter.Split(text)
	if err != nil {
		logger.Debug("front matter rejected", "error", err)
		report.add(syntaxIssue(path, err))
		return report
	}

	in := &Input{
		Config: cfg,
		Body:   body,
		Path:   path,
		Kind:   Classify(cfg),
	}
	report.Kind = in.Kind
	logger = logger.With("kind", string(in.Kind))

	o.runChecks(ctx, logger, report, o.fast, in)
	if mode == ModeComprehensive {
		o.runChecks(ctx, logger, report, o.slow, in)
	}

	logger.Debug("validation finished",
		"issues", len(report.Issues),
		"checks_run", len(report.ChecksRun),
		"passed", report.Passed())
	return report
}

func (o *Orchestrator) runChecks(ctx context.Context, logger *slog.Logger, report *Report, checks []registeredCheck, in *Input) {
	for _, c := range checks {
		if !c.appliesTo(in.Kind) {
			report.ChecksSkipped = append(report.ChecksSkipped, c.name)
			continue
		}

		report.ChecksRun = append(report.ChecksRun, c.name)
		issues := invoke(ctx, c, in)
		logger.Debug("check executed", "check", c.name, "issues", len(issues))
		report.add(issues...)
	}
}

// invoke runs one check, converting a panic into a CHECK_INTERNAL_ERROR
// issue so the remaining checks still execute.
func invoke(ctx context.Context, c registeredCheck, in *Input) (issues []Issue) {
	defer func() {
		if r := recover(); r != nil {
			issues = []Issue{{
				Severity: SeverityError,
				Code:     CodeCheckInternalError,
				Message:  fmt.Sprintf("check %q failed: %v", c.name, r),
				FilePath: in.Path,
				FixHint:  "this is a defect in the check, not in the bundle; report it with the file attached",
			}}
		}
	}()
	return c.fn(ctx, in)
}

func readErrorIssue(path string, err error) Issue {
	return Issue{
		Severity: SeverityError,
		Code:     CodeFileReadError,
		Message:  fmt.Sprintf("cannot read file: %v", err),
		FilePath: path,
		FixHint:  "check file permissions and that the file is UTF-8 text",
	}
}

func syntaxIssue(path string, err error) Issue {
	issue := Issue{
		Severity: SeverityError,
		Code:     CodeYAMLSyntax,
		Message:  "invalid front matter: " + err.Error(),
		FilePath: path,
		FixHint:  syntaxFixHint,
	}

	var se *frontmatter.SyntaxError
	if errors.As(err, &se) {
		if se.Format == frontmatter.FormatTOML {
			issue.Code = CodeTOMLSyntax
			issue.FixHint = "check TOML table headers, quoting, and key = value syntax"
		}
		issue.Message = fmt.Sprintf("invalid %s front matter: %s", se.Format, se.Message)
		if se.Position != nil {
			issue.Line = se.Position.Line + 1
		}
	}
	return issue
}
