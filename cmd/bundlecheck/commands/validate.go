package commands

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sourcegraph/conc/iter"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/bundlecheck/internal/checks"
	"github.com/thoreinstein/bundlecheck/internal/config"
	"github.com/thoreinstein/bundlecheck/internal/discovery"
	"github.com/thoreinstein/bundlecheck/internal/errors"
	"github.com/thoreinstein/bundlecheck/internal/health"
	"github.com/thoreinstein/bundlecheck/internal/logging"
	"github.com/thoreinstein/bundlecheck/internal/render"
	"github.com/thoreinstein/bundlecheck/internal/watch"
	"github.com/thoreinstein/bundlecheck/pkg/fileutil"
)

var (
	validateMode          string
	validateComprehensive bool
	validateFormat        string
	validateJSON          bool
	validateOutput        string
	validateWatch         bool
	validateInteractive   bool
	validateNoExtended    bool
	validateJobs          int
)

func init() {
	validateCmd.Flags().StringVar(&validateMode, "mode", "",
		"validation mode: fast, comprehensive (default from config)")
	validateCmd.Flags().BoolVar(&validateComprehensive, "comprehensive", false,
		"shorthand for --mode comprehensive")
	validateCmd.Flags().StringVarP(&validateFormat, "format", "f", "",
		"output format: text, json (default from config)")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false,
		"shorthand for --format json")
	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", "",
		"also write the JSON summary to this file")
	validateCmd.Flags().BoolVarP(&validateWatch, "watch", "w", false,
		"revalidate files when they change")
	validateCmd.Flags().BoolVarP(&validateInteractive, "interactive", "i", false,
		"pick the files to validate with a fuzzy finder")
	validateCmd.Flags().BoolVar(&validateNoExtended, "no-extended", false,
		"run only the default checks")
	validateCmd.Flags().IntVarP(&validateJobs, "jobs", "j", runtime.GOMAXPROCS(0),
		"number of files validated concurrently")

	validateCmd.MarkFlagsMutuallyExclusive("mode", "comprehensive")
	validateCmd.MarkFlagsMutuallyExclusive("format", "json")
	validateCmd.MarkFlagsMutuallyExclusive("watch", "output")

	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [path|glob]...",
	Short: "Validate bundle files",
	Long: `Validate bundle files and report every issue found.

Arguments may be files, directories, or doublestar globs. Directories are
searched for files matching the configured include patterns. With no
arguments the current directory is searched.

Exit codes:
  0  every file passed (warnings and info do not fail a run)
  1  at least one file has an error-level issue
  2  invalid usage or configuration`,
	Example: `  bundlecheck validate
  bundlecheck validate bundles/ agents/reviewer.md
  bundlecheck validate 'bundles/**/*.md' --comprehensive
  bundlecheck validate --json -o report.json
  bundlecheck validate --watch bundles/`,
	RunE: runValidate,
}

// validateSettings is the resolved combination of config and flags.
type validateSettings struct {
	mode   health.Mode
	format render.Format
	opts   checks.Options
	finder *discovery.Finder
	jobs   int
}

func runValidate(cmd *cobra.Command, args []string) error {
	s, err := resolveValidateSettings(cmd)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"."}
	}

	files, err := s.finder.Find(args)
	if err != nil {
		return errors.NewUsageError(err, "")
	}
	if len(files) == 0 {
		return errors.NewUsageError(errors.ErrNoFiles,
			"check the paths, or the include and ignore patterns in your config")
	}

	if validateInteractive {
		files, err = selectFiles(files)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return nil
		}
	}

	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	s.opts.Logger = logger
	orch := checks.New(s.opts)
	reporter := render.NewReporter(cmd.OutOrStdout(), s.format, render.Quiet(quiet))

	if validateWatch {
		return watchAndValidate(ctx, orch, reporter, s, args, files)
	}

	reports := validateFiles(ctx, orch, s.mode, s.jobs, files)
	if err := reporter.Report(reports); err != nil {
		return err
	}

	summary := render.Summarize(reports)
	if validateOutput != "" {
		if err := os.MkdirAll(filepath.Dir(validateOutput), 0o755); err != nil {
			return errors.Wrap(err, "creating report directory")
		}
		if err := fileutil.AtomicWriteJSON(validateOutput, summary); err != nil {
			return errors.Wrap(err, "writing report")
		}
		logger.Info("report written", "path", validateOutput)
	}

	if !summary.Passed {
		return errors.NewFailedError(errors.ErrValidationFailed)
	}
	return nil
}

// resolveValidateSettings layers explicitly set flags over the loaded config.
func resolveValidateSettings(cmd *cobra.Command) (*validateSettings, error) {
	cfg := loadedConfig
	if cfg == nil {
		cfg = &config.Config{}
	}

	modeName := cfg.Mode
	if cmd.Flags().Changed("mode") {
		modeName = validateMode
	}
	if validateComprehensive {
		modeName = health.ModeComprehensive.String()
	}
	if modeName == "" {
		modeName = health.ModeFast.String()
	}
	mode, err := health.ParseMode(modeName)
	if err != nil {
		return nil, errors.NewUsageError(err, "valid modes: fast, comprehensive")
	}

	formatName := cfg.Format
	if cmd.Flags().Changed("format") {
		formatName = validateFormat
	}
	if validateJSON {
		formatName = string(render.FormatJSON)
	}
	if formatName == "" {
		formatName = string(render.FormatText)
	}
	format, err := render.ParseFormat(formatName)
	if err != nil {
		return nil, errors.NewUsageError(err, "valid formats: text, json")
	}

	if validateJobs < 1 {
		return nil, errors.NewUsageError(errors.Newf("--jobs must be at least 1, got %d", validateJobs), "")
	}

	finder, err := discovery.New(discovery.Options{
		Include: cfg.Include,
		Ignore:  cfg.Ignore,
	})
	if err != nil {
		return nil, errors.NewConfigError(err)
	}

	opts := checks.Options{
		Recommended:      cfg.Checks.Recommended,
		Agent:            cfg.Checks.Agent,
		Body:             cfg.Checks.Body,
		Sources:          cfg.Checks.Sources,
		SourceTimeout:     cfg.Network.Timeout,
		SourceConcurrency: cfg.Network.Concurrency,
		MaxFileSize:      cfg.Limits.MaxFileSize,
	}
	if validateNoExtended {
		opts = checks.Options{MaxFileSize: cfg.Limits.MaxFileSize}
	}

	return &validateSettings{
		mode:   mode,
		format: format,
		opts:   opts,
		finder: finder,
		jobs:   validateJobs,
	}, nil
}

// validateFiles runs the orchestrator over files concurrently. Reports are
// returned in the order of files.
func validateFiles(ctx context.Context, orch *health.Orchestrator, mode health.Mode, jobs int, files []string) []*health.Report {
	mapper := iter.Mapper[string, *health.Report]{MaxGoroutines: jobs}
	return mapper.Map(files, func(path *string) *health.Report {
		return orch.Run(ctx, *path, mode)
	})
}

// watchAndValidate reports an initial run, then revalidates changed files
// until ctx is cancelled.
func watchAndValidate(ctx context.Context, orch *health.Orchestrator, reporter *render.Reporter, s *validateSettings, args, files []string) error {
	logger := logging.FromContext(ctx)

	if err := reporter.Report(validateFiles(ctx, orch, s.mode, s.jobs, files)); err != nil {
		return err
	}

	w, err := watch.New(watchRoots(args), watch.WithLogger(logger), watch.WithFilter(notHidden))
	if err != nil {
		return errors.NewUsageError(err, "")
	}
	defer w.Close()

	logger.Info("watching for changes", "paths", len(args))
	err = w.Run(ctx, func(changed []string) {
		// Re-expand so new files are picked up and ignored files stay out.
		current, err := s.finder.Find(args)
		if err != nil {
			logger.Warn("re-expanding paths", "error", err)
			return
		}
		known := make(map[string]bool, len(current))
		for _, p := range current {
			known[filepath.Clean(p)] = true
		}

		targets := make([]string, 0, len(changed))
		for _, p := range changed {
			if known[filepath.Clean(p)] {
				targets = append(targets, p)
			}
		}
		if len(targets) == 0 {
			return
		}

		logger.Debug("revalidating", "files", targets)
		if err := reporter.Report(validateFiles(ctx, orch, s.mode, s.jobs, targets)); err != nil {
			logger.Error("writing report", "error", err)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// watchRoots maps glob arguments to the directory their pattern starts in.
func watchRoots(args []string) []string {
	roots := make([]string, 0, len(args))
	for _, arg := range args {
		if _, err := os.Stat(arg); err != nil {
			base, _ := doublestar.SplitPattern(filepath.ToSlash(arg))
			arg = filepath.FromSlash(base)
		}
		if !slices.Contains(roots, arg) {
			roots = append(roots, arg)
		}
	}
	return roots
}

// notHidden drops editor swap and backup files.
func notHidden(path string) bool {
	name := filepath.Base(path)
	return !strings.HasPrefix(name, ".") && !strings.HasSuffix(name, "~")
}
