// Package errors provides error handling conventions for the bundlecheck CLI.
//
// It re-exports the wrapping helpers from github.com/cockroachdb/errors,
// defines sentinel errors for common failure conditions, and an ExitError
// type that carries a process exit code.
//
// # Exit Codes
//
//   - ExitSuccess (0): every bundle passed
//   - ExitFailed (1): at least one error-level issue
//   - ExitUsage (2): invalid invocation
//
// # ExitError
//
//	err := errors.NewUsageError(errors.New("unknown mode"), "Use --mode fast or comprehensive")
//	os.Exit(errors.ExitCode(err))
package errors
