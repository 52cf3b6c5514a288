// Package render writes validation reports for people and for machines.
//
// Text output groups each file's issues by severity and colors them when
// the writer is a terminal. JSON output is a single [Summary] document that
// carries every issue field plus the derived passed and has_errors flags.
package render
