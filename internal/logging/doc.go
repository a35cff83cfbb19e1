// Package logging constructs the slog loggers used across rosterly.
//
// It offers console and JSON handlers selected by configuration, fans output
// to stdout and the run log under the configured log directory, and
// re-exports attribute constructors so call sites do not import log/slog
// directly. Matching and allocation code leans on the attribute helpers to
// emit a per-candidate audit trail.
package logging
