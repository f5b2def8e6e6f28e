// Package diag collects parse and resolution diagnostics.
//
// GIR files are machine-generated and routinely imperfect, so almost
// nothing in the core is fatal: problems are reported here and the run
// continues with a best-effort graph. The reporter is passed explicitly
// through parse and resolve calls; there is no process-wide state.
package diag

import (
	"log/slog"
	"sync/atomic"
)

// Reporter records warnings and errors emitted during a parse+resolve run.
// Counts are atomic so renderers reading a frozen graph may still report.
type Reporter struct {
	logger   *slog.Logger
	warnings atomic.Int64
	errors   atomic.Int64
}

// New returns a Reporter backed by logger. A nil logger uses slog.Default.
func New(logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{logger: logger}
}

// Debugf logs a debug message with key-value attributes.
func (r *Reporter) Debugf(msg string, args ...any) {
	r.logger.Debug(msg, args...)
}

// Infof logs an informational message with key-value attributes.
func (r *Reporter) Infof(msg string, args ...any) {
	r.logger.Info(msg, args...)
}

// Warnf records a warning. Warnings indicate degraded output: an
// unresolvable cross-reference, a truncated ancestor chain, and so on.
func (r *Reporter) Warnf(msg string, args ...any) {
	r.warnings.Add(1)
	r.logger.Warn(msg, args...)
}

// Errorf records an error. Errors indicate skipped input: a declaration
// missing a required attribute, a dependency not found in the search paths.
func (r *Reporter) Errorf(msg string, args ...any) {
	r.errors.Add(1)
	r.logger.Error(msg, args...)
}

// Warnings returns the number of warnings recorded so far.
func (r *Reporter) Warnings() int { return int(r.warnings.Load()) }

// Errors returns the number of errors recorded so far.
func (r *Reporter) Errors() int { return int(r.errors.Load()) }

// Failed reports whether the run should exit nonzero: any error, or any
// warning when fatalWarnings is set.
func (r *Reporter) Failed(fatalWarnings bool) bool {
	if r.Errors() > 0 {
		return true
	}
	return fatalWarnings && r.Warnings() > 0
}
