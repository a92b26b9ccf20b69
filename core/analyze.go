package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vainuio/vainupylinter/internal/contract"
	"github.com/vainuio/vainupylinter/internal/logging"
	"github.com/vainuio/vainupylinter/schema"
)

// runPylint lints one file and reports whether statistics were produced.
// Non-Python and missing paths are skipped without failing. Any linter error
// puts the file on the failed list and the batch carries on.
func (r *Runner) runPylint(ctx context.Context, fname string, verdict *schema.FileVerdict) (schema.Stats, bool) {
	if !contract.IsPythonSource(fname) {
		verdict.Outcome = schema.SkippedOutcome
		return schema.Stats{}, false
	}
	if !contract.FileExists(fname) {
		r.logger.Info(separator)
		r.logger.Info(fmt.Sprintf("FILE %s DOES NOT EXIST.", fname))
		r.logger.Info(separator)
		r.logger.Info("")
		verdict.Outcome = schema.MissingOutcome
		return schema.Stats{}, false
	}

	r.logger.Info(fname + "\n")
	r.result.FName = fname

	stats, err := r.lint(ctx, fname)
	if err != nil {
		r.logger.Warn(separator)
		r.logger.Warn(fmt.Sprintf("PYLINT CRASHED WHILE HANDLING %s", fname))
		r.logger.Warn(fmt.Sprintf("%T: %v", err, err))
		r.logger.Warn(separator)
		r.logger.Info("")
		r.result.FailedFiles = append(r.result.FailedFiles, fname)
		verdict.Outcome = schema.CrashedOutcome
		verdict.CrashMessage = err.Error()
		return schema.Stats{}, false
	}

	r.result.Stats = &stats
	verdict.HasScore = stats.HasScore
	verdict.Score = stats.Score()
	return stats, true
}

// lint captures the tool's console output into the logger for exactly one call.
func (r *Runner) lint(ctx context.Context, fname string) (schema.Stats, error) {
	out := logging.NewLineWriter(r.logger, slog.LevelInfo)
	defer func() { _ = out.Close() }()

	return r.linter.Lint(ctx, fname, r.rcfile(), out)
}

// rcfile returns the configured rcfile when it exists, otherwise nothing.
func (r *Runner) rcfile() string {
	if r.cfg.RCFile == "" || !contract.FileExists(r.cfg.RCFile) {
		return ""
	}
	return r.cfg.RCFile
}
