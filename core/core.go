// Package core has the gate logic: per-file pylint invocation, verdict
// evaluation and the run summary that decides the exit code.
package core

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/vainuio/vainupylinter/internal/contract"
	"github.com/vainuio/vainupylinter/internal/extension"
	"github.com/vainuio/vainupylinter/schema"
)

// separator frames the banners printed around per-file results and the summary.
const separator = "------------------------------------------------------------------"

// ReportSink receives the report of every finished run, e.g. a report writer
// or the history store. Sink errors never change the exit code.
type ReportSink interface {
	WriteReport(ctx context.Context, report schema.RunReport) error
}

// ReportSinkFunc adapts a function to ReportSink.
type ReportSinkFunc func(ctx context.Context, report schema.RunReport) error

// WriteReport implements ReportSink.
func (f ReportSinkFunc) WriteReport(ctx context.Context, report schema.RunReport) error {
	return f(ctx, report)
}

// Runner drives pylint over a batch of files and decides the gate verdict.
// A Runner is not safe for concurrent use.
type Runner struct {
	cfg    *contract.Config
	linter contract.Linter
	logger *slog.Logger
	ext    extension.Extension
	extSet bool
	sinks  []ReportSink
	exit   func(int)
	now    func() time.Time
	result RunResult
}

// Option configures a Runner.
type Option func(*Runner)

// WithExit replaces os.Exit as the final action of Run.
func WithExit(exit func(int)) Option {
	return func(r *Runner) { r.exit = exit }
}

// WithExtension uses pre-bound custom functions instead of resolving cfg.CustomPath.
func WithExtension(ext extension.Extension) Option {
	return func(r *Runner) {
		r.ext = ext
		r.extSet = true
	}
}

// WithSink adds a sink that receives the report after each run.
func WithSink(sink ReportSink) Option {
	return func(r *Runner) { r.sinks = append(r.sinks, sink) }
}

// WithClock overrides the time source used for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// NewRunner creates a runner for cfg. The custom extension named by
// cfg.CustomPath is resolved here, so a broken extension fails before any
// file is processed.
func NewRunner(cfg *contract.Config, linter contract.Linter, logger *slog.Logger, opts ...Option) (*Runner, error) {
	r := &Runner{
		cfg:    cfg,
		linter: linter,
		logger: logger,
		exit:   os.Exit,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}

	if !r.extSet {
		ext, err := extension.Load(cfg.CustomPath, r.logger)
		if err != nil {
			return nil, err
		}
		r.ext = ext
	}
	return r, nil
}

// Result returns the accumulated state. It is only non-empty between runs
// when keep-results is set.
func (r *Runner) Result() *RunResult {
	return &r.result
}

// Run lints cfg.Files, prints the summary and terminates the process with
// exit code 0 when every file passed, 1 otherwise.
func (r *Runner) Run(ctx context.Context) {
	report := r.Execute(ctx)
	r.exit(report.ExitCode)
}

// Execute does the work of Run but returns the report instead of exiting.
func (r *Runner) Execute(ctx context.Context) schema.RunReport {
	report := schema.RunReport{
		RunID:     uuid.NewString(),
		StartTime: r.now(),
		Threshold: r.cfg.Threshold,
		Files:     r.cfg.Files,
	}
	firstVerdict := len(r.result.Verdicts)

	r.logger.Info("Starting")
	for _, fname := range r.cfg.Files {
		r.processFile(ctx, fname)
	}

	report.ExitCode = r.reportResults()
	report.EndTime = r.now()
	report.Verdicts = append([]schema.FileVerdict(nil), r.result.Verdicts[firstVerdict:]...)
	report.FailedFiles = append([]string(nil), r.result.FailedFiles...)
	report.CustomFailedFiles = append([]string(nil), r.result.CustomFailedFiles...)

	for _, sink := range r.sinks {
		if err := sink.WriteReport(ctx, report); err != nil {
			r.logger.Warn("Could not write run report: " + err.Error())
		}
	}

	if !r.cfg.KeepResults {
		r.result.Reset()
	}
	return report
}

// processFile runs both verdict stages for one path and records its verdict.
func (r *Runner) processFile(ctx context.Context, fname string) {
	start := r.now()
	verdict := schema.FileVerdict{Path: fname, Threshold: r.cfg.Threshold}
	defer func() {
		verdict.ElapsedMillis = r.now().Sub(start).Milliseconds()
		r.result.Verdicts = append(r.result.Verdicts, verdict)
	}()

	stats, linted := r.runPylint(ctx, fname, &verdict)
	if !linted {
		return
	}
	verdict.Errors = stats.Error
	verdict.Fatal = stats.Fatal

	customPassed, override := r.checkCustomRules(stats, &verdict)
	if !r.checkNoSilentCrash(stats, customPassed && override, &verdict) {
		return
	}
	r.evalResults(stats, customPassed, override, &verdict)
}
