// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"io"
	"time"

	"github.com/vainuio/vainupylinter/schema"
)

// Linter runs the external linter on a single file.
// This allows the gate logic to be tested without needing a real pylint installation.
type Linter interface {
	// Lint analyzes one file and returns its statistics. Console output produced
	// while linting (diagnostics, warnings from pylint itself) is written to out.
	// rcfile is empty when no configuration file should be passed.
	Lint(ctx context.Context, path string, rcfile string, out io.Writer) (schema.Stats, error)
}

// HistoryManager defines the interface for reaching the history store.
// This allows the persistence layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for tracking gate runs and per-file verdicts.
type HistoryStore interface {
	// BeginRun records the start of a run identified by runID.
	BeginRun(runID string, startTime time.Time, threshold float64, configParams map[string]any) error

	// RecordFileVerdict stores the verdict for one file of a run.
	RecordFileVerdict(runID string, recordedAt time.Time, verdict schema.FileVerdict) error

	// EndRun updates the run with completion data.
	EndRun(runID string, endTime time.Time, totalFiles, failedFiles, customFailed, exitCode int) error

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns retrieves all run records.
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllFileVerdicts retrieves all per-file verdict records.
	GetAllFileVerdicts() ([]schema.FileVerdictRecord, error)

	// Close releases the underlying connection.
	Close() error
}
