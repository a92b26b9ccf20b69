package history

import (
	"context"
	"fmt"
	"time"

	"github.com/vainuio/vainupylinter/internal/contract"
	"github.com/vainuio/vainupylinter/schema"
)

// Recorder writes finished run reports into a history store.
type Recorder struct {
	mgr          contract.HistoryManager
	configParams map[string]any
}

// NewRecorder returns a Recorder that stores runs in the manager's store,
// tagging each run with configParams.
func NewRecorder(mgr contract.HistoryManager, configParams map[string]any) *Recorder {
	return &Recorder{mgr: mgr, configParams: configParams}
}

// WriteReport stores the run and one row per verdict.
// It does nothing when no store has been initialized.
func (r *Recorder) WriteReport(ctx context.Context, report schema.RunReport) error {
	store := r.mgr.GetHistoryStore()
	if store == nil {
		return nil
	}

	if err := store.BeginRun(report.RunID, report.StartTime, report.Threshold, r.configParams); err != nil {
		return err
	}

	// Verdicts carry elapsed time rather than timestamps, so rebuild them in order.
	recordedAt := report.StartTime
	for _, v := range report.Verdicts {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("recording run %s: %w", report.RunID, err)
		}
		recordedAt = recordedAt.Add(time.Duration(v.ElapsedMillis) * time.Millisecond)
		if err := store.RecordFileVerdict(report.RunID, recordedAt, v); err != nil {
			return err
		}
	}

	return store.EndRun(report.RunID, report.EndTime, len(report.Verdicts),
		len(report.FailedFiles), len(report.CustomFailedFiles), report.ExitCode)
}
