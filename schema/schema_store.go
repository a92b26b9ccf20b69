package schema

import "time"

// RunRecord represents a row from the vainupylinter_runs table.
type RunRecord struct {
	RunID        string
	StartTime    time.Time
	EndTime      *time.Time
	DurationMs   *int64
	Threshold    float64
	TotalFiles   int32
	FailedFiles  int32
	CustomFailed int32
	ExitCode     int32
	ConfigParams *string
}

// FileVerdictRecord represents a row from the vainupylinter_file_verdicts table.
type FileVerdictRecord struct {
	RunID        string
	FilePath     string
	RecordedAt   time.Time
	Outcome      string
	Score        *float64
	Threshold    float64
	ErrorCount   int32
	FatalCount   int32
	CustomPassed *bool
	Overridden   bool
}
