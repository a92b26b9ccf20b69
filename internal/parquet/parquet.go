// Package parquet provides data structures and functions for exporting run
// history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/vainuio/vainupylinter/schema"
)

// Run represents a single gate run with its totals.
// This struct maps to the vainupylinter_runs database table.
type Run struct {
	// RunID is the UUID assigned when the run started
	RunID string `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable for runs that never finished)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the wall time of the run in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	// Threshold is the minimum passing score configured for the run
	Threshold float64 `parquet:"threshold,snappy"`

	TotalFiles   int32 `parquet:"total_files,snappy"`
	FailedFiles  int32 `parquet:"failed_files,snappy"`
	CustomFailed int32 `parquet:"custom_failed,snappy"`

	// ExitCode is 0 when both failure lists were empty, otherwise 1
	ExitCode int32 `parquet:"exit_code,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// FileVerdict represents the outcome of one file within a run.
// This struct maps to the vainupylinter_file_verdicts database table.
type FileVerdict struct {
	// RunID references the parent run
	RunID string `parquet:"run_id,snappy"`

	// FilePath is the path exactly as it was passed on the command line
	FilePath string `parquet:"file_path,snappy"`

	RecordedAt time.Time `parquet:"recorded_at,snappy"`

	// Outcome is one of skipped, missing, crashed, syntax-error, passed, failed, exempt
	Outcome string `parquet:"outcome,snappy"`

	// Score is the pylint score out of 10 (nullable when none was produced)
	Score *float64 `parquet:"score,optional,snappy"`

	Threshold  float64 `parquet:"threshold,snappy"`
	ErrorCount int32   `parquet:"error_count,snappy"`
	FatalCount int32   `parquet:"fatal_count,snappy"`

	// CustomPassed is the custom rule result (nullable when no rule ran)
	CustomPassed *bool `parquet:"custom_passed,optional,snappy"`

	// Overridden is true when the custom rule replaced the standard verdict
	Overridden bool `parquet:"overridden,snappy"`
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteFileVerdictsParquet writes a slice of FileVerdict structs to a Parquet file.
func WriteFileVerdictsParquet(data []FileVerdict, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows with a schema inferred from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.DurationMs,
			Threshold:     record.Threshold,
			TotalFiles:    record.TotalFiles,
			FailedFiles:   record.FailedFiles,
			CustomFailed:  record.CustomFailed,
			ExitCode:      record.ExitCode,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertFileVerdictRecords converts schema.FileVerdictRecord to FileVerdict for Parquet export.
func ConvertFileVerdictRecords(records []schema.FileVerdictRecord) []FileVerdict {
	result := make([]FileVerdict, len(records))
	for i, record := range records {
		result[i] = FileVerdict{
			RunID:        record.RunID,
			FilePath:     record.FilePath,
			RecordedAt:   record.RecordedAt,
			Outcome:      record.Outcome,
			Score:        record.Score,
			Threshold:    record.Threshold,
			ErrorCount:   record.ErrorCount,
			FatalCount:   record.FatalCount,
			CustomPassed: record.CustomPassed,
			Overridden:   record.Overridden,
		}
	}
	return result
}
