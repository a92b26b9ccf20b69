package history

import (
	"errors"
	"fmt"
	"io"

	"github.com/vainuio/vainupylinter/internal/contract"
	"github.com/vainuio/vainupylinter/internal/parquet"
)

// ExportHistory writes all stored runs and verdicts as two Parquet files
// named after outputFile.
func ExportHistory(store contract.HistoryStore, outputFile string, w io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history store is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total file verdicts: %d\n", status.TableSizes[fileVerdictsTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	verdicts, err := store.GetAllFileVerdicts()
	if err != nil {
		return fmt.Errorf("failed to retrieve file verdicts: %w", err)
	}

	parquetRuns := parquet.ConvertRunRecords(runs)
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	parquetVerdicts := parquet.ConvertFileVerdictRecords(verdicts)
	verdictsFile := outputFile + ".file_verdicts.parquet"
	if err := parquet.WriteFileVerdictsParquet(parquetVerdicts, verdictsFile); err != nil {
		return fmt.Errorf("failed to write file verdicts: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d file verdicts to: %s\n", len(parquetVerdicts), verdictsFile)

	_, _ = fmt.Fprintln(w, "\nExport complete! The Parquet files can be read with DuckDB, Pandas (via pyarrow) or Spark.")
	return nil
}
