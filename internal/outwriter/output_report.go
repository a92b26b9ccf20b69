package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/vainuio/vainupylinter/internal/contract"
	"github.com/vainuio/vainupylinter/schema"
)

// WriteRunReport outputs the per-file report, dispatching based on the output format configured.
func WriteRunReport(report schema.RunReport, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(reportPrecision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForReport(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForReport(w, report, fmtFloat, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.TableOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportTable(report, cfg, fmtFloat, intFmt, w)
		}, "Wrote table")
	}
	return nil
}

// formatScore renders the score, or "-" when pylint produced none.
func formatScore(v schema.FileVerdict, fmtFloat func(float64) string) string {
	if !v.HasScore && v.Score == 0 {
		return "-"
	}
	return fmtFloat(v.Score)
}

// formatCustom summarizes the custom rule result of a verdict.
func formatCustom(v schema.FileVerdict) string {
	if !v.CustomRan {
		return "-"
	}
	text := "fail"
	if v.CustomPassed {
		text = "pass"
	}
	if v.Overridden {
		text += " (override)"
	}
	return text
}

// writeReportTable generates and writes the human-readable table.
func writeReportTable(report schema.RunReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Path", "Score", "Errors", "Fatal", "Custom", "Label"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	label := contract.GetPlainLabel
	if cfg.UseColors {
		label = contract.GetColorLabel
	}
	maxWidth := GetMaxTablePathWidth(cfg)

	var data [][]string
	for i, v := range report.Verdicts {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(v.Path, maxWidth),
			formatScore(v, fmtFloat),
			fmt.Sprintf(intFmt, v.Errors),
			fmt.Sprintf(intFmt, v.Fatal),
			formatCustom(v),
			label(v.Outcome),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Checked %d files against threshold %s: %d passed, %d failed, %d exempt, %d skipped\n",
		len(report.Verdicts),
		fmtFloat(report.Threshold),
		report.CountOutcome(schema.PassedOutcome),
		len(report.FailedFiles),
		report.CountOutcome(schema.ExemptOutcome),
		report.CountOutcome(schema.SkippedOutcome)+report.CountOutcome(schema.MissingOutcome),
	); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Run %s completed in %v with exit code %d\n", report.RunID, report.Duration(), report.ExitCode); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForReport writes one row per verdict in CSV format.
func writeCSVResultsForReport(w io.Writer, report schema.RunReport, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"rank",
		"run_id",
		"path",
		"outcome",
		"label",
		"score",
		"has_score",
		"threshold",
		"errors",
		"fatal",
		"custom",
		"elapsed_ms",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, v := range report.Verdicts {
			rec := []string{
				strconv.Itoa(i + 1),
				report.RunID,
				v.Path,
				string(v.Outcome),
				contract.GetPlainLabel(v.Outcome),
				fmtFloat(v.Score),
				strconv.FormatBool(v.HasScore),
				fmtFloat(v.Threshold),
				fmt.Sprintf(intFmt, v.Errors),
				fmt.Sprintf(intFmt, v.Fatal),
				formatCustom(v),
				fmt.Sprintf(intFmt, v.ElapsedMillis),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForReport writes the whole report in JSON format.
func writeJSONResultsForReport(w io.Writer, report schema.RunReport) error {
	type JSONVerdict struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.FileVerdict
	}
	type JSONReport struct {
		schema.RunReport
		Passed     bool          `json:"passed"`
		DurationMs int64         `json:"duration_ms"`
		Verdicts   []JSONVerdict `json:"verdicts"`
	}

	output := JSONReport{
		RunReport:  report,
		Passed:     report.Passed(),
		DurationMs: report.Duration().Milliseconds(),
		Verdicts:   make([]JSONVerdict, len(report.Verdicts)),
	}
	for i, v := range report.Verdicts {
		output.Verdicts[i] = JSONVerdict{
			Rank:        i + 1,
			Label:       contract.GetPlainLabel(v.Outcome),
			FileVerdict: v,
		}
	}
	return writeJSON(w, output)
}
