// Package outwriter renders validation reports. Checks and the runner only
// produce structured Outcomes; every byte of console or file output goes
// through this package.
package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/lwoluke/usd-automated-testing/internal/contract"
	"github.com/lwoluke/usd-automated-testing/internal/parquet"
	"github.com/lwoluke/usd-automated-testing/schema"
)

// WriteReport outputs the report, dispatching based on the configured
// output format.
func WriteReport(w io.Writer, report *schema.Report, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, report); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVResults(w, report); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		path := cfg.OutputFile
		if path == "" {
			path = "usdcheck_outcomes.parquet"
		}
		if err := parquet.WriteOutcomesParquet(parquet.OutcomeRecords(report), path); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		_, _ = fmt.Fprintf(w, "Results exported to: %s\n", path)
	default:
		// Default to the human-readable transcript.
		writeTranscript(w, report)
		if cfg.Detail {
			if err := writeOutcomeTable(w, report, cfg); err != nil {
				return fmt.Errorf("error writing detail table: %w", err)
			}
		}
	}
	return nil
}

// writeTranscript renders the canonical text transcript: the open-status
// line, one result line per executed check, and a trailing summary with a
// closing verdict sentence. Callers parse this shape; keep it stable.
func writeTranscript(w io.Writer, report *schema.Report) {
	if !report.OpenedOK {
		_, _ = fmt.Fprint(w, "Failed to open USD file. Ensure the file path is correct and the file is accessible.\n\n")
		return
	}
	_, _ = fmt.Fprint(w, "Opened USD file successfully.\n\n")

	for _, o := range report.Outcomes {
		// The transcript is parsed by callers and duplicated into files, so
		// result lines stay plain; colors are reserved for the detail table.
		_, _ = fmt.Fprintf(w, "[%s] %s: %s\n", contract.GetPlainLabel(o.Passed), o.ID, o.Message)
	}

	_, _ = fmt.Fprintf(w, "\nSummary:\n  Passed: %d\n  Failed: %d\n\n", report.Passed(), report.Failed())
	_, _ = fmt.Fprintf(w, "%s\n\n", report.Verdict())
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVResults writes one row per outcome.
func writeCSVResults(w io.Writer, report *schema.Report) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write([]string{"scene_path", "check", "result", "message"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, o := range report.Outcomes {
		row := []string{report.ScenePath, string(o.ID), contract.GetPlainLabel(o.Passed), o.Message}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	return nil
}
