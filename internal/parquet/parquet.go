// Package parquet exports validation outcomes to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/lwoluke/usd-automated-testing/schema"
	"github.com/parquet-go/parquet-go"
)

// OutcomeRecord is one validation outcome flattened for columnar export.
type OutcomeRecord struct {
	// ScenePath is the scene description the run validated
	ScenePath string `parquet:"scene_path,snappy"`

	// CheckID identifies the check that produced this outcome
	CheckID string `parquet:"check_id,snappy"`

	// Passed reports whether the check passed
	Passed bool `parquet:"passed"`

	// Message is the full diagnostic text, possibly multi-line
	Message string `parquet:"message,snappy"`

	// StartedAt is when the validation run began
	StartedAt time.Time `parquet:"started_at,snappy"`

	// DurationMs is the duration of the whole run in milliseconds
	DurationMs int64 `parquet:"duration_ms,snappy"`
}

// OutcomeRecords flattens a report into exportable records.
func OutcomeRecords(report *schema.Report) []OutcomeRecord {
	records := make([]OutcomeRecord, 0, len(report.Outcomes))
	for _, o := range report.Outcomes {
		records = append(records, OutcomeRecord{
			ScenePath:  report.ScenePath,
			CheckID:    string(o.ID),
			Passed:     o.Passed,
			Message:    o.Message,
			StartedAt:  report.StartedAt,
			DurationMs: report.Duration.Milliseconds(),
		})
	}
	return records
}

// WriteOutcomesParquet writes a slice of OutcomeRecord structs to a Parquet file.
func WriteOutcomesParquet(data []OutcomeRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the OutcomeRecord struct tags.
	writer := parquet.NewGenericWriter[OutcomeRecord](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}
