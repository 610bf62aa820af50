package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lwoluke/usd-automated-testing/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *schema.Report {
	return &schema.Report{
		ScenePath: "scenes/factory.usda",
		OpenedOK:  true,
		Outcomes: []schema.Outcome{
			{ID: schema.GeometryCheck, Passed: true, Message: "All geometry prims are valid with proper transforms and bounds."},
			{ID: schema.ShadersCheck, Passed: false, Message: "Shader validation failed with the following issues:\n- Missing or invalid shader ID at: /Looks/Surf\n"},
			{ID: schema.LayersCheck, Passed: true, Message: "Layer stack and all references are valid."},
		},
		StartedAt: time.Now(),
		Duration:  42 * time.Millisecond,
	}
}

func TestOutcomeRecordStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	pschema := parquet.SchemaOf(new(OutcomeRecord))
	require.NotNil(t, pschema)

	expectedColumns := []string{
		"scene_path",
		"check_id",
		"passed",
		"message",
		"started_at",
		"duration_ms",
	}

	for _, colName := range expectedColumns {
		col, ok := pschema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestOutcomeRecords(t *testing.T) {
	report := sampleReport()
	records := OutcomeRecords(report)

	require.Len(t, records, 3)
	for i, rec := range records {
		assert.Equal(t, report.ScenePath, rec.ScenePath)
		assert.Equal(t, string(report.Outcomes[i].ID), rec.CheckID)
		assert.Equal(t, report.Outcomes[i].Passed, rec.Passed)
		assert.Equal(t, report.Outcomes[i].Message, rec.Message)
		assert.Equal(t, int64(42), rec.DurationMs)
	}
}

func TestWriteOutcomesParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "outcomes.parquet")

	data := OutcomeRecords(sampleReport())
	require.NotEmpty(t, data)

	err := WriteOutcomesParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[OutcomeRecord](file)
	defer reader.Close()

	readData := make([]OutcomeRecord, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].ScenePath, readData[i].ScenePath)
		assert.Equal(t, data[i].CheckID, readData[i].CheckID)
		assert.Equal(t, data[i].Passed, readData[i].Passed)
		assert.Equal(t, data[i].Message, readData[i].Message)
		assert.Equal(t, data[i].DurationMs, readData[i].DurationMs)
		assert.WithinDuration(t, data[i].StartedAt, readData[i].StartedAt, time.Nanosecond,
			"StartedAt should match within nanosecond precision")
	}
}

func TestWriteOutcomesParquet_EmptyData(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty_outcomes.parquet")

	err := WriteOutcomesParquet([]OutcomeRecord{}, outputPath)
	require.NoError(t, err, "Writing empty data should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteOutcomesParquet_InvalidPath(t *testing.T) {
	data := OutcomeRecords(sampleReport())
	err := WriteOutcomesParquet(data, "/nonexistent/directory/output.parquet")
	require.Error(t, err, "Writing to invalid path should produce error")
}
