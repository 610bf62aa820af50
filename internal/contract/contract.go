// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"io"

	"github.com/lwoluke/usd-automated-testing/schema"
)

// Sink receives rendered report text. Checks and the runner only ever
// produce structured Outcomes; everything written to a sink went through the
// outwriter first. Dual console+file output is one sink.
type Sink interface {
	io.Writer

	// Close flushes and releases any file handle behind the sink.
	Close() error
}

// HistoryStore records validation runs for later inspection.
// This allows the persistence layer to be mocked for testing.
type HistoryStore interface {
	// RecordRun stores a completed report and returns its unique run ID.
	RecordRun(report *schema.Report, configParams map[string]any) (int64, error)

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// Clear removes all recorded runs.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}
