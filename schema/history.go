package schema

import "time"

// HistoryStatus describes the state of the run-history store.
type HistoryStatus struct {
	Backend       DatabaseBackend
	Location      string
	TotalRuns     int
	TotalOutcomes int
	LastRunAt     time.Time
}
