package iohistory

import (
	"fmt"

	"github.com/lwoluke/usd-automated-testing/schema"
)

// PrintHistoryStatus prints run-history status information.
func PrintHistoryStatus(status schema.HistoryStatus) {
	fmt.Printf("History Backend: %s\n", status.Backend)
	if status.Backend == schema.NoneBackend {
		return
	}
	if status.Location != "" {
		fmt.Printf("Location: %s\n", status.Location)
	}
	fmt.Printf("Total Runs: %d\n", status.TotalRuns)
	fmt.Printf("Total Outcomes: %d\n", status.TotalOutcomes)
	if status.TotalRuns > 0 {
		fmt.Printf("Last Run: %s\n", status.LastRunAt.Format("2006-01-02 15:04:05"))
	}
}
