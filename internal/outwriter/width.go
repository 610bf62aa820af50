package outwriter

import (
	"os"

	"github.com/lwoluke/usd-automated-testing/internal/contract"
	"golang.org/x/term"
)

// getMaxTableMessageWidth calculates the maximum width for outcome messages
// in table output based on terminal width and table configuration.
func getMaxTableMessageWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the rank, check and result columns plus borders.
	available := termWidth - 30
	if available < 20 {
		return 20
	}
	if available > 100 {
		return 100
	}
	return available
}
