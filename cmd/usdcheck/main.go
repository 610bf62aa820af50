// main is the entry point for the usdcheck CLI.
package main

import (
	"fmt"
	"os"

	"github.com/lwoluke/usd-automated-testing/cmd"
	"github.com/lwoluke/usd-automated-testing/internal/iohistory"
)

func main() {
	err := cmd.Execute()

	// Flush and close the history store before deciding the exit status.
	iohistory.CloseHistory()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
