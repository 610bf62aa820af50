package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

// Result label constants.
const (
	PassValue = "PASS"
	FailValue = "FAIL"
)

// Color variables for console output.
var (
	PassColor = color.New(color.FgGreen, color.Bold)
	FailColor = color.New(color.FgRed, color.Bold)
)

// GetPlainLabel returns the plain PASS/FAIL label for an outcome. This is
// the core logic used for CSV, JSON and file transcripts.
func GetPlainLabel(passed bool) string {
	if passed {
		return PassValue
	}
	return FailValue
}

// GetColorLabel returns a colored PASS/FAIL label for console output.
func GetColorLabel(passed bool) string {
	if passed {
		return PassColor.Sprint(PassValue)
	}
	return FailColor.Sprint(FailValue)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".usdcheck_history.db"
	}
	return filepath.Join(homeDir, ".usdcheck_history.db")
}
