package cmd

import (
	"fmt"

	"github.com/lwoluke/usd-automated-testing/internal/contract"
	"github.com/lwoluke/usd-automated-testing/internal/iohistory"
	"github.com/lwoluke/usd-automated-testing/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without a scene path.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as the SQLite default
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.SQLiteBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	if err := iohistory.InitHistory(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// It does NOT initialize the store or create tables, allowing migrations to
// run on a fresh database.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.SQLiteBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use the default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = iohistory.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyCmd manages stored validation run history.
//
// Note: History subcommands use minimal initialization (historySetup) instead
// of the full sharedSetup used by validation runs. No scene path is needed for
// these operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage stored validation run history",
	Long: `Manage the run history recorded by validation runs.

When enabled, usdcheck records every validation run, storing:
- Run metadata (scene path, timestamp, configuration, duration)
- Per-check outcomes with their diagnostic messages

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show run history statistics
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  # Check history status
  usdcheck history status

  # Wipe recorded runs
  usdcheck history clear`,
}

// historyStatusCmd shows run history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run history statistics and connection details",
	Long: `Show detailed information about the validation run history.

Displays:
- Backend type and storage location
- Total number of runs and outcomes stored
- Timestamp of the most recent run

Examples:
  # Check run history status
  usdcheck history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iohistory.Store().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iohistory.PrintHistoryStatus(status)
	},
}

// historyClearCmd clears the run history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded validation runs",
	Long: `Delete all stored validation runs and their outcomes.

WARNING: This action cannot be undone.

Examples:
  # Wipe the history
  usdcheck history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iohistory.Store().Clear(); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run-history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  usdcheck history migrate

  # Rollback to initial state
  usdcheck history migrate --target-version 0`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iohistory.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
