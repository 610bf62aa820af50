// Package cmd defines the command-line interface for usdcheck.
package cmd

import (
	"github.com/lwoluke/usd-automated-testing/internal/contract"
	"github.com/lwoluke/usd-automated-testing/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(historyCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Bool("only-geometry", false, "Run only the geometry check")
	rootCmd.PersistentFlags().Bool("only-shaders", false, "Run only the shaders check")
	rootCmd.PersistentFlags().Bool("only-layers", false, "Run only the layers check")
	rootCmd.PersistentFlags().Bool("only-variants", false, "Run only the variants check")
	rootCmd.PersistentFlags().Bool("skip-geometry", false, "Skip the geometry check")
	rootCmd.PersistentFlags().Bool("skip-shaders", false, "Skip the shaders check")
	rootCmd.PersistentFlags().Bool("skip-layers", false, "Skip the layers check")
	rootCmd.PersistentFlags().Bool("skip-variants", false, "Skip the variants check")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Bool("detail", false, "Print a per-check result table after the transcript")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.SQLiteBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
