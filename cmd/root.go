package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/lwoluke/usd-automated-testing/core"
	"github.com/lwoluke/usd-automated-testing/internal/contract"
	"github.com/lwoluke/usd-automated-testing/internal/iohistory"
	"github.com/lwoluke/usd-automated-testing/internal/outwriter"
	"github.com/lwoluke/usd-automated-testing/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd runs the validation checks against a scene file.
var rootCmd = &cobra.Command{
	Use:   "usdcheck <scene-path>",
	Short: "Validate the structure of a USD scene file.",
	Long: `Usdcheck opens a USD scene, composes its layer stack, and runs structural
validation checks against the result.

Checks:
  geometry - transform op integrity, extent bounds, degenerate meshes
  shaders  - shader IDs, input parameters, connections, material bindings
  layers   - layer stack health, sublayer resolution, reference arcs
  variants - every variant of every set can be selected without breakage

Examples:
  # Run all checks
  usdcheck scene.usda

  # Run a single check
  usdcheck scene.usda --only-geometry

  # Skip the variant probe on a heavy scene
  usdcheck scene.usda --skip-variants

  # Machine-readable output
  usdcheck scene.usda --output json --output-file report.json`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Args:               cobra.MaximumNArgs(1),
	PreRunE:            sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		report := core.ExecuteValidation(cfg, core.NewRegistry(), iohistory.Store())

		sink := outwriter.NewRunSink(cfg)
		defer func() { _ = sink.Close() }()
		if err := outwriter.WriteReport(sink, report, cfg); err != nil {
			contract.LogFatal("Cannot write report", err)
		}
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".usdcheck") // Name of config file (without extension)
		viper.SetConfigType("yaml")      // We'll use YAML format
		viper.AddConfigPath(".")         // Look in the current directory
		viper.AddConfigPath("$HOME")     // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("USDCHECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("color", "yes")
	viper.SetDefault("history-backend", schema.SQLiteBackend)
	viper.SetDefault("history-db-connect", "")
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	if len(args) == 1 {
		input.ScenePathStr = args[0]
	}

	// 4. Run all validation and complex parsing.
	// This function now populates the global 'cfg' from 'input'.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 5. Initialize run history with validated config
	if err := iohistory.InitHistory(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("failed to initialize run history: %w", err)
	}

	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	// Handle config file
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".usdcheck")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
