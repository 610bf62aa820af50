package contract

import (
	"fmt"
	"strings"

	"github.com/lwoluke/usd-automated-testing/schema"
)

// ConfigRawInput holds the raw, unvalidated configuration from all sources
// (file, env, flags). Viper unmarshals into this struct.
type ConfigRawInput struct {
	ScenePathStr string // positional argument, not handled by Viper

	OnlyGeometry bool `mapstructure:"only-geometry"`
	OnlyShaders  bool `mapstructure:"only-shaders"`
	OnlyLayers   bool `mapstructure:"only-layers"`
	OnlyVariants bool `mapstructure:"only-variants"`

	SkipGeometry bool `mapstructure:"skip-geometry"`
	SkipShaders  bool `mapstructure:"skip-shaders"`
	SkipLayers   bool `mapstructure:"skip-layers"`
	SkipVariants bool `mapstructure:"skip-variants"`

	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Detail     bool   `mapstructure:"detail"`
	Color      string `mapstructure:"color"`
	Width      int    `mapstructure:"width"`

	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
}

// Config holds the runtime configuration for one validation run.
// This struct remains the "final, validated" config.
type Config struct {
	ScenePath  string
	Run        schema.RunConfig
	Output     schema.OutputMode
	OutputFile string
	Detail     bool
	UseColors  bool
	Width      int // Terminal width override (0 = auto-detect)

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
}

// Clone returns a shallow copy of the config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// Params returns the config as a flat map for history recording.
func (c *Config) Params() map[string]any {
	return map[string]any{
		"scene_path":  c.ScenePath,
		"geometry":    c.Run.Geometry,
		"shaders":     c.Run.Shaders,
		"layers":      c.Run.Layers,
		"variants":    c.Run.Variants,
		"output":      string(c.Output),
		"output_file": c.OutputFile,
	}
}

// ProcessAndValidate populates cfg from the raw input, enforcing the CLI
// contract: at most one only-flag, no mixing of only and skip flags, and at
// least one check left enabled. It runs before any scene is opened.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if input.ScenePathStr == "" {
		return fmt.Errorf("missing scene path argument")
	}
	cfg.ScenePath = input.ScenePathStr

	onlyFlags := 0
	var onlyID schema.CheckID
	for id, set := range map[schema.CheckID]bool{
		schema.GeometryCheck: input.OnlyGeometry,
		schema.ShadersCheck:  input.OnlyShaders,
		schema.LayersCheck:   input.OnlyLayers,
		schema.VariantsCheck: input.OnlyVariants,
	} {
		if set {
			onlyFlags++
			onlyID = id
		}
	}
	if onlyFlags > 1 {
		return fmt.Errorf("only one '--only' flag can be used at a time")
	}

	anySkip := input.SkipGeometry || input.SkipShaders || input.SkipLayers || input.SkipVariants
	if onlyFlags > 0 && anySkip {
		return fmt.Errorf("cannot combine '--only' and '--skip' flags")
	}

	if onlyFlags == 1 {
		cfg.Run = schema.OnlyRunConfig(onlyID)
	} else {
		cfg.Run = schema.DefaultRunConfig()
		if input.SkipGeometry {
			cfg.Run.Skip(schema.GeometryCheck)
		}
		if input.SkipShaders {
			cfg.Run.Skip(schema.ShadersCheck)
		}
		if input.SkipLayers {
			cfg.Run.Skip(schema.LayersCheck)
		}
		if input.SkipVariants {
			cfg.Run.Skip(schema.VariantsCheck)
		}
	}

	if !cfg.Run.HasEnabled() {
		return fmt.Errorf("cannot skip all checks; at least one check must run")
	}

	switch mode := schema.OutputMode(input.Output); mode {
	case schema.TextOut, schema.JSONOut, schema.CSVOut, schema.ParquetOut:
		cfg.Output = mode
	case "":
		cfg.Output = schema.TextOut
	default:
		return fmt.Errorf("unsupported output mode: %s", input.Output)
	}
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Width = input.Width

	useColors, err := parseBoolish(input.Color, true)
	if err != nil {
		return fmt.Errorf("invalid color value: %w", err)
	}
	cfg.UseColors = useColors

	switch backend := schema.DatabaseBackend(input.HistoryBackend); backend {
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend, schema.NoneBackend:
		cfg.HistoryBackend = backend
	case "":
		cfg.HistoryBackend = schema.SQLiteBackend
	default:
		return fmt.Errorf("unsupported history backend: %s", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	return nil
}

// ValidateDatabaseConnectionString checks that a connection string is present
// and plausible for the chosen backend. SQLite and None take no connection
// string.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") && !strings.HasPrefix(connStr, "postgres://") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' or use a postgres:// URL")
		}
	default:
		return fmt.Errorf("unsupported backend: %s", backend)
	}
	return nil
}

// parseBoolish accepts the yes/no spellings used on the command line.
func parseBoolish(s string, fallback bool) (bool, error) {
	switch s {
	case "":
		return fallback, nil
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("expected yes/no/true/false/1/0, got %q", s)
	}
}
