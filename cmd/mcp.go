package cmd

import (
	"github.com/lwoluke/usd-automated-testing/internal/iohistory"
	"github.com/lwoluke/usd-automated-testing/internal/mcp"
	"github.com/lwoluke/usd-automated-testing/schema"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the usdcheck MCP server",
	Long:  `Launch an MCP server that allows AI agents to validate USD scenes via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// MCP mode needs no scene path; validation parameters arrive per
		// tool call over stdio.
		if err := historySetup(); err != nil {
			return err
		}
		cfg.Run = schema.DefaultRunConfig()
		return nil
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, iohistory.Store())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
