// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/lwoluke/usd-automated-testing/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the usdcheck MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.HistoryStore) *server.MCPServer {
	s := server.NewMCPServer(
		"USD Scene Validation Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: validate_scene ---
	s.AddTool(mcp.NewTool("validate_scene",
		mcp.WithDescription("Run structural validation checks against a USD scene file and return the results as JSON."),
		mcp.WithString("scene_path", mcp.Description("Path to the USD scene file to validate."), mcp.Required()),
		mcp.WithString("checks", mcp.Description("Comma-separated subset of checks to run (geometry, shaders, layers, variants). Defaults to all checks.")),
	), h.handleValidateScene)

	// --- 2. Tool: list_checks ---
	s.AddTool(mcp.NewTool("list_checks",
		mcp.WithDescription("List the validation checks available to validate_scene."),
	), h.handleListChecks)

	// --- 3. Tool: get_history_status ---
	s.AddTool(mcp.NewTool("get_history_status",
		mcp.WithDescription("Report the state of the validation run-history store."),
	), h.handleGetHistoryStatus)

	return s
}

// StartMCPServer starts the usdcheck MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.HistoryStore) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}
