package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lwoluke/usd-automated-testing/core"
	"github.com/lwoluke/usd-automated-testing/internal/contract"
	"github.com/lwoluke/usd-automated-testing/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.HistoryStore
}

func (h *toolHandler) handleValidateScene(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.ScenePath = request.GetString("scene_path", "")
	if cfg.ScenePath == "" {
		return mcp.NewToolResultError("scene_path is required"), nil
	}

	if checks := request.GetString("checks", ""); checks != "" {
		run, err := parseCheckList(checks)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid checks parameter: %v", err)), nil
		}
		cfg.Run = run
	}

	report := core.ExecuteValidation(cfg, core.NewRegistry(), h.store)

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListChecks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids := make([]string, 0, len(schema.AllCheckIDs))
	for _, id := range schema.AllCheckIDs {
		ids = append(ids, string(id))
	}

	jsonData, _ := json.MarshalIndent(ids, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetHistoryStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.store == nil {
		return mcp.NewToolResultError("history store is not configured"), nil
	}

	status, err := h.store.GetStatus()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get history status: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(status, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// parseCheckList builds a RunConfig from a comma-separated list of check IDs.
func parseCheckList(checks string) (schema.RunConfig, error) {
	run := schema.RunConfig{}
	for _, part := range strings.Split(checks, ",") {
		switch schema.CheckID(strings.TrimSpace(part)) {
		case schema.GeometryCheck:
			run.Geometry = true
		case schema.ShadersCheck:
			run.Shaders = true
		case schema.LayersCheck:
			run.Layers = true
		case schema.VariantsCheck:
			run.Variants = true
		default:
			return run, fmt.Errorf("unknown check %q", strings.TrimSpace(part))
		}
	}
	if !run.HasEnabled() {
		return run, fmt.Errorf("no checks selected")
	}
	return run, nil
}
