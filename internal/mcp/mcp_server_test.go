package mcp_test

import (
	"context"
	"testing"

	"github.com/lwoluke/usd-automated-testing/internal/contract"
	mcp_internal "github.com/lwoluke/usd-automated-testing/internal/mcp"
	"github.com/lwoluke/usd-automated-testing/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{
		Run: schema.DefaultRunConfig(),
	}

	// No history store; the handlers under test never reach it
	s := mcp_internal.NewMCPServer(baseCfg, nil)

	ctx := context.Background()

	t.Run("validate_scene missing scene_path", func(t *testing.T) {
		tool := s.GetTool("validate_scene")
		require.NotNil(t, tool, "Tool validate_scene should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "validate_scene",
				Arguments: map[string]any{
					"scene_path": "", // Missing required
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "scene_path is required")
	})

	t.Run("validate_scene unknown check", func(t *testing.T) {
		tool := s.GetTool("validate_scene")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "validate_scene",
				Arguments: map[string]any{
					"scene_path": "scenes/test.usda",
					"checks":     "geometry,physics", // Unknown check
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, `unknown check "physics"`)
	})

	t.Run("get_history_status without store", func(t *testing.T) {
		tool := s.GetTool("get_history_status")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "get_history_status"},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "history store is not configured")
	})
}

func TestMCPServerHandlers_ListChecks(t *testing.T) {
	s := mcp_internal.NewMCPServer(&contract.Config{}, nil)

	tool := s.GetTool("list_checks")
	require.NotNil(t, tool, "Tool list_checks should exist")

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: "list_checks"},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := res.Content[0].(mcp.TextContent).Text
	for _, id := range []string{"geometry", "shaders", "layers", "variants"} {
		assert.Contains(t, text, id)
	}
}
