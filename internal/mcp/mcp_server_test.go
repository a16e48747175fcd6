package mcp_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/huangsam/hotelpulse/internal/iocache"
	mcp_internal "github.com/huangsam/hotelpulse/internal/mcp"
	"github.com/huangsam/hotelpulse/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) (*server.MCPServer, *iocache.PositionStoreImpl) {
	t.Helper()
	baseCfg := &contract.Config{
		Precision:   2,
		Output:      schema.TextOut,
		ChartDir:    filepath.Join(t.TempDir(), "charts"),
		ImageFormat: schema.SVGImage,
		ChartWidth:  contract.DefaultChartWidth,
		ChartHeight: contract.DefaultChartHeight,
		LabelGap:    contract.DefaultLabelGap,
	}
	store := iocache.NewPositionStore(iocache.NewMemoryStore(), zap.NewNop())
	mgr := &iocache.MockStoreManager{}
	mgr.On("GetPositionStore").Return(store)
	return mcp_internal.NewMCPServer(baseCfg, mgr), store
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		tool     string
		args     map[string]any
		expected string
	}{
		{"get_section_totals", map[string]any{}, "section_id is required"},
		{"get_section_totals", map[string]any{"section_id": "web", "limit": -1.0}, "limit cannot be negative"},
		{"get_section_totals", map[string]any{"section_id": "lobby"}, "unknown section"},
		{"get_annotations", map[string]any{}, "section_id is required"},
		{"get_interpretation", map[string]any{"section_id": "lobby"}, "unknown section"},
		{"move_annotation", map[string]any{"index": 0.0, "x": 1.0, "y": 2.0}, "chart_id is required"},
		{"move_annotation", map[string]any{"chart_id": "web", "x": 1.0, "y": 2.0}, "index must be zero or greater"},
		{"move_annotation", map[string]any{"chart_id": "lobby", "index": 0.0, "x": 1.0, "y": 2.0}, "unknown chart"},
		{"reset_overrides", map[string]any{}, "chart_id is required"},
		{"reset_overrides", map[string]any{"chart_id": "lobby"}, "unknown chart"},
	}
	for _, tt := range tests {
		t.Run(tt.tool+" "+tt.expected, func(t *testing.T) {
			res := callTool(t, s, tt.tool, tt.args)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, resultText(t, res), tt.expected)
		})
	}
}

func TestMCPServerHandlers_NoStore(t *testing.T) {
	mgr := &iocache.MockStoreManager{}
	mgr.On("GetPositionStore").Return(nil)
	s := mcp_internal.NewMCPServer(&contract.Config{Precision: 1}, mgr)

	res := callTool(t, s, "list_overrides", nil)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "not initialized")
}

func TestMCPServerHandlers_ReadTools(t *testing.T) {
	s, _ := newTestServer(t)

	t.Run("list_sections", func(t *testing.T) {
		res := callTool(t, s, "list_sections", nil)
		require.False(t, res.IsError)
		assert.Contains(t, resultText(t, res), `"chart_id": "chart-general"`)
	})

	t.Run("get_section_totals", func(t *testing.T) {
		res := callTool(t, s, "get_section_totals", map[string]any{"section_id": "web", "limit": 1.0})
		require.False(t, res.IsError)

		var totals struct {
			SectionID string                `json:"section_id"`
			Ranked    []schema.RankedSeries `json:"ranked"`
		}
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &totals))
		assert.Equal(t, "web", totals.SectionID)
		assert.NotEmpty(t, totals.Ranked)
	})

	t.Run("get_annotations", func(t *testing.T) {
		res := callTool(t, s, "get_annotations", map[string]any{"section_id": "general"})
		require.False(t, res.IsError)
		assert.Contains(t, resultText(t, res), `"chart_id": "chart-general"`)
	})

	t.Run("get_interpretation", func(t *testing.T) {
		res := callTool(t, s, "get_interpretation", map[string]any{"section_id": "web"})
		require.False(t, res.IsError)
		assert.Contains(t, resultText(t, res), "Web")
	})
}

func TestMCPServerHandlers_Overrides(t *testing.T) {
	s, store := newTestServer(t)

	res := callTool(t, s, "move_annotation", map[string]any{"chart_id": "web", "index": 1.0, "x": 2.5, "y": 80000.0})
	require.False(t, res.IsError, resultText(t, res))

	var moved schema.ChartOverride
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &moved))
	assert.Equal(t, "chart-web", moved.ChartID)
	assert.Equal(t, 1, moved.Index)
	assert.InDelta(t, 2.5, moved.X, 1e-6)
	assert.InDelta(t, 80000.0, moved.Y, 1e-6)
	assert.Len(t, store.Load("chart-web"), 1)

	res = callTool(t, s, "list_overrides", nil)
	require.False(t, res.IsError)
	var rows []schema.ChartOverride
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "chart-web", rows[0].ChartID)

	res = callTool(t, s, "reset_overrides", map[string]any{"chart_id": "chart-web"})
	require.False(t, res.IsError)
	assert.Equal(t, "Cleared saved positions of chart-web", resultText(t, res))
	assert.Empty(t, store.Load("chart-web"))
}
