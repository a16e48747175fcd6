// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the dashboard MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Hotel Revenue Dashboard Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: list_sections ---
	s.AddTool(mcp.NewTool("list_sections",
		mcp.WithDescription("List the dashboard sections with their chart ids, periods and interpretation models."),
	), h.handleListSections)

	// --- 2. Tool: get_section_totals ---
	s.AddTool(mcp.NewTool("get_section_totals",
		mcp.WithDescription("Aggregate a section: per-period totals, per-series totals ranked by size and the first-to-last variation."),
		mcp.WithString("section_id", mcp.Description("Section identifier, e.g. 'general' or 'web'."), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Keep only the top and bottom entries of the ranking.")),
	), h.handleGetSectionTotals)

	// --- 3. Tool: get_annotations ---
	s.AddTool(mcp.NewTool("get_annotations",
		mcp.WithDescription("Return the chart labels of a section after applying saved positions."),
		mcp.WithString("section_id", mcp.Description("Section identifier."), mcp.Required()),
	), h.handleGetAnnotations)

	// --- 4. Tool: get_interpretation ---
	s.AddTool(mcp.NewTool("get_interpretation",
		mcp.WithDescription("Return the Markdown marketing reading of a section."),
		mcp.WithString("section_id", mcp.Description("Section identifier."), mcp.Required()),
	), h.handleGetInterpretation)

	// --- 5. Tool: move_annotation ---
	s.AddTool(mcp.NewTool("move_annotation",
		mcp.WithDescription("Drag one chart label to a data position and save it."),
		mcp.WithString("chart_id", mcp.Description("Chart identifier or section identifier."), mcp.Required()),
		mcp.WithNumber("index", mcp.Description("Label index within the chart."), mcp.Required()),
		mcp.WithNumber("x", mcp.Description("Target x in data coordinates (category index)."), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("Target y in data coordinates."), mcp.Required()),
	), h.handleMoveAnnotation)

	// --- 6. Tool: list_overrides ---
	s.AddTool(mcp.NewTool("list_overrides",
		mcp.WithDescription("List every saved label position."),
	), h.handleListOverrides)

	// --- 7. Tool: reset_overrides ---
	s.AddTool(mcp.NewTool("reset_overrides",
		mcp.WithDescription("Drop the saved label positions of one chart."),
		mcp.WithString("chart_id", mcp.Description("Chart identifier or section identifier."), mcp.Required()),
	), h.handleResetOverrides)

	return s
}

// StartMCPServer starts the dashboard MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
