package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/hotelpulse/core"
	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/huangsam/hotelpulse/internal/dataset"
	"github.com/huangsam/hotelpulse/internal/outwriter"
	"github.com/huangsam/hotelpulse/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// jsonConfig returns a copy of the base config that writes JSON.
func (h *toolHandler) jsonConfig() *contract.Config {
	cfg := h.baseCfg.Clone()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = ""
	return cfg
}

func (h *toolHandler) store() contract.PositionStore {
	if h.mgr == nil {
		return nil
	}
	return h.mgr.GetPositionStore()
}

// render captures a writer function as a text result.
func render(write func(io.Writer) error) (*mcp.CallToolResult, error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("output failed: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func (h *toolHandler) preview(ctx context.Context, cfg *contract.Config, request mcp.CallToolRequest) (schema.SectionView, *mcp.CallToolResult) {
	id := request.GetString("section_id", "")
	if id == "" {
		return schema.SectionView{}, mcp.NewToolResultError("section_id is required")
	}
	d, err := core.NewDashboardFromConfig(cfg, h.store(), false)
	if err != nil {
		return schema.SectionView{}, mcp.NewToolResultError(fmt.Sprintf("failed to load dataset: %v", err))
	}
	view, err := d.Preview(ctx, id)
	if err != nil {
		return schema.SectionView{}, mcp.NewToolResultError(fmt.Sprintf("aggregation failed: %v", err))
	}
	return view, nil
}

func (h *toolHandler) handleListSections(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.jsonConfig()
	bundle, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load dataset: %v", err)), nil
	}
	return render(func(w io.Writer) error {
		return outwriter.WriteSections(w, bundle.Sections, cfg)
	})
}

func (h *toolHandler) handleGetSectionTotals(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.jsonConfig()
	limit := request.GetInt("limit", 0)
	if limit < 0 {
		return mcp.NewToolResultError("limit cannot be negative"), nil
	}
	view, res := h.preview(ctx, cfg, request)
	if res != nil {
		return res, nil
	}
	return render(func(w io.Writer) error {
		return outwriter.WriteTotals(w, view, limit, cfg)
	})
}

func (h *toolHandler) handleGetAnnotations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.jsonConfig()
	view, res := h.preview(ctx, cfg, request)
	if res != nil {
		return res, nil
	}
	return render(func(w io.Writer) error {
		return outwriter.WriteAnnotations(w, view, cfg)
	})
}

func (h *toolHandler) handleGetInterpretation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view, res := h.preview(ctx, h.jsonConfig(), request)
	if res != nil {
		return res, nil
	}
	return mcp.NewToolResultText(view.Interpretation), nil
}

func (h *toolHandler) handleMoveAnnotation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.jsonConfig()
	id := request.GetString("chart_id", "")
	index := request.GetInt("index", -1)
	if id == "" {
		return mcp.NewToolResultError("chart_id is required"), nil
	}
	if index < 0 {
		return mcp.NewToolResultError("index must be zero or greater"), nil
	}
	store := h.store()
	if store == nil {
		return mcp.NewToolResultError("position store is not initialized"), nil
	}

	d, err := core.NewDashboardFromConfig(cfg, store, true)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load dataset: %v", err)), nil
	}
	chartID, err := core.ResolveChartID(d.Bundle(), id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	to := schema.Position{X: request.GetFloat("x", 0), Y: request.GetFloat("y", 0)}
	pos, err := d.MoveTo(ctx, chartID, index, to)
	if err != nil {
		if errors.Is(err, core.ErrNoMove) {
			return mcp.NewToolResultError(fmt.Sprintf("label %d was not moved: %v", index, err)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("drag failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(schema.ChartOverride{ChartID: chartID, Index: index, X: pos.X, Y: pos.Y}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListOverrides(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store := h.store()
	if store == nil {
		return mcp.NewToolResultError("position store is not initialized"), nil
	}
	rows, err := store.Snapshot()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read overrides: %v", err)), nil
	}
	cfg := h.jsonConfig()
	return render(func(w io.Writer) error {
		return outwriter.WriteOverrides(w, rows, cfg)
	})
}

func (h *toolHandler) handleResetOverrides(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("chart_id", "")
	if id == "" {
		return mcp.NewToolResultError("chart_id is required"), nil
	}
	chartID, err := core.ExecutePositionsReset(ctx, h.jsonConfig(), h.store(), id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reset failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Cleared saved positions of %s", chartID)), nil
}
