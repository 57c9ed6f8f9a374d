package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/seasonlab/dropoff/core"
	"github.com/seasonlab/dropoff/internal/contract"
	"github.com/seasonlab/dropoff/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

func (h *toolHandler) handleGetSeasonKPIs(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if d := request.GetString("data_dir", ""); d != "" {
		cfg.DataDir = d
	}
	if t := request.GetFloat("high_rated_threshold", 0); t > 0 {
		cfg.HighRatedThreshold = t
	}
	showID := request.GetString("show_id", "")

	result, err := core.GetAnalysisResult(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	kpis := result.SeasonKPIs
	if showID != "" {
		kpis = filterKPIs(kpis, showID)
	}

	jsonData, _ := json.MarshalIndent(kpis, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetSharkJumps(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if d := request.GetString("data_dir", ""); d != "" {
		cfg.DataDir = d
	}
	showID := request.GetString("show_id", "")

	result, err := core.GetAnalysisResult(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	sharks := result.SharkJumps
	if showID != "" {
		filtered := make([]schema.ShowShark, 0, 1)
		for _, s := range sharks {
			if s.ShowID == showID {
				filtered = append(filtered, s)
			}
		}
		sharks = filtered
	}

	jsonData, _ := json.MarshalIndent(sharks, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetDurabilityIndex(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if d := request.GetString("data_dir", ""); d != "" {
		cfg.DataDir = d
	}
	showID := request.GetString("show_id", "")

	result, err := core.GetAnalysisResult(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	durability := result.Durability
	if showID != "" {
		filtered := make([]schema.ShowDurability, 0, 1)
		for _, d := range durability {
			if d.ShowID == showID {
				filtered = append(filtered, d)
			}
		}
		durability = filtered
	}

	jsonData, _ := json.MarshalIndent(durability, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func filterKPIs(kpis []schema.SeasonKPI, showID string) []schema.SeasonKPI {
	filtered := make([]schema.SeasonKPI, 0, len(kpis))
	for _, k := range kpis {
		if k.ShowID == showID {
			filtered = append(filtered, k)
		}
	}
	return filtered
}
