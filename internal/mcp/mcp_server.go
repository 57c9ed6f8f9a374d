// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/seasonlab/dropoff/internal/contract"
)

// NewMCPServer initializes and configures the Dropoff MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Dropoff Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: get_season_kpis ---
	s.AddTool(mcp.NewTool("get_season_kpis",
		mcp.WithDescription("Compute per-season rating KPIs (weighted rating, trends, ranks) for the configured shows."),
		mcp.WithString("data_dir", mcp.Description("Path to the data directory (defaults to the configured directory if not specified).")),
		mcp.WithString("show_id", mcp.Description("Restrict the output to a single show ID (e.g., 'tt0096697').")),
		mcp.WithNumber("high_rated_threshold", mcp.Description("Rating an episode must strictly exceed to count as high-rated. Defaults to 8.0.")),
	), h.handleGetSeasonKPIs)

	// --- 2. Tool: get_shark_jumps ---
	s.AddTool(mcp.NewTool("get_shark_jumps",
		mcp.WithDescription("Detect the shark-jump season (onset of sustained rating decline) for each configured show."),
		mcp.WithString("data_dir", mcp.Description("Path to the data directory.")),
		mcp.WithString("show_id", mcp.Description("Restrict the output to a single show ID.")),
	), h.handleGetSharkJumps)

	// --- 3. Tool: get_durability_index ---
	s.AddTool(mcp.NewTool("get_durability_index",
		mcp.WithDescription("Count how many seasons each show spent above its own series average rating."),
		mcp.WithString("data_dir", mcp.Description("Path to the data directory.")),
		mcp.WithString("show_id", mcp.Description("Restrict the output to a single show ID.")),
	), h.handleGetDurabilityIndex)

	return s
}

// StartMCPServer starts the Dropoff MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
