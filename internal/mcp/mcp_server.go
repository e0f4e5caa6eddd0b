// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/repominer/repominer/internal/contract"
)

// NewMCPServer initializes and configures the repominer MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Repominer Mining Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: mine_commits ---
	s.AddTool(mcp.NewTool("mine_commits",
		mcp.WithDescription("Read git history and return normalized commit records (hash, author, email, timestamp, message, files)."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to the server's configured repository).")),
		mcp.WithNumber("max", mcp.Description("Cap the number of commits read from history.")),
	), h.handleMineCommits)

	// --- 2. Tool: aggregate_commits ---
	s.AddTool(mcp.NewTool("aggregate_commits",
		mcp.WithDescription("Aggregate git history into ranked commit-count groups by author, date or file."),
		mcp.WithString("dimension", mcp.Description("Grouping dimension (author, date, file)."), mcp.Required(), mcp.Enum("author", "date", "file")),
		mcp.WithString("period", mcp.Description("Bucket size for the date dimension (day, week, month). Defaults to 'month'."), mcp.Enum("day", "week", "month")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of groups returned.")),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
	), h.handleAggregateCommits)

	// --- 3. Tool: get_run_history ---
	s.AddTool(mcp.NewTool("get_run_history",
		mcp.WithDescription("Return metadata about previously recorded mining runs (dimension, duration, commit totals)."),
	), h.handleGetRunHistory)

	return s
}

// StartMCPServer starts the repominer MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
