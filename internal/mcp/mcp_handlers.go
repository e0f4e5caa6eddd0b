package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/repominer/repominer/core"
	"github.com/repominer/repominer/internal/contract"
	"github.com/repominer/repominer/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleMineCommits(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}
	if m := request.GetInt("max", 0); m > 0 {
		cfg.MaxCommits = m
	}

	client := contract.NewGitClient(cfg.GitBackend)
	commits, err := core.GetCommitsResults(ctx, cfg, client, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("mining failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(commits, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleAggregateCommits(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	dimension := schema.GroupKey(request.GetString("dimension", string(schema.AuthorKey)))
	if _, ok := schema.ValidGroupKeys[dimension]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid dimension: %s", dimension)), nil
	}
	if p := request.GetString("period", ""); p != "" {
		period := schema.Period(p)
		if _, ok := schema.ValidPeriods[period]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid period: %s", p)), nil
		}
		cfg.Period = period
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}

	client := contract.NewGitClient(cfg.GitBackend)
	report, err := core.GetGroupingResults(ctx, cfg, client, h.mgr, dimension)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("aggregation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRunHistory(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store := h.mgr.GetRunStore()
	if store == nil {
		return mcp.NewToolResultError(errors.New("run tracking is disabled").Error()), nil
	}

	runs, err := store.GetAllRuns()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("run history lookup failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(runs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
