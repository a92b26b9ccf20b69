package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/vainuio/vainupylinter/core"
	"github.com/vainuio/vainupylinter/internal/contract"
	"github.com/vainuio/vainupylinter/internal/history"
	"github.com/vainuio/vainupylinter/internal/logging"
	"github.com/vainuio/vainupylinter/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	linter  contract.Linter
	mgr     contract.HistoryManager
}

// lintResult is the payload returned by lint_files.
type lintResult struct {
	Report schema.RunReport `json:"report"`
	Passed bool             `json:"passed"`
	Log    string           `json:"log"`
}

func (h *toolHandler) handleLintFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.KeepResults = false
	cfg.Files = requestFiles(request)
	if len(cfg.Files) == 0 {
		return mcp.NewToolResultError("files is required and must name at least one path"), nil
	}

	cfg.Threshold = request.GetFloat("thresh", cfg.Threshold)
	cfg.AllowErrors = request.GetBool("allow_errors", cfg.AllowErrors)
	cfg.IgnoreTests = request.GetBool("ignore_tests", cfg.IgnoreTests)
	if p := request.GetString("custom_path", ""); p != "" {
		cfg.CustomPath = p
	}
	if rc := request.GetString("rcfile", ""); rc != "" {
		cfg.RCFile = rc
	}
	// Custom scores may use their own scale, so only finiteness is checked.
	if math.IsNaN(cfg.Threshold) || math.IsInf(cfg.Threshold, 0) {
		return mcp.NewToolResultError(fmt.Sprintf("thresh must be a finite number, got %v", cfg.Threshold)), nil
	}

	var logs bytes.Buffer
	opts := []core.Option{}
	if h.mgr != nil {
		opts = append(opts, core.WithSink(history.NewRecorder(h.mgr, cfg.ConfigParams())))
	}
	runner, err := core.NewRunner(cfg, h.linter, logging.New(&logs, cfg.Verbosity), opts...)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid custom extension: %v", err)), nil
	}

	report := runner.Execute(ctx)
	jsonData, _ := json.MarshalIndent(lintResult{
		Report: report,
		Passed: report.Passed(),
		Log:    logs.String(),
	}, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

// requestFiles accepts files as an array or as a comma-separated string.
func requestFiles(request mcp.CallToolRequest) []string {
	files := request.GetStringSlice("files", nil)
	if len(files) == 0 {
		files = strings.Split(request.GetString("files", ""), ",")
	}

	var result []string
	for _, f := range files {
		if f = strings.TrimSpace(f); f != "" {
			result = append(result, f)
		}
	}
	return result
}
