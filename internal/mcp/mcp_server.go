// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/vainuio/vainupylinter/internal/contract"
)

// NewMCPServer initializes and configures the lint gate MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, linter contract.Linter, mgr contract.HistoryManager, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"vainupylinter",
		version,
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		linter:  linter,
		mgr:     mgr,
	}

	s.AddTool(mcp.NewTool("lint_files",
		mcp.WithDescription("Run pylint on Python files and apply the score threshold gate. Returns the per-file verdicts and whether the gate passed."),
		mcp.WithArray("files", mcp.Description("Paths of the files to check."), mcp.WithStringItems(), mcp.Required()),
		mcp.WithNumber("thresh", mcp.Description("Minimum passing score (pylint scores run 0 to 10, custom scores may use another scale). Defaults to the server configuration.")),
		mcp.WithBoolean("allow_errors", mcp.Description("Do not fail files because of error-severity messages.")),
		mcp.WithBoolean("ignore_tests", mcp.Description("Let failing test files pass: the base name contains 'test_' or the path contains 'tests.py'.")),
		mcp.WithString("custom_path", mcp.Description("Registered extension name, policy YAML file or plugin with custom rules.")),
		mcp.WithString("rcfile", mcp.Description("Pylint configuration file.")),
	), h.handleLintFiles)

	return s
}

// StartMCPServer serves the lint gate over stdio until the client disconnects.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, linter contract.Linter, mgr contract.HistoryManager, version string) error {
	s := NewMCPServer(baseCfg, linter, mgr, version)
	return server.ServeStdio(s)
}
