package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vainuio/vainupylinter/internal/contract"
	"github.com/vainuio/vainupylinter/internal/history"
	"github.com/vainuio/vainupylinter/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the vainupylinter MCP server",
	Long: `Launch an MCP server over stdio that lets AI agents run the lint gate
through the lint_files tool. Flags given here become the defaults of every call.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		// Positional arguments are not files for the server
		return sharedSetup(rootCtx, cmd, nil)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		defer history.CloseHistory()
		return mcp.StartMCPServer(rootCtx, cfg, contract.NewLocalPylint(cfg.PylintCommand), historyManager, version)
	},
}
