package main

import (
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/esg-research/internal/tool"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve checklist tools over MCP on stdio",
	Long: "Runs an MCP server on stdin/stdout exposing describe_research_scope, " +
		"validate_research_checklist, set_research_field, missing_research_fields and build_research_prompt.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("mcp"); err != nil {
			return err
		}

		s := tool.NewServer(cfg.MCP.Name, cfg.MCP.Version)
		zap.L().Info("starting mcp server", zap.String("name", cfg.MCP.Name), zap.String("version", cfg.MCP.Version))
		if err := s.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
			return eris.Wrap(err, "mcp: run")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
