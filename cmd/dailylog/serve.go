package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/gorewood/dailylog/internal/git"
	dailylogmcp "github.com/gorewood/dailylog/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
// A nil gitExec runs the real git binary.
func newServeCmd(gitExec git.ExecFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run dailylog as a Model Context Protocol (MCP) server over stdio.

This lets an MCP-capable agent read and write daily records with the same
settings as the command line.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "dailylog": {
        "command": "dailylog",
        "args": ["serve"]
      }
    }
  }

Available tools: show, log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := loadAppEnv(cmd)
			if err != nil {
				return err
			}
			server := dailylogmcp.NewServer(buildVersion(), &dailylogmcp.Service{
				Store:  env.store,
				Remote: env.cfg.Remote,
				Exec:   gitExec,
			})
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
