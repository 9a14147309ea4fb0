package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/fathomdev/fathom/internal/mcpserver"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes fathom's
complexity analysis as tools that LLMs can invoke.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "fathom": {
        "command": "fathom",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - analyze_complexity    Analyze files under the given paths
  - analyze_source        Analyze an inline source snippet`,
		Action: runMCPCmd,
	}
}

func runMCPCmd(c *cli.Context) error {
	server := mcpserver.NewServer(version)
	return server.Run(context.Background())
}
