// Package mcpserver exposes the complexity engine over the Model Context
// Protocol so agents can request analysis without shelling out.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server and registers the analysis tools.
type Server struct {
	server *mcp.Server
}

// NewServer creates an MCP server with all fathom tools registered.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fathom",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server}
	s.registerTools()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "analyze_complexity",
		Description: "Analyze cyclomatic and cognitive complexity of JavaScript/TypeScript " +
			"files under the given paths. Reports per-function scores, severity-classified " +
			"metrics, and refactoring suggestions. Files that fail to parse get approximate " +
			"keyword-based scores marked degraded.",
	}, handleAnalyzeComplexity)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "analyze_source",
		Description: "Analyze cyclomatic and cognitive complexity of a source snippet passed " +
			"inline, without touching the filesystem. Useful for scoring generated or unsaved code.",
	}, handleAnalyzeSource)
}
