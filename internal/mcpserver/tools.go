package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"

	"github.com/fathomdev/fathom/internal/fileproc"
	"github.com/fathomdev/fathom/internal/scanner"
	"github.com/fathomdev/fathom/pkg/engine"
	"github.com/fathomdev/fathom/pkg/parser"
)

// ComplexityInput is the input for the analyze_complexity tool.
type ComplexityInput struct {
	Paths                  []string `json:"paths,omitempty" jsonschema:"Paths to analyze. Defaults to current directory if empty."`
	Dialect                string   `json:"dialect,omitempty" jsonschema:"Force grammar dialect: javascript, typescript, or tsx. Detected per file if empty."`
	IsolateNestedFunctions bool     `json:"isolate_nested_functions,omitempty" jsonschema:"Exclude nested function bodies from enclosing function scores."`
}

// SourceInput is the input for the analyze_source tool.
type SourceInput struct {
	Source  string `json:"source" jsonschema:"Source code to analyze."`
	Dialect string `json:"dialect,omitempty" jsonschema:"Grammar dialect: javascript, typescript, or tsx. Default tsx."`
}

func toolResult(data any) (*mcp.CallToolResult, any, error) {
	text, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(text)},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

func handleAnalyzeComplexity(ctx context.Context, req *mcp.CallToolRequest, input ComplexityInput) (*mcp.CallToolResult, any, error) {
	files, err := scanner.New(nil).ScanPaths(input.Paths)
	if err != nil {
		return toolError(err.Error())
	}
	if len(files) == 0 {
		return toolError("no source files found")
	}

	analysis := fileproc.AnalyzeFiles(files, fileproc.Options{
		Dialect:                parser.Dialect(input.Dialect),
		IsolateNestedFunctions: input.IsolateNestedFunctions,
	})
	return toolResult(analysis)
}

func handleAnalyzeSource(ctx context.Context, req *mcp.CallToolRequest, input SourceInput) (*mcp.CallToolResult, any, error) {
	if input.Source == "" {
		return toolError("source is required")
	}

	opts := []engine.Option{}
	if input.Dialect != "" {
		opts = append(opts, engine.WithDialect(parser.Dialect(input.Dialect)))
	}

	a := engine.New(opts...)
	defer a.Close()

	report, err := a.Analyze(input.Source)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(report)
}
