// Package parser wraps tree-sitter parsing for the ECMAScript family of
// dialects (JavaScript, TypeScript, TSX) that the analysis engine accepts.
package parser

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Dialect identifies the grammar variant used to parse source text.
type Dialect string

const (
	DialectJavaScript Dialect = "javascript"
	DialectTypeScript Dialect = "typescript"
	// DialectTSX accepts type annotations and embedded JSX markup. It is the
	// default because it is a superset of what the other dialects accept for
	// the constructs the engine cares about.
	DialectTSX     Dialect = "tsx"
	DialectUnknown Dialect = "unknown"
)

// ErrParse reports that the source text could not be parsed into a usable
// syntax tree. It is a recoverable condition: callers are expected to fall
// back to token-level analysis rather than abort.
var ErrParse = errors.New("source failed to parse")

// Parser wraps a tree-sitter parser configured for one dialect at a time.
// A Parser is not safe for concurrent use; create one per goroutine.
type Parser struct {
	parser *sitter.Parser
}

// ParseResult contains the parsed tree and the inputs it was built from.
type ParseResult struct {
	Tree    *sitter.Tree
	Dialect Dialect
	Source  []byte
}

// New creates a new parser instance.
func New() *Parser {
	return &Parser{
		parser: sitter.NewParser(),
	}
}

// Parse parses source text with the given dialect. A tree containing syntax
// errors is reported as ErrParse so the caller can deterministically choose
// the degraded path; the partial tree is not returned.
func (p *Parser) Parse(source []byte, dialect Dialect) (*ParseResult, error) {
	tsLang, err := grammarFor(dialect)
	if err != nil {
		return nil, err
	}

	p.parser.SetLanguage(tsLang)
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}
	if tree == nil || tree.RootNode() == nil {
		return nil, fmt.Errorf("%w: no tree produced", ErrParse)
	}
	if tree.RootNode().HasError() {
		return nil, fmt.Errorf("%w: syntax errors in tree", ErrParse)
	}

	return &ParseResult{
		Tree:    tree,
		Dialect: dialect,
		Source:  source,
	}, nil
}

// grammarFor returns the tree-sitter grammar for a dialect.
func grammarFor(dialect Dialect) (*sitter.Language, error) {
	switch dialect {
	case DialectJavaScript:
		return javascript.GetLanguage(), nil
	case DialectTypeScript:
		return typescript.GetLanguage(), nil
	case DialectTSX:
		return tsx.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", dialect)
	}
}

// DetectDialect determines the dialect from a file path. Files outside the
// ECMAScript family map to DialectUnknown.
func DetectDialect(path string) Dialect {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".js", ".mjs", ".cjs":
		return DialectJavaScript
	case ".ts", ".mts", ".cts":
		return DialectTypeScript
	case ".tsx", ".jsx":
		// The TSX grammar handles JSX as well
		return DialectTSX
	default:
		return DialectUnknown
	}
}

// Close releases parser resources.
func (p *Parser) Close() {
	p.parser.Close()
}

// NodeVisitor is a function that visits syntax tree nodes.
type NodeVisitor func(node *sitter.Node, source []byte) bool

// TypedNodeVisitor visits nodes with pre-cached node type to avoid CGO overhead.
type TypedNodeVisitor func(node *sitter.Node, nodeType string, source []byte) bool

// Walk traverses the tree calling visitor for each node. Returning false
// from the visitor prunes the subtree.
func Walk(node *sitter.Node, source []byte, visitor NodeVisitor) {
	if node == nil {
		return
	}

	if !visitor(node, source) {
		return
	}

	for i := range int(node.ChildCount()) {
		Walk(node.Child(i), source, visitor)
	}
}

// WalkTyped traverses the tree with cached node types to reduce CGO overhead.
func WalkTyped(node *sitter.Node, source []byte, visitor TypedNodeVisitor) {
	if node == nil {
		return
	}

	nodeType := node.Type() // Cache the type once per node
	if !visitor(node, nodeType, source) {
		return
	}

	for i := range int(node.ChildCount()) {
		WalkTyped(node.Child(i), source, visitor)
	}
}

// GetNodeText extracts the source text for a node.
// Returns empty string if node is nil or byte offsets are out of bounds.
func GetNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start := node.StartByte()
	end := node.EndByte()
	if start > end || end > uint32(len(source)) {
		return ""
	}
	return string(source[start:end])
}
