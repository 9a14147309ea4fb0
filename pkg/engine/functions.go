package engine

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/fathomdev/fathom/pkg/parser"
)

// anonymousName is the display name for functions with no resolvable name.
const anonymousName = "anonymous"

// extractFunctions locates function-like constructs in document order and
// scores each one with the walker, restarting the cyclomatic base at 1.
//
// A nested function contributes to both its own score and its enclosing
// function's score. That mirrors the per-function re-slicing behavior this
// engine was modeled on and is preserved deliberately; isolateNested
// excludes nested function bodies instead.
func extractFunctions(result *parser.ParseResult, isolateNested bool) []FunctionComplexity {
	var functions []FunctionComplexity

	parser.WalkTyped(result.Tree.RootNode(), result.Source, func(node *sitter.Node, nodeType string, source []byte) bool {
		if !functionTypes[nodeType] {
			return true
		}

		start := int(node.StartPoint().Row) + 1
		end := int(node.EndPoint().Row) + 1
		w := walkComplexity(node, source, isolateNested)

		functions = append(functions, FunctionComplexity{
			Name:       functionName(node, source),
			StartLine:  start,
			EndLine:    end,
			LineCount:  end - start + 1,
			Cyclomatic: 1 + w.decisions,
		})
		return true
	})

	return functions
}

// functionName resolves a function's display name: the declaration's own
// name if present, otherwise the variable binding it initializes,
// otherwise "anonymous".
func functionName(node *sitter.Node, source []byte) string {
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		return parser.GetNodeText(nameNode, source)
	}

	if p := node.Parent(); p != nil && p.Type() == "variable_declarator" {
		if nameNode := p.ChildByFieldName("name"); nameNode != nil {
			return parser.GetNodeText(nameNode, source)
		}
	}

	return anonymousName
}
