package engine

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// walkResult holds the counters accumulated by one traversal.
type walkResult struct {
	// decisions is the number of decision points; cyclomatic complexity is
	// 1 + decisions.
	decisions  int
	cognitive  int
	maxNesting int
}

// decisionTypes are the node types counted as cyclomatic decision points.
// Each if/ternary branch, each switch case label, each loop header, each
// catch clause. for_in_statement covers both for-in and for-of.
var decisionTypes = map[string]bool{
	"if_statement":       true,
	"ternary_expression": true,
	"switch_case":        true,
	"for_statement":      true,
	"for_in_statement":   true,
	"while_statement":    true,
	"do_statement":       true,
	"catch_clause":       true,
}

// nestingTypes are the control-flow constructs that add 1 + depth to
// cognitive complexity and open a nesting level for their duration.
var nestingTypes = map[string]bool{
	"if_statement":     true,
	"for_statement":    true,
	"for_in_statement": true,
	"while_statement":  true,
	"do_statement":     true,
	"switch_statement": true,
	"try_statement":    true,
}

// functionTypes are the node types the extractor treats as function-like.
// Anonymous function expressions parse as function_expression; the bare
// "function" keyword is a token, not a function node, and is never listed.
var functionTypes = map[string]bool{
	"function_declaration":           true,
	"generator_function_declaration": true,
	"function_expression":            true,
	"generator_function":             true,
	"arrow_function":                 true,
}

// walkComplexity traverses the subtree rooted at node and accumulates
// decision points, nesting-weighted cognitive complexity, and the maximum
// nesting depth. When isolateNested is set, subtrees of nested function
// definitions are excluded from the counts.
func walkComplexity(node *sitter.Node, source []byte, isolateNested bool) walkResult {
	var r walkResult
	walkChildren(node, source, 0, isolateNested, &r)
	return r
}

func walkChildren(node *sitter.Node, source []byte, depth int, isolateNested bool, r *walkResult) {
	for i := range int(node.ChildCount()) {
		child := node.Child(i)
		childType := child.Type() // Cache type once per child

		if isolateNested && functionTypes[childType] {
			continue
		}

		if decisionTypes[childType] {
			r.decisions++
		}

		if childType == "binary_expression" && isShortCircuit(child) {
			r.decisions++
			// Short-circuit operators disrupt readability less than
			// branching: flat +1, no nesting penalty.
			r.cognitive++
		}

		if nestingTypes[childType] {
			r.cognitive += 1 + depth
			if depth+1 > r.maxNesting {
				r.maxNesting = depth + 1
			}
			walkChildren(child, source, depth+1, isolateNested, r)
		} else {
			walkChildren(child, source, depth, isolateNested, r)
		}
	}
}

// isShortCircuit reports whether a binary_expression uses && or ||.
func isShortCircuit(node *sitter.Node) bool {
	for i := range int(node.ChildCount()) {
		switch node.Child(i).Type() {
		case "&&", "||":
			return true
		}
	}
	return false
}
