package engine

import (
	"fmt"
	"strings"
)

// Suggestion thresholds; distinct from the severity table, these gate
// refactor advice rather than classification.
const (
	suggestCyclomaticAbove = 10
	suggestCognitiveAbove  = 15
	suggestNestingAbove    = 3
)

// baselineSuggestions is the fixed tail appended to every suggestion list.
var baselineSuggestions = []string{
	"Document each exported function and tool handler with a short description of inputs and outputs",
	"Keep handlers deterministic and side-effect free where possible to simplify testing",
	"Validate input parameters early and return explicit errors for malformed requests",
}

// buildSuggestions maps metric values onto refactor advice via a fixed rule
// table. Deterministic: same report, same suggestions.
func buildSuggestions(cyclomatic, cognitive, maxNesting int, flagged []FunctionComplexity) []string {
	var suggestions []string

	if cyclomatic > suggestCyclomaticAbove {
		suggestions = append(suggestions,
			fmt.Sprintf("Cyclomatic complexity is %d; break the logic into smaller, single-purpose functions", cyclomatic))
	}
	if cognitive > suggestCognitiveAbove {
		suggestions = append(suggestions,
			fmt.Sprintf("Cognitive complexity is %d; simplify nested conditionals with early returns or helper functions", cognitive))
	}
	if maxNesting > suggestNestingAbove {
		suggestions = append(suggestions,
			fmt.Sprintf("Nesting reaches depth %d; use guard clauses to flatten deeply nested blocks", maxNesting))
	}
	if len(flagged) > 0 {
		names := make([]string, len(flagged))
		for i, fn := range flagged {
			names[i] = fn.Name
		}
		suggestions = append(suggestions,
			"Refactor long or complex functions: "+strings.Join(names, ", "))
	}

	return append(suggestions, baselineSuggestions...)
}
