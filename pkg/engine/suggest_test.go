package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestionsBaselineOnly(t *testing.T) {
	got := buildSuggestions(1, 0, 0, nil)

	assert.Equal(t, baselineSuggestions, got, "simple code gets only the fixed tail")
}

func TestSuggestionRules(t *testing.T) {
	flagged := []FunctionComplexity{
		{Name: "parseAll", Cyclomatic: 9, LineCount: 40},
		{Name: "dispatch", Cyclomatic: 7, LineCount: 12},
	}

	got := buildSuggestions(12, 18, 4, flagged)

	require.Len(t, got, 4+len(baselineSuggestions))
	assert.Contains(t, got[0], "Cyclomatic complexity is 12")
	assert.Contains(t, got[1], "Cognitive complexity is 18")
	assert.Contains(t, got[2], "depth 4")
	assert.Contains(t, got[3], "parseAll, dispatch")
}

func TestSuggestionThresholdsExclusive(t *testing.T) {
	// Values at the thresholds do not trigger advice
	got := buildSuggestions(10, 15, 3, nil)
	assert.Equal(t, baselineSuggestions, got)
}

func TestSuggestionsDeterministic(t *testing.T) {
	flagged := []FunctionComplexity{{Name: "a"}, {Name: "b"}}
	first := buildSuggestions(11, 16, 4, flagged)
	second := buildSuggestions(11, 16, 4, flagged)
	assert.Equal(t, first, second)
}

func TestReportSuggestionsForComplexCode(t *testing.T) {
	var b strings.Builder
	b.WriteString("function tangle(a) {\n")
	for i := 0; i < 12; i++ {
		b.WriteString("  if (a) { a--; }\n")
	}
	b.WriteString("  return a;\n}\n")

	report := analyzeT(t, b.String())

	joined := strings.Join(report.Suggestions, "\n")
	assert.Contains(t, joined, "single-purpose functions")
	assert.Contains(t, joined, "tangle")
	for _, tail := range baselineSuggestions {
		assert.Contains(t, joined, tail)
	}
}
