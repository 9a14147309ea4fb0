package engine

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fathomdev/fathom/pkg/parser"
)

func TestNew(t *testing.T) {
	a := New()
	require.NotNil(t, a)
	assert.Equal(t, parser.DialectTSX, a.dialect)
	assert.Equal(t, DefaultMaxSourceBytes, a.maxSourceBytes)
	a.Close()
}

func TestNewWithOptions(t *testing.T) {
	a := New(
		WithDialect(parser.DialectJavaScript),
		WithIsolatedNestedFunctions(),
		WithMaxSourceSize(1024),
	)
	defer a.Close()

	assert.Equal(t, parser.DialectJavaScript, a.dialect)
	assert.True(t, a.isolateNested)
	assert.Equal(t, 1024, a.maxSourceBytes)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	report, err := Analyze("")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Cyclomatic)
	assert.Equal(t, 0, report.Cognitive)
	assert.Equal(t, 1, report.LineCount)
	assert.Empty(t, report.Functions)
	assert.NotNil(t, report.Functions)
	assert.False(t, report.Degraded)
	assert.Len(t, report.Metrics, 5)
}

func TestAnalyzeFlatIfs(t *testing.T) {
	code := `
if (a) { x = 1; }
if (b) { x = 2; }
if (c) { x = 3; }
`
	report, err := Analyze(code)
	require.NoError(t, err)

	assert.Equal(t, 4, report.Cyclomatic, "1 + one per flat if")
	assert.Equal(t, 3, report.Cognitive, "flat branches cost 1 each")
}

func TestAnalyzeNestedIf(t *testing.T) {
	code := `
if (a) {
  if (b) {
    x = 1;
  }
}
`
	report, err := Analyze(code)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Cyclomatic)
	assert.Equal(t, 3, report.Cognitive, "1 at depth 0 plus 2 at depth 1")
}

func TestNestingAsymmetry(t *testing.T) {
	flat := `
if (a) { x = 1; }
if (b) { x = 2; }
if (c) { x = 3; }
`
	nested := `
if (a) {
  if (b) {
    if (c) {
      x = 1;
    }
  }
}
`
	flatReport, err := Analyze(flat)
	require.NoError(t, err)
	nestedReport, err := Analyze(nested)
	require.NoError(t, err)

	assert.Equal(t, flatReport.Cyclomatic, nestedReport.Cyclomatic,
		"same decision count either way")
	assert.Equal(t, 3, flatReport.Cognitive)
	assert.Equal(t, 6, nestedReport.Cognitive, "deep nesting costs more than flat")
	assert.Equal(t, 3, nestedReport.MaxNesting())
}

func TestAnalyzeNamedFunction(t *testing.T) {
	code := `function f(a) { if (a) { return 1; } else { return 2; } }`

	report, err := Analyze(code)
	require.NoError(t, err)

	require.Len(t, report.Functions, 1)
	assert.Equal(t, "f", report.Functions[0].Name)
	assert.Equal(t, 2, report.Functions[0].Cyclomatic)
	assert.GreaterOrEqual(t, report.Cyclomatic, 2)
}

func TestAnalyzeMalformedInput(t *testing.T) {
	report, err := Analyze(`if (a && b { return; }`)
	require.NoError(t, err, "malformed input must not surface an error")

	assert.True(t, report.Degraded)
	assert.Equal(t, 3, report.Cyclomatic, "1 + if + &&")
	assert.Equal(t, 4, report.Cognitive, "round(1.2 * 3)")
	assert.Empty(t, report.Functions)
	assert.Len(t, report.Metrics, 5)
	assert.NotEmpty(t, report.Suggestions)
}

func TestAnalyzeIdempotent(t *testing.T) {
	code := `
function choose(a, b) {
  if (a && b) { return a; }
  for (const x of a) { b += x; }
  return b;
}
`
	first, err := Analyze(code)
	require.NoError(t, err)
	second, err := Analyze(code)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestReportRoundTrip(t *testing.T) {
	code := `
function f(a) {
  if (a > 0) { return a; }
  return -a;
}
const g = (x) => x ? 1 : 0;
`
	report, err := Analyze(code)
	require.NoError(t, err)

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *report, decoded)
}

func TestAnalyzeSourceTooLarge(t *testing.T) {
	a := New(WithMaxSourceSize(16))
	defer a.Close()

	report, err := a.Analyze(strings.Repeat("x = 1;\n", 100))
	require.Error(t, err)
	assert.Nil(t, report, "no partial report on analysis failure")
	assert.ErrorIs(t, err, ErrSourceTooLarge)

	var analysisErr *AnalysisError
	assert.ErrorAs(t, err, &analysisErr)
}

func TestAnalyzeTSXAnnotationsAndMarkup(t *testing.T) {
	code := `
const abs = (p: number): number => p > 0 ? p : -p;
const App = () => <div>{abs(-1)}</div>;
`
	report, err := Analyze(code)
	require.NoError(t, err)

	assert.False(t, report.Degraded)
	assert.Equal(t, 2, report.Cyclomatic, "ternary is the only decision point")
	require.Len(t, report.Functions, 2)
	assert.Equal(t, "abs", report.Functions[0].Name)
	assert.Equal(t, "App", report.Functions[1].Name)
}

func TestAnalyzeWithNarrative(t *testing.T) {
	code := `function f(a) { if (a) { return 1; } return 0; }`

	narrated, err := AnalyzeWithNarrative(code, func(in NarrativeInput) (string, error) {
		assert.Equal(t, 2, in.Cyclomatic)
		require.Len(t, in.Functions, 1)
		return "looks fine", nil
	})
	require.NoError(t, err)

	assert.Equal(t, "looks fine", narrated.Summary)
	assert.Equal(t, 2, narrated.Cyclomatic)
}

func TestAnalyzeWithNarrativeFallback(t *testing.T) {
	code := `function f(a) { if (a) { return 1; } return 0; }`

	narrated, err := AnalyzeWithNarrative(code, func(NarrativeInput) (string, error) {
		return "", errors.New("upstream unavailable")
	})
	require.NoError(t, err, "narrative failure must not invalidate the report")

	assert.Equal(t, "Analyzed 1 functions: cyclomatic complexity 2, cognitive complexity 1.", narrated.Summary)
	assert.Equal(t, 2, narrated.Cyclomatic)
}

func TestAnalyzeWithNarrativeNilFunc(t *testing.T) {
	narrated, err := AnalyzeWithNarrative("", nil)
	require.NoError(t, err)
	assert.Contains(t, narrated.Summary, "cyclomatic complexity 1")
}

func TestAnalyzerReuse(t *testing.T) {
	a := New()
	defer a.Close()

	for range 3 {
		report, err := a.Analyze(`if (a) { x = 1; }`)
		require.NoError(t, err)
		assert.Equal(t, 2, report.Cyclomatic)
	}
}
