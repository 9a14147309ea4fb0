// Package engine analyzes a single source unit for cyclomatic and
// cognitive complexity and produces a self-contained report: per-function
// scores, classified metrics, refactor suggestions, and a chart-ready
// visualization descriptor.
//
// The pipeline is a pure transformation. A report is built fresh per call
// and never mutated afterwards; no state is retained between calls beyond
// the reusable tree-sitter parser held by an Analyzer.
package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fathomdev/fathom/pkg/parser"
)

// DefaultMaxSourceBytes caps input size to guard against pathological
// inputs exhausting the parser. Zero disables the limit.
const DefaultMaxSourceBytes = 10 << 20

// ErrSourceTooLarge reports input over the configured size limit.
var ErrSourceTooLarge = errors.New("source exceeds size limit")

// AnalysisError is the only error kind that crosses the engine boundary.
// Parse failures are recovered internally via degraded mode and never
// surface on their own.
type AnalysisError struct {
	Err error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis failed: %v", e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// Analyzer runs the complexity pipeline. It holds a reusable parser and is
// not safe for concurrent use; the package-level Analyze function creates a
// fresh parser per call and is safe to call from multiple goroutines.
type Analyzer struct {
	parser         *parser.Parser
	dialect        parser.Dialect
	isolateNested  bool
	maxSourceBytes int
}

// Option is a functional option for configuring an Analyzer.
type Option func(*Analyzer)

// WithDialect selects the grammar dialect. Default is TSX, which accepts
// type annotations and embedded markup.
func WithDialect(d parser.Dialect) Option {
	return func(a *Analyzer) {
		a.dialect = d
	}
}

// WithIsolatedNestedFunctions excludes a nested function's body from its
// enclosing function's score. By default nested functions are double
// counted, matching the line-range re-slicing behavior this engine
// preserves for parity.
func WithIsolatedNestedFunctions() Option {
	return func(a *Analyzer) {
		a.isolateNested = true
	}
}

// WithMaxSourceSize sets the input size limit in bytes (0 = no limit).
func WithMaxSourceSize(n int) Option {
	return func(a *Analyzer) {
		a.maxSourceBytes = n
	}
}

// New creates an Analyzer. Call Close to release parser resources.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		parser:         parser.New(),
		dialect:        parser.DialectTSX,
		maxSourceBytes: DefaultMaxSourceBytes,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Close releases parser resources.
func (a *Analyzer) Close() {
	a.parser.Close()
}

// Analyze runs the full pipeline on one source unit. It returns either a
// complete report (with Degraded set when the parse failed and the
// token-counting fallback ran) or an AnalysisError; never a silently
// zeroed report.
func (a *Analyzer) Analyze(source string) (*Report, error) {
	if a.maxSourceBytes > 0 && len(source) > a.maxSourceBytes {
		return nil, &AnalysisError{Err: fmt.Errorf("%w: %d bytes", ErrSourceTooLarge, len(source))}
	}

	lineCount := strings.Count(source, "\n") + 1

	result, err := a.parser.Parse([]byte(source), a.dialect)
	if err != nil {
		if errors.Is(err, parser.ErrParse) {
			return degradedReport(source, lineCount), nil
		}
		return nil, &AnalysisError{Err: err}
	}

	return exactReport(result, lineCount, a.isolateNested), nil
}

// exactReport builds a report from a successfully parsed tree.
func exactReport(result *parser.ParseResult, lineCount int, isolateNested bool) *Report {
	w := walkComplexity(result.Tree.RootNode(), result.Source, false)
	cyclomatic := 1 + w.decisions

	functions := extractFunctions(result, isolateNested)
	if functions == nil {
		functions = make([]FunctionComplexity, 0)
	}

	r := &Report{
		Cyclomatic: cyclomatic,
		Cognitive:  w.cognitive,
		LineCount:  lineCount,
		Functions:  functions,
	}

	flagged := r.ComplexFunctions()
	r.Metrics = buildMetrics(cyclomatic, w.cognitive, len(functions), w.maxNesting, len(flagged))
	r.Suggestions = buildSuggestions(cyclomatic, w.cognitive, w.maxNesting, flagged)
	r.Viz = buildVisualization(functions)

	return r
}

// degradedReport builds an approximate report from the keyword scan. The
// function list stays empty: extraction needs a tree.
func degradedReport(source string, lineCount int) *Report {
	d := scanDegraded(source)

	r := &Report{
		Cyclomatic: d.cyclomatic,
		Cognitive:  d.cognitive,
		LineCount:  lineCount,
		Functions:  make([]FunctionComplexity, 0),
		Degraded:   true,
	}

	r.Metrics = buildMetrics(d.cyclomatic, d.cognitive, 0, d.maxNesting, 0)
	r.Suggestions = buildSuggestions(d.cyclomatic, d.cognitive, d.maxNesting, nil)
	r.Viz = buildVisualization(nil)

	return r
}

// Analyze runs the pipeline with a fresh parser. Safe for concurrent use.
func Analyze(source string) (*Report, error) {
	a := New()
	defer a.Close()
	return a.Analyze(source)
}

// AnalyzeWithNarrative composes Analyze with a host-supplied narrative
// generator. The generator receives only structured metrics, never the raw
// source. If it fails, a canned summary built from the metrics is
// substituted; the underlying report is returned either way.
func (a *Analyzer) AnalyzeWithNarrative(source string, narrate NarrateFunc) (*NarratedReport, error) {
	report, err := a.Analyze(source)
	if err != nil {
		return nil, err
	}

	input := NarrativeInput{
		Cyclomatic: report.Cyclomatic,
		Cognitive:  report.Cognitive,
		Functions:  report.Functions,
	}

	summary := cannedSummary(input)
	if narrate != nil {
		if s, err := narrate(input); err == nil {
			summary = s
		}
	}

	return &NarratedReport{Report: *report, Summary: summary}, nil
}

// AnalyzeWithNarrative is the package-level form of the composition
// helper. Safe for concurrent use.
func AnalyzeWithNarrative(source string, narrate NarrateFunc) (*NarratedReport, error) {
	a := New()
	defer a.Close()
	return a.AnalyzeWithNarrative(source, narrate)
}

// cannedSummary is the fallback narrative built directly from metrics.
func cannedSummary(in NarrativeInput) string {
	return fmt.Sprintf("Analyzed %d functions: cyclomatic complexity %d, cognitive complexity %d.",
		len(in.Functions), in.Cyclomatic, in.Cognitive)
}
