package engine

// Severity classifies a metric value against its fixed thresholds.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// FunctionComplexity represents complexity metrics for a single function.
// Line ranges of nested functions may overlap their enclosing function's
// range; that is expected, not a defect.
type FunctionComplexity struct {
	Name       string `json:"name"`
	StartLine  int    `json:"start_line"`
	EndLine    int    `json:"end_line"`
	LineCount  int    `json:"line_count"`
	Cyclomatic int    `json:"cyclomatic_complexity"`
}

// Metric is a named measurement with a severity classification.
type Metric struct {
	Name        string   `json:"name"`
	Value       float64  `json:"value"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// VisualizationBar is one bar of the chart descriptor.
type VisualizationBar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	// ColorBucket is 0..3, from least to most severe.
	ColorBucket int `json:"color_bucket"`
}

// VisualizationSpec is a declarative, serializable bar-chart descriptor.
// Rendering it to a concrete graphic is the host's responsibility.
type VisualizationSpec struct {
	// XMax is the upper bound of the linear x-scale: the largest bar value,
	// floored at 10.
	XMax float64            `json:"x_max"`
	Bars []VisualizationBar `json:"bars"`
}

// Report is the result of analyzing one source unit. It is created fresh
// per call, never mutated after construction.
type Report struct {
	Cyclomatic  int                  `json:"cyclomatic_complexity"`
	Cognitive   int                  `json:"cognitive_complexity"`
	LineCount   int                  `json:"line_count"`
	Functions   []FunctionComplexity `json:"functions"`
	Metrics     []Metric             `json:"metrics"`
	Suggestions []string             `json:"suggestions"`
	Viz         VisualizationSpec    `json:"visualization"`
	// Degraded marks approximate results produced by the token-counting
	// fallback when the source failed to parse.
	Degraded bool `json:"degraded"`
}

// MaxNesting returns the Maximum Nesting Depth metric value, or 0 when the
// metric is absent.
func (r *Report) MaxNesting() int {
	for _, m := range r.Metrics {
		if m.Name == MetricMaxNestingDepth {
			return int(m.Value)
		}
	}
	return 0
}

// ComplexFunctions returns the functions flagged as long or complex
// (line count over 15 or cyclomatic complexity over 5).
func (r *Report) ComplexFunctions() []FunctionComplexity {
	var flagged []FunctionComplexity
	for _, fn := range r.Functions {
		if isComplexFunction(fn) {
			flagged = append(flagged, fn)
		}
	}
	return flagged
}

// isComplexFunction applies the fixed long/complex rule.
func isComplexFunction(fn FunctionComplexity) bool {
	return fn.LineCount > longFunctionLines || fn.Cyclomatic > complexFunctionCyclomatic
}

const (
	longFunctionLines         = 15
	complexFunctionCyclomatic = 5
)

// NarrativeInput is the structured payload handed to an external narrative
// generator. It deliberately excludes the raw source text.
type NarrativeInput struct {
	Cyclomatic int                  `json:"cyclomatic_complexity"`
	Cognitive  int                  `json:"cognitive_complexity"`
	Functions  []FunctionComplexity `json:"functions"`
}

// NarrateFunc produces a prose summary from structured metrics. Supplied by
// the host; failures are recovered with a canned fallback.
type NarrateFunc func(NarrativeInput) (string, error)

// NarratedReport is a Report plus a host-generated prose summary.
type NarratedReport struct {
	Report
	Summary string `json:"summary"`
}
