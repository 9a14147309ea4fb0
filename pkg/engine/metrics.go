package engine

// Metric names, in report order.
const (
	MetricCyclomatic           = "Cyclomatic Complexity"
	MetricCognitive            = "Cognitive Complexity"
	MetricFunctionCount        = "Function Count"
	MetricMaxNestingDepth      = "Maximum Nesting Depth"
	MetricComplexFunctionCount = "Complex Function Count"
)

// severityBounds classifies a value: below medium is Low, below high is
// Medium, at or above high is High.
type severityBounds struct {
	medium float64
	high   float64
}

// metricBounds is immutable configuration, constructed once at startup.
var metricBounds = map[string]severityBounds{
	MetricCyclomatic:           {medium: 10, high: 20},
	MetricCognitive:            {medium: 15, high: 30},
	MetricFunctionCount:        {medium: 5, high: 10},
	MetricMaxNestingDepth:      {medium: 3, high: 5},
	MetricComplexFunctionCount: {medium: 2, high: 5},
}

var metricDescriptions = map[string]string{
	MetricCyclomatic:           "Number of linearly independent paths through the code",
	MetricCognitive:            "How difficult the code is to understand, weighted by nesting",
	MetricFunctionCount:        "Number of functions detected in the source",
	MetricMaxNestingDepth:      "Deepest level of nested control-flow blocks",
	MetricComplexFunctionCount: "Functions that are long or have many decision points",
}

// classify maps a metric value onto the fixed severity table.
func classify(name string, value float64) Severity {
	b, ok := metricBounds[name]
	if !ok {
		return SeverityLow
	}
	switch {
	case value < b.medium:
		return SeverityLow
	case value < b.high:
		return SeverityMedium
	default:
		return SeverityHigh
	}
}

// newMetric builds one classified metric.
func newMetric(name string, value float64) Metric {
	return Metric{
		Name:        name,
		Value:       value,
		Description: metricDescriptions[name],
		Severity:    classify(name, value),
	}
}

// buildMetrics converts raw counters into the five named metrics, in fixed
// order.
func buildMetrics(cyclomatic, cognitive, functionCount, maxNesting, complexCount int) []Metric {
	return []Metric{
		newMetric(MetricCyclomatic, float64(cyclomatic)),
		newMetric(MetricCognitive, float64(cognitive)),
		newMetric(MetricFunctionCount, float64(functionCount)),
		newMetric(MetricMaxNestingDepth, float64(maxNesting)),
		newMetric(MetricComplexFunctionCount, float64(complexCount)),
	}
}
