package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		metric string
		value  float64
		want   Severity
	}{
		{MetricCyclomatic, 1, SeverityLow},
		{MetricCyclomatic, 9, SeverityLow},
		{MetricCyclomatic, 10, SeverityMedium},
		{MetricCyclomatic, 19, SeverityMedium},
		{MetricCyclomatic, 20, SeverityHigh},
		{MetricCyclomatic, 25, SeverityHigh},
		{MetricCognitive, 14, SeverityLow},
		{MetricCognitive, 15, SeverityMedium},
		{MetricCognitive, 29, SeverityMedium},
		{MetricCognitive, 30, SeverityHigh},
		{MetricFunctionCount, 4, SeverityLow},
		{MetricFunctionCount, 5, SeverityMedium},
		{MetricFunctionCount, 10, SeverityHigh},
		{MetricMaxNestingDepth, 2, SeverityLow},
		{MetricMaxNestingDepth, 3, SeverityMedium},
		{MetricMaxNestingDepth, 4, SeverityMedium},
		{MetricMaxNestingDepth, 5, SeverityHigh},
		{MetricComplexFunctionCount, 1, SeverityLow},
		{MetricComplexFunctionCount, 2, SeverityMedium},
		{MetricComplexFunctionCount, 5, SeverityHigh},
	}

	for _, tt := range tests {
		got := classify(tt.metric, tt.value)
		assert.Equal(t, tt.want, got, "%s = %v", tt.metric, tt.value)
	}
}

func TestBuildMetricsOrder(t *testing.T) {
	metrics := buildMetrics(25, 8, 3, 2, 1)

	require.Len(t, metrics, 5)
	assert.Equal(t, MetricCyclomatic, metrics[0].Name)
	assert.Equal(t, MetricCognitive, metrics[1].Name)
	assert.Equal(t, MetricFunctionCount, metrics[2].Name)
	assert.Equal(t, MetricMaxNestingDepth, metrics[3].Name)
	assert.Equal(t, MetricComplexFunctionCount, metrics[4].Name)

	assert.Equal(t, SeverityHigh, metrics[0].Severity, "cyclomatic 25 is high")
	assert.Equal(t, SeverityLow, metrics[1].Severity)

	for _, m := range metrics {
		assert.NotEmpty(t, m.Description, "%s has a description", m.Name)
	}
}

func TestReportCarriesMetrics(t *testing.T) {
	report := analyzeT(t, `function f() { return 1; }`)

	require.Len(t, report.Metrics, 5)
	assert.Equal(t, 1.0, report.Metrics[0].Value)
	assert.Equal(t, 1.0, report.Metrics[2].Value, "one function")
	assert.Equal(t, SeverityLow, report.Metrics[0].Severity)
}
