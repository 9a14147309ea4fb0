package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanDegradedKeywords(t *testing.T) {
	tests := []struct {
		name           string
		source         string
		wantCyclomatic int
	}{
		{"empty", "", 1},
		{"no keywords", "const a = 1;", 1},
		{"single if", "if (a) {", 2},
		{"if else", "if (a) { } else {", 3},
		{"loop keywords", "for while do", 4},
		{"switch with cases", "switch (x) { case 1: case 2:", 4},
		{"catch", "try { } catch (e) {", 2},
		{"logical operators", "a && b || c", 3},
		{"ternary", "a ? b : c", 2},
		{"keyword inside identifier ignored", "notify(iffy, elsewhere);", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := scanDegraded(tt.source)
			assert.Equal(t, tt.wantCyclomatic, d.cyclomatic)
		})
	}
}

func TestScanDegradedCognitiveFactor(t *testing.T) {
	d := scanDegraded("if (a) { if (b) { if (c) {")
	assert.Equal(t, 4, d.cyclomatic)
	assert.Equal(t, 5, d.cognitive, "round(1.2 * 4)")
}

func TestScanDegradedBraceDepth(t *testing.T) {
	d := scanDegraded("{ { { } } { } }")
	assert.Equal(t, 3, d.maxNesting)

	unbalanced := scanDegraded("} } }")
	assert.Equal(t, 0, unbalanced.maxNesting)
}

func TestDegradedReportShape(t *testing.T) {
	r := degradedReport("if (x {", 1)

	assert.True(t, r.Degraded)
	assert.Equal(t, 2, r.Cyclomatic)
	assert.Empty(t, r.Functions)
	assert.Len(t, r.Metrics, 5)
	assert.Equal(t, 0.0, r.Metrics[2].Value, "no functions in degraded mode")
	assert.NotEmpty(t, r.Suggestions)
	assert.Equal(t, 10.0, r.Viz.XMax)
}
