package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fathomdev/fathom/pkg/parser"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "tests", "fixtures", name))
	require.NoError(t, err)
	return string(data)
}

func TestAnalyzeFixtureTSX(t *testing.T) {
	source := readFixture(t, "sample.tsx")

	a := New(WithDialect(parser.DialectTSX))
	defer a.Close()

	report, err := a.Analyze(source)
	require.NoError(t, err)

	assert.False(t, report.Degraded)
	require.NotEmpty(t, report.Functions)

	names := make(map[string]bool)
	for _, fn := range report.Functions {
		names[fn.Name] = true
	}
	assert.True(t, names["classifyOrder"])
	assert.True(t, names["summarize"])
	assert.True(t, names["OrderBadge"])

	assert.Greater(t, report.Cyclomatic, 1)
	assert.Greater(t, report.Cognitive, 0)
}

func TestAnalyzeFixtureMalformed(t *testing.T) {
	source := readFixture(t, "malformed.ts")

	a := New(WithDialect(parser.DialectTypeScript))
	defer a.Close()

	report, err := a.Analyze(source)
	require.NoError(t, err)

	assert.True(t, report.Degraded)
	assert.Empty(t, report.Functions)
	assert.Greater(t, report.Cyclomatic, 1)
}
