package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fathomdev/fathom/pkg/engine"
)

func TestWriteHTML(t *testing.T) {
	report, err := engine.Analyze(`function pick(x) {
  if (x > 0) {
    return x;
  }
  return 0;
}

function echo(x) {
  return x;
}
`)
	require.NoError(t, err)
	require.Len(t, report.Functions, 2)

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, "src/pick.ts", report))

	out := buf.String()
	assert.Contains(t, out, "pick")
	assert.Contains(t, out, "echo")
	assert.Contains(t, out, "src/pick.ts")
	assert.Contains(t, out, "<html")
}

func TestWriteHTMLFile(t *testing.T) {
	report, err := engine.Analyze("function f() { return 1; }\n")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "chart.html")
	require.NoError(t, WriteHTMLFile(path, "f.ts", report))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestBucketColor(t *testing.T) {
	assert.Equal(t, "#22c55e", bucketColor(0))
	assert.Equal(t, "#ef4444", bucketColor(3))
	// Out of range clamps to the hottest color.
	assert.Equal(t, "#ef4444", bucketColor(9))
	assert.Equal(t, "#ef4444", bucketColor(-1))
}
