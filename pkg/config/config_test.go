package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Empty(t, cfg.Analysis.Dialect)
	assert.Contains(t, cfg.Exclude.Dirs, "node_modules")
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 24, cfg.Cache.TTL)
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fathom.toml")
	content := `
[analysis]
dialect = "typescript"
isolate_nested_functions = true

[output]
format = "json"
color = false

[cache]
enabled = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "typescript", cfg.Analysis.Dialect)
	assert.True(t, cfg.Analysis.IsolateNestedFunctions)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.False(t, cfg.Output.Color)
	assert.False(t, cfg.Cache.Enabled)
	// Unset keys keep their defaults
	assert.Contains(t, cfg.Exclude.Dirs, "node_modules")
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fathom.yaml")
	content := `
analysis:
  dialect: javascript
exclude:
  dirs:
    - vendor
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "javascript", cfg.Analysis.Dialect)
	assert.Contains(t, cfg.Exclude.Dirs, "vendor")
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fathom.json")
	content := `{"output": {"format": "markdown"}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.Output.Format)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load("config.ini")
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
