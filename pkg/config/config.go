// Package config loads host-side configuration from TOML, YAML, or JSON
// files. The engine's severity thresholds are fixed and not configurable;
// config covers the layers around the engine: file discovery, caching,
// output, and analysis options.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	koanfjson "github.com/knadh/koanf/parsers/json"
	koanftoml "github.com/knadh/koanf/parsers/toml"
	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all host configuration options.
type Config struct {
	Analysis AnalysisConfig `koanf:"analysis"`
	Exclude  ExcludeConfig  `koanf:"exclude"`
	Cache    CacheConfig    `koanf:"cache"`
	Output   OutputConfig   `koanf:"output"`
}

// AnalysisConfig controls engine construction.
type AnalysisConfig struct {
	// Dialect forces a grammar dialect; empty means detect per file.
	Dialect string `koanf:"dialect"`
	// IsolateNestedFunctions excludes nested function bodies from their
	// enclosing function's score.
	IsolateNestedFunctions bool `koanf:"isolate_nested_functions"`
	// MaxSourceBytes caps input size per file (0 = engine default).
	MaxSourceBytes int `koanf:"max_source_bytes"`
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns []string `koanf:"patterns"`
	Dirs     []string `koanf:"dirs"`
}

// CacheConfig controls report caching by source hash.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
	TTL     int    `koanf:"ttl"` // TTL in hours
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	cacheDir, _ := os.UserCacheDir()
	return &Config{
		Analysis: AnalysisConfig{},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*.test.ts", "*.test.js", "*.spec.ts", "*.spec.js",
				"*.min.js",
				"*.d.ts",
			},
			Dirs: []string{
				"node_modules",
				"dist",
				"build",
				".git",
			},
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     filepath.Join(cacheDir, "fathom"),
			TTL:     24,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}

// Load reads configuration from a file, layered over defaults. The parser
// is chosen by extension.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault tries well-known config filenames in the working directory
// and falls back to defaults when none exists.
func LoadOrDefault() (*Config, error) {
	for _, name := range []string{".fathom.toml", ".fathom.yaml", ".fathom.yml", ".fathom.json"} {
		if _, err := os.Stat(name); err == nil {
			return Load(name)
		}
	}
	return DefaultConfig(), nil
}

// parserFor selects a koanf parser by file extension.
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return koanftoml.Parser(), nil
	case ".yaml", ".yml":
		return koanfyaml.Parser(), nil
	case ".json":
		return koanfjson.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", path)
	}
}
