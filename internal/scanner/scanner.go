// Package scanner discovers analyzable source files under a set of paths.
package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/fathomdev/fathom/pkg/config"
	"github.com/fathomdev/fathom/pkg/parser"
)

// Scanner finds ECMAScript-family source files in a directory tree.
type Scanner struct {
	config *config.Config
}

// New creates a scanner. A nil config falls back to defaults.
func New(cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Scanner{config: cfg}
}

// ScanPaths walks the given paths (files or directories) and returns the
// analyzable files, sorted for deterministic output. Empty input scans the
// working directory.
func (s *Scanner) ScanPaths(paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var files []string
	seen := make(map[string]bool)

	for _, path := range paths {
		found, err := s.scanPath(path)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", path, err)
		}
		for _, f := range found {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

func (s *Scanner) scanPath(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && s.isExcludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if s.isExcludedFile(d.Name()) {
			return nil
		}
		if parser.DetectDialect(path) == parser.DialectUnknown {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// isExcludedDir checks a directory name against the exclusion list.
func (s *Scanner) isExcludedDir(name string) bool {
	for _, dir := range s.config.Exclude.Dirs {
		if name == dir {
			return true
		}
	}
	return false
}

// isExcludedFile checks a file name against the glob exclusion patterns.
func (s *Scanner) isExcludedFile(name string) bool {
	for _, pattern := range s.config.Exclude.Patterns {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
