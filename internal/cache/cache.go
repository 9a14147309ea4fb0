// Package cache stores analysis reports on disk, keyed by source content, so
// unchanged files skip re-analysis across runs.
package cache

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/blake3"

	"github.com/fathomdev/fathom/pkg/engine"
)

// Cache is a file-backed report cache. A disabled cache is valid and all
// operations become no-ops.
type Cache struct {
	dir     string
	ttl     time.Duration
	enabled bool
}

// entry is the on-disk record. ContentHash guards against key collisions on
// renamed or moved files.
type entry struct {
	ContentHash string         `json:"content_hash"`
	Timestamp   time.Time      `json:"timestamp"`
	Report      *engine.Report `json:"report"`
}

// New creates a cache rooted at dir. When enabled is false no directory is
// created and lookups always miss.
func New(dir string, ttl time.Duration, enabled bool) (*Cache, error) {
	if !enabled {
		return &Cache{enabled: false}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	return &Cache{
		dir:     dir,
		ttl:     ttl,
		enabled: true,
	}, nil
}

// HashBytes computes a BLAKE3 hash of bytes and returns it as a hex string.
func HashBytes(data []byte) string {
	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// GetReport returns the cached report for path if the stored content hash
// matches and the entry has not expired. Expired entries are removed on read.
func (c *Cache) GetReport(path, contentHash string) (*engine.Report, bool) {
	if !c.enabled {
		return nil, false
	}

	entryPath := c.keyPath(path)
	data, err := os.ReadFile(entryPath)
	if err != nil {
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false
	}

	if e.ContentHash != contentHash {
		return nil, false
	}

	if time.Since(e.Timestamp) > c.ttl {
		os.Remove(entryPath)
		return nil, false
	}

	return e.Report, true
}

// SetReport stores a report for path under the given content hash.
func (c *Cache) SetReport(path, contentHash string, report *engine.Report) error {
	if !c.enabled {
		return nil
	}

	data, err := json.Marshal(entry{
		ContentHash: contentHash,
		Timestamp:   time.Now(),
		Report:      report,
	})
	if err != nil {
		return err
	}

	return os.WriteFile(c.keyPath(path), data, 0600)
}

// Invalidate removes the entry for path.
func (c *Cache) Invalidate(path string) error {
	if !c.enabled {
		return nil
	}
	err := os.Remove(c.keyPath(path))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear removes all cache entries.
func (c *Cache) Clear() error {
	if !c.enabled {
		return nil
	}
	return os.RemoveAll(c.dir)
}

// keyPath converts a source path to a cache file path. The key is hashed so
// arbitrary paths map to safe filenames.
func (c *Cache) keyPath(key string) string {
	hash := blake3.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(hash[:])+".json")
}

// Stats describes the cache contents.
type Stats struct {
	Entries   int   `json:"entries"`
	TotalSize int64 `json:"total_size"`
}

// GetStats walks the cache directory and tallies entries.
func (c *Cache) GetStats() (*Stats, error) {
	if !c.enabled {
		return &Stats{}, nil
	}

	stats := &Stats{}
	err := filepath.Walk(c.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		stats.Entries++
		stats.TotalSize += info.Size()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return stats, nil
}
