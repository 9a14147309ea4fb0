// Package fileproc runs the complexity engine over many files concurrently.
package fileproc

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"gonum.org/v1/gonum/stat"

	"github.com/fathomdev/fathom/internal/cache"
	"github.com/fathomdev/fathom/pkg/engine"
	"github.com/fathomdev/fathom/pkg/parser"
)

// DefaultWorkerMultiplier is the multiplier applied to NumCPU for worker
// count. 2x is optimal for mixed I/O and CGO workloads.
const DefaultWorkerMultiplier = 2

// ProgressFunc is called after each file is processed.
type ProgressFunc func()

// ErrorFunc is called when a file fails to process. If nil, failures are
// silently skipped.
type ErrorFunc func(path string, err error)

// ProcessingError represents an error that occurred while processing a file.
type ProcessingError struct {
	Path string
	Err  error
}

func (e ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e ProcessingError) Unwrap() error {
	return e.Err
}

// FileReport pairs a path with its complexity report.
type FileReport struct {
	Path    string         `json:"path"`
	Dialect string         `json:"dialect"`
	Report  *engine.Report `json:"report"`
}

// ProjectSummary aggregates statistics over all analyzed files.
type ProjectSummary struct {
	TotalFiles     int     `json:"total_files"`
	TotalFunctions int     `json:"total_functions"`
	DegradedFiles  int     `json:"degraded_files"`
	AvgCyclomatic  float64 `json:"avg_cyclomatic"`
	MaxCyclomatic  int     `json:"max_cyclomatic"`
	P50Cyclomatic  float64 `json:"p50_cyclomatic"`
	P90Cyclomatic  float64 `json:"p90_cyclomatic"`
	P95Cyclomatic  float64 `json:"p95_cyclomatic"`
}

// ProjectAnalysis is the multi-file result.
type ProjectAnalysis struct {
	Files   []FileReport   `json:"files"`
	Summary ProjectSummary `json:"summary"`
}

// Options configures a parallel run.
type Options struct {
	// MaxWorkers caps concurrency; <= 0 uses 2x NumCPU.
	MaxWorkers int
	// Dialect forces a grammar dialect; empty detects per file.
	Dialect parser.Dialect
	// IsolateNestedFunctions is passed through to the engine.
	IsolateNestedFunctions bool
	// MaxSourceBytes is passed through to the engine (0 = engine default).
	MaxSourceBytes int
	// Cache, when non-nil, skips re-analysis of files whose content hash
	// matches a stored report.
	Cache      *cache.Cache
	OnProgress ProgressFunc
	OnError    ErrorFunc
}

// AnalyzeFiles analyzes files in parallel with a dedicated engine per file
// (tree-sitter parsers are not shareable across goroutines). Results are
// sorted by path; files that fail are reported via OnError and omitted.
func AnalyzeFiles(files []string, opts Options) *ProjectAnalysis {
	if len(files) == 0 {
		return &ProjectAnalysis{Files: []FileReport{}}
	}

	maxWorkers := opts.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU() * DefaultWorkerMultiplier
	}

	results := make([]FileReport, 0, len(files))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(maxWorkers)
	for _, path := range files {
		p.Go(func() {
			report, dialect, err := analyzeOne(path, opts)

			if opts.OnProgress != nil {
				defer opts.OnProgress()
			}
			if err != nil {
				if opts.OnError != nil {
					opts.OnError(path, err)
				}
				return
			}

			mu.Lock()
			results = append(results, FileReport{Path: path, Dialect: string(dialect), Report: report})
			mu.Unlock()
		})
	}
	p.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	return &ProjectAnalysis{
		Files:   results,
		Summary: buildSummary(results),
	}
}

// analyzeOne reads and analyzes a single file.
func analyzeOne(path string, opts Options) (*engine.Report, parser.Dialect, error) {
	dialect := opts.Dialect
	if dialect == "" {
		dialect = parser.DetectDialect(path)
	}
	if dialect == parser.DialectUnknown {
		return nil, dialect, ProcessingError{Path: path, Err: fmt.Errorf("unsupported file type")}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, dialect, ProcessingError{Path: path, Err: err}
	}

	var contentHash string
	if opts.Cache != nil {
		contentHash = cache.HashBytes(content)
		if report, ok := opts.Cache.GetReport(path, contentHash); ok {
			return report, dialect, nil
		}
	}

	engineOpts := []engine.Option{engine.WithDialect(dialect)}
	if opts.IsolateNestedFunctions {
		engineOpts = append(engineOpts, engine.WithIsolatedNestedFunctions())
	}
	if opts.MaxSourceBytes > 0 {
		engineOpts = append(engineOpts, engine.WithMaxSourceSize(opts.MaxSourceBytes))
	}

	a := engine.New(engineOpts...)
	defer a.Close()

	report, err := a.Analyze(string(content))
	if err != nil {
		return nil, dialect, ProcessingError{Path: path, Err: err}
	}

	if opts.Cache != nil {
		opts.Cache.SetReport(path, contentHash, report)
	}

	return report, dialect, nil
}

// buildSummary computes aggregate statistics over per-function cyclomatic
// scores across all files.
func buildSummary(files []FileReport) ProjectSummary {
	s := ProjectSummary{TotalFiles: len(files)}

	var perFunction []float64
	var totalCyclomatic int

	for _, f := range files {
		totalCyclomatic += f.Report.Cyclomatic
		if f.Report.Degraded {
			s.DegradedFiles++
		}
		for _, fn := range f.Report.Functions {
			s.TotalFunctions++
			perFunction = append(perFunction, float64(fn.Cyclomatic))
			if fn.Cyclomatic > s.MaxCyclomatic {
				s.MaxCyclomatic = fn.Cyclomatic
			}
		}
	}

	if len(files) > 0 {
		s.AvgCyclomatic = float64(totalCyclomatic) / float64(len(files))
	}

	if len(perFunction) > 0 {
		sort.Float64s(perFunction)
		s.P50Cyclomatic = stat.Quantile(0.50, stat.Empirical, perFunction, nil)
		s.P90Cyclomatic = stat.Quantile(0.90, stat.Empirical, perFunction, nil)
		s.P95Cyclomatic = stat.Quantile(0.95, stat.Empirical, perFunction, nil)
	}

	return s
}
