package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/fathomdev/fathom/internal/cache"
	"github.com/fathomdev/fathom/internal/fileproc"
	"github.com/fathomdev/fathom/internal/output"
	"github.com/fathomdev/fathom/internal/progress"
	"github.com/fathomdev/fathom/internal/scanner"
	"github.com/fathomdev/fathom/pkg/config"
	"github.com/fathomdev/fathom/pkg/parser"
)

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"an"},
		Usage:     "Analyze cyclomatic and cognitive complexity",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dialect",
				Usage: "Force grammar dialect: javascript, typescript, tsx (detected per file if empty)",
			},
			&cli.BoolFlag{
				Name:  "isolate-nested",
				Usage: "Exclude nested function bodies from enclosing function scores",
			},
			&cli.BoolFlag{
				Name:  "detail",
				Usage: "Show per-function breakdown and suggestions for every file",
			},
			&cli.BoolFlag{
				Name:  "fail-on-high",
				Usage: "Exit with code 2 when any metric is high severity",
			},
		},
		Action: runAnalyzeCmd,
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault()
}

func runAnalyzeCmd(c *cli.Context) error {
	paths := getPaths(c)

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	files, err := scanner.New(cfg).ScanPaths(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	var reportCache *cache.Cache
	if cfg.Cache.Enabled && !c.Bool("no-cache") {
		reportCache, err = cache.New(cfg.Cache.Dir, time.Duration(cfg.Cache.TTL)*time.Hour, true)
		if err != nil {
			color.Yellow("Cache disabled: %v", err)
		}
	}

	dialect := parser.Dialect(c.String("dialect"))
	if dialect == "" {
		dialect = parser.Dialect(cfg.Analysis.Dialect)
	}

	tracker := progress.NewTracker("Analyzing complexity...", len(files))
	analysis := fileproc.AnalyzeFiles(files, fileproc.Options{
		Dialect:                dialect,
		IsolateNestedFunctions: c.Bool("isolate-nested") || cfg.Analysis.IsolateNestedFunctions,
		MaxSourceBytes:         cfg.Analysis.MaxSourceBytes,
		Cache:                  reportCache,
		OnProgress:             tracker.Tick,
		OnError: func(path string, err error) {
			fmt.Fprintf(os.Stderr, "  skipped %s: %v\n", path, err)
		},
	})
	tracker.FinishSuccess()

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if c.Bool("detail") || len(analysis.Files) == 1 {
		for _, f := range analysis.Files {
			if err := formatter.Output(&output.FileView{Path: f.Path, Report: f.Report}); err != nil {
				return err
			}
		}
	} else {
		if err := formatter.Output(&output.ProjectView{Analysis: analysis}); err != nil {
			return err
		}
	}

	if c.Bool("fail-on-high") && output.HasHighSeverity(analysis) {
		return cli.Exit("high severity complexity found", 2)
	}
	return nil
}
