package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/fathomdev/fathom/internal/output"
	"github.com/fathomdev/fathom/internal/watch"
	"github.com/fathomdev/fathom/pkg/engine"
	"github.com/fathomdev/fathom/pkg/parser"
)

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Watch for file changes and re-analyze",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "debounce",
				Value: 500 * time.Millisecond,
				Usage: "Debounce window before re-analyzing a changed file",
			},
		},
		Action: runWatchCmd,
	}
}

func runWatchCmd(c *cli.Context) error {
	if c.NArg() > 1 {
		return fmt.Errorf("watch accepts a single path, got %d", c.NArg())
	}
	paths := getPaths(c)

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	absPath, err := filepath.Abs(paths[0])
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	watcher, err := watch.NewWatcher(absPath, cfg, c.Duration("debounce"))
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Stop()

	watcher.SetCallback(func(changedPath string) {
		content, err := os.ReadFile(changedPath)
		if err != nil {
			color.Red("Read error: %v", err)
			return
		}

		a := engine.New(engine.WithDialect(parser.DetectDialect(changedPath)))
		defer a.Close()

		report, err := a.Analyze(string(content))
		if err != nil {
			color.Red("Analysis error: %v", err)
			return
		}

		view := &output.FileView{Path: changedPath, Report: report}
		if err := view.RenderText(os.Stdout, cfg.Output.Color); err != nil {
			color.Red("Render error: %v", err)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nStopping watch...")
		cancel()
	}()

	return watcher.Start(ctx)
}
