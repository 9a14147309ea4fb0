package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/fathomdev/fathom/internal/cache"
)

func cacheCmd() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the report cache",
		Subcommands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show cache entry count and size",
				Action: runCacheStatsCmd,
			},
			{
				Name:   "clear",
				Usage:  "Remove all cached reports",
				Action: runCacheClearCmd,
			},
		},
	}
}

func openCache(c *cli.Context) (*cache.Cache, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	return cache.New(cfg.Cache.Dir, time.Duration(cfg.Cache.TTL)*time.Hour, true)
}

func runCacheStatsCmd(c *cli.Context) error {
	reportCache, err := openCache(c)
	if err != nil {
		return err
	}

	stats, err := reportCache.GetStats()
	if err != nil {
		return err
	}

	fmt.Printf("Entries: %d\n", stats.Entries)
	fmt.Printf("Size:    %d bytes\n", stats.TotalSize)
	return nil
}

func runCacheClearCmd(c *cli.Context) error {
	reportCache, err := openCache(c)
	if err != nil {
		return err
	}

	if err := reportCache.Clear(); err != nil {
		return err
	}
	color.Green("Cache cleared")
	return nil
}
