package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/fathomdev/fathom/internal/chart"
	"github.com/fathomdev/fathom/pkg/engine"
	"github.com/fathomdev/fathom/pkg/parser"
)

func chartCmd() *cli.Command {
	return &cli.Command{
		Name:      "chart",
		Usage:     "Render a per-function complexity bar chart as HTML",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "out",
				Value: "complexity.html",
				Usage: "HTML output path",
			},
			&cli.StringFlag{
				Name:  "dialect",
				Usage: "Force grammar dialect: javascript, typescript, tsx",
			},
		},
		Action: runChartCmd,
	}
}

func runChartCmd(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("chart requires exactly one source file")
	}
	path := c.Args().First()

	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	dialect := parser.Dialect(c.String("dialect"))
	if dialect == "" {
		dialect = parser.DetectDialect(path)
	}
	if dialect == parser.DialectUnknown {
		return fmt.Errorf("unsupported file type: %s", path)
	}

	a := engine.New(engine.WithDialect(dialect))
	defer a.Close()

	report, err := a.Analyze(string(content))
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	if len(report.Functions) == 0 {
		color.Yellow("No functions found in %s", path)
		return nil
	}

	outPath := c.String("out")
	if err := chart.WriteHTMLFile(outPath, path, report); err != nil {
		return err
	}

	color.Green("Chart written to %s (%d functions)", outPath, len(report.Functions))
	return nil
}
