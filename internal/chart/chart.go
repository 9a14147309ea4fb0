// Package chart renders a complexity visualization descriptor as an HTML
// bar chart.
package chart

import (
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/fathomdev/fathom/pkg/engine"
)

const chartHeight = "500px"

// bucketColors maps the four visualization color buckets to hex colors, from
// calm to alarming.
var bucketColors = [...]string{"#22c55e", "#eab308", "#f97316", "#ef4444"}

// Build converts a visualization descriptor into a horizontal bar chart: one
// bar per function in descriptor order, value axis fixed to the descriptor's
// x-domain so sibling charts compare visually.
func Build(title string, viz engine.VisualizationSpec) *charts.Bar {
	labels := make([]string, len(viz.Bars))
	data := make([]opts.BarData, len(viz.Bars))
	for i, bar := range viz.Bars {
		labels[i] = bar.Label
		data[i] = opts.BarData{
			Value:     bar.Value,
			ItemStyle: &opts.ItemStyle{Color: bucketColor(bar.ColorBucket)},
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "Cyclomatic complexity per function"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Max:  viz.XMax,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "category",
			Data: labels,
		}),
	)

	bar.AddSeries("Cyclomatic", data,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "right"}),
	)

	return bar
}

// WriteHTML renders the chart for a report to w.
func WriteHTML(w io.Writer, title string, report *engine.Report) error {
	return Build(title, report.Viz).Render(w)
}

// WriteHTMLFile renders the chart for a report to a file at path.
func WriteHTMLFile(path, title string, report *engine.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteHTML(f, title, report)
}

func bucketColor(bucket int) string {
	if bucket < 0 || bucket >= len(bucketColors) {
		return bucketColors[len(bucketColors)-1]
	}
	return bucketColors[bucket]
}
