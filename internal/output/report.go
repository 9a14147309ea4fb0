package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fathomdev/fathom/internal/fileproc"
	"github.com/fathomdev/fathom/pkg/engine"
)

// barWidth is the character width of the widest complexity bar.
const barWidth = 40

// FileView renders a single file's complexity report.
type FileView struct {
	Path   string
	Report *engine.Report
}

func (v *FileView) RenderData() any {
	return map[string]any{
		"path":   v.Path,
		"report": v.Report,
	}
}

func (v *FileView) RenderText(w io.Writer, colored bool) error {
	title := v.Path
	if title == "" {
		title = "Complexity Report"
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len(title)))
	if v.Report.Degraded {
		fmt.Fprintln(w, "(approximate: source failed to parse)")
	}
	fmt.Fprintln(w)

	if err := v.metricsTable(colored).RenderText(w, colored); err != nil {
		return err
	}

	if len(v.Report.Functions) > 0 {
		if err := v.functionsTable().RenderText(w, colored); err != nil {
			return err
		}
		renderBars(w, v.Report.Viz, colored)
		fmt.Fprintln(w)
	}

	if len(v.Report.Suggestions) > 0 {
		fmt.Fprintln(w, "Suggestions")
		fmt.Fprintln(w, strings.Repeat("-", len("Suggestions")))
		for _, s := range v.Report.Suggestions {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}
	return nil
}

func (v *FileView) RenderMarkdown(w io.Writer) error {
	title := v.Path
	if title == "" {
		title = "Complexity Report"
	}
	fmt.Fprintf(w, "# %s\n\n", title)
	if v.Report.Degraded {
		fmt.Fprintln(w, "_Approximate: source failed to parse._")
		fmt.Fprintln(w)
	}

	if err := v.metricsTable(false).RenderMarkdown(w); err != nil {
		return err
	}
	if len(v.Report.Functions) > 0 {
		if err := v.functionsTable().RenderMarkdown(w); err != nil {
			return err
		}
	}
	if len(v.Report.Suggestions) > 0 {
		fmt.Fprintln(w, "## Suggestions")
		fmt.Fprintln(w)
		for _, s := range v.Report.Suggestions {
			fmt.Fprintf(w, "- %s\n", s)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func (v *FileView) metricsTable(colored bool) *Table {
	rows := make([][]string, 0, len(v.Report.Metrics))
	for _, m := range v.Report.Metrics {
		sev := string(m.Severity)
		if colored {
			sev = SeverityColor(string(m.Severity), sev)
		}
		rows = append(rows, []string{m.Name, strconv.FormatFloat(m.Value, 'f', -1, 64), sev})
	}
	return &Table{
		Title:   "Metrics",
		Headers: []string{"Metric", "Value", "Severity"},
		Rows:    rows,
	}
}

func (v *FileView) functionsTable() *Table {
	rows := make([][]string, 0, len(v.Report.Functions))
	for _, fn := range v.Report.Functions {
		rows = append(rows, []string{
			fn.Name,
			fmt.Sprintf("%d-%d", fn.StartLine, fn.EndLine),
			strconv.Itoa(fn.LineCount),
			strconv.Itoa(fn.Cyclomatic),
		})
	}
	return &Table{
		Title:   "Functions",
		Headers: []string{"Function", "Lines", "Length", "Cyclomatic"},
		Rows:    rows,
	}
}

// renderBars draws the visualization descriptor as horizontal ASCII bars
// scaled to the descriptor's x-domain.
func renderBars(w io.Writer, viz engine.VisualizationSpec, colored bool) {
	if len(viz.Bars) == 0 {
		return
	}

	labelWidth := 0
	for _, bar := range viz.Bars {
		if len(bar.Label) > labelWidth {
			labelWidth = len(bar.Label)
		}
	}

	for _, bar := range viz.Bars {
		n := int(bar.Value / viz.XMax * barWidth)
		if n < 1 {
			n = 1
		}
		cells := strings.Repeat("█", n)
		if colored {
			cells = SeverityColor(bucketSeverity(bar.ColorBucket), cells)
		}
		fmt.Fprintf(w, "  %-*s %s %g\n", labelWidth, bar.Label, cells, bar.Value)
	}
}

// bucketSeverity maps the four viz color buckets onto the three severity
// colors used everywhere else.
func bucketSeverity(bucket int) string {
	switch bucket {
	case 0:
		return "low"
	case 1:
		return "medium"
	default:
		return "high"
	}
}

// ProjectView renders a multi-file analysis.
type ProjectView struct {
	Analysis *fileproc.ProjectAnalysis
}

func (v *ProjectView) RenderData() any {
	return v.Analysis
}

func (v *ProjectView) RenderText(w io.Writer, colored bool) error {
	if err := v.filesTable(colored).RenderText(w, colored); err != nil {
		return err
	}
	return v.summaryTable().RenderText(w, colored)
}

func (v *ProjectView) RenderMarkdown(w io.Writer) error {
	if err := v.filesTable(false).RenderMarkdown(w); err != nil {
		return err
	}
	return v.summaryTable().RenderMarkdown(w)
}

func (v *ProjectView) filesTable(colored bool) *Table {
	rows := make([][]string, 0, len(v.Analysis.Files))
	for _, f := range v.Analysis.Files {
		worst := worstSeverity(f.Report)
		sev := string(worst)
		if colored {
			sev = SeverityColor(string(worst), sev)
		}
		degraded := ""
		if f.Report.Degraded {
			degraded = "~"
		}
		rows = append(rows, []string{
			f.Path,
			degraded + strconv.Itoa(f.Report.Cyclomatic),
			degraded + strconv.Itoa(f.Report.Cognitive),
			strconv.Itoa(len(f.Report.Functions)),
			sev,
		})
	}
	return &Table{
		Title:   "Files",
		Headers: []string{"File", "Cyclomatic", "Cognitive", "Functions", "Severity"},
		Rows:    rows,
	}
}

func (v *ProjectView) summaryTable() *Table {
	s := v.Analysis.Summary
	return &Table{
		Title:   "Summary",
		Headers: []string{"Statistic", "Value"},
		Rows: [][]string{
			{"Files analyzed", strconv.Itoa(s.TotalFiles)},
			{"Functions", strconv.Itoa(s.TotalFunctions)},
			{"Degraded files", strconv.Itoa(s.DegradedFiles)},
			{"Avg cyclomatic per file", fmt.Sprintf("%.2f", s.AvgCyclomatic)},
			{"Max function cyclomatic", strconv.Itoa(s.MaxCyclomatic)},
			{"P50 / P90 / P95", fmt.Sprintf("%.0f / %.0f / %.0f", s.P50Cyclomatic, s.P90Cyclomatic, s.P95Cyclomatic)},
		},
	}
}

// worstSeverity returns the highest severity across a report's metrics.
func worstSeverity(r *engine.Report) engine.Severity {
	worst := engine.SeverityLow
	for _, m := range r.Metrics {
		switch m.Severity {
		case engine.SeverityHigh:
			return engine.SeverityHigh
		case engine.SeverityMedium:
			worst = engine.SeverityMedium
		}
	}
	return worst
}

// HasHighSeverity reports whether any file carries a high-severity metric.
func HasHighSeverity(analysis *fileproc.ProjectAnalysis) bool {
	for _, f := range analysis.Files {
		if worstSeverity(f.Report) == engine.SeverityHigh {
			return true
		}
	}
	return false
}
