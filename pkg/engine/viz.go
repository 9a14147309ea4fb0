package engine

// vizXMinDomain is the floor of the x-scale upper bound so near-empty
// charts keep a readable axis.
const vizXMinDomain = 10

// vizBucketBounds assigns color buckets 0..3 by complexity value:
// <5, <10, <15, >=15.
var vizBucketBounds = [...]float64{5, 10, 15}

// buildVisualization converts the function list into a bar-chart
// descriptor: one bar per function in extraction order, linear x-scale over
// [0, max(values, 10)].
func buildVisualization(functions []FunctionComplexity) VisualizationSpec {
	spec := VisualizationSpec{
		XMax: vizXMinDomain,
		Bars: make([]VisualizationBar, 0, len(functions)),
	}

	for _, fn := range functions {
		value := float64(fn.Cyclomatic)
		if value > spec.XMax {
			spec.XMax = value
		}
		spec.Bars = append(spec.Bars, VisualizationBar{
			Label:       fn.Name,
			Value:       value,
			ColorBucket: colorBucket(value),
		})
	}

	return spec
}

// colorBucket maps a complexity value onto one of four severity buckets.
func colorBucket(value float64) int {
	for i, bound := range vizBucketBounds {
		if value < bound {
			return i
		}
	}
	return len(vizBucketBounds)
}
