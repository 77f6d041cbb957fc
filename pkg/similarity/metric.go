package similarity

import "fmt"

// Metric identifies one similarity measure.
type Metric int

const (
	// MetricRatio is the raw edit-distance similarity.
	MetricRatio Metric = iota
	// MetricPartialRatio is the best substring alignment similarity.
	MetricPartialRatio
	// MetricTokenSortRatio compares alphabetically sorted tokens.
	MetricTokenSortRatio
	// MetricTokenSetRatio compares token intersections and differences.
	MetricTokenSetRatio
	// MetricPartialTokenSortRatio is the partial ratio of sorted tokens.
	MetricPartialTokenSortRatio
)

// NumMetrics is the number of metrics in a Scores vector.
const NumMetrics = 5

// Metrics lists every metric in column order.
var Metrics = [NumMetrics]Metric{
	MetricRatio,
	MetricPartialRatio,
	MetricTokenSortRatio,
	MetricTokenSetRatio,
	MetricPartialTokenSortRatio,
}

var metricNames = [NumMetrics]string{
	"ratio",
	"partial_ratio",
	"token_sort_ratio",
	"token_set_ratio",
	"partial_token_sort_ratio",
}

// String returns the column name of the metric.
func (m Metric) String() string {
	if m < 0 || int(m) >= NumMetrics {
		return fmt.Sprintf("metric(%d)", int(m))
	}
	return metricNames[m]
}

// MetricNames returns the column names of all metrics in order.
func MetricNames() []string {
	return append([]string(nil), metricNames[:]...)
}

// Scores holds one value per metric, indexed by Metric.
type Scores [NumMetrics]int

// Get returns the score for a metric.
func (s Scores) Get(m Metric) int {
	return s[m]
}

// Mean returns the unweighted arithmetic mean of all metrics.
func (s Scores) Mean() float64 {
	sum := 0
	for _, v := range s {
		sum += v
	}
	return float64(sum) / NumMetrics
}

// Map returns the scores keyed by metric name.
func (s Scores) Map() map[string]int {
	out := make(map[string]int, NumMetrics)
	for i, v := range s {
		out[metricNames[i]] = v
	}
	return out
}
