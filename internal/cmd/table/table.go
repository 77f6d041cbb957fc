// Package table converts session values into rows for the CLI tables.
package table

import (
	"strconv"

	"github.com/agentstation/progmatch/pkg/match"
	"github.com/agentstation/progmatch/pkg/ranking"
	"github.com/agentstation/progmatch/pkg/similarity"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// Short column headers for the five metrics, in metric order.
var metricHeaders = [similarity.NumMetrics]string{"Ratio", "Partial", "Sort", "Set", "Partial Sort"}

// CandidatesToTableData renders a ranked candidate list with its row index,
// which is what the operator types to select a row.
func CandidatesToTableData(rows []ranking.Candidate) Data {
	headers := append([]string{"#"}, metricHeaders[:]...)
	headers = append(headers, "Composite", "Candidate")

	out := make([][]string, 0, len(rows))
	for i, row := range rows {
		cells := make([]string, 0, len(headers))
		cells = append(cells, strconv.Itoa(i))
		cells = append(cells, scoreCells(&row.Scores)...)
		cells = append(cells, FormatComposite(row.Composite), row.Name)
		out = append(out, cells)
	}

	return Data{
		Headers:         headers,
		Rows:            out,
		ColumnAlignment: numericThenLeft(len(headers), 1),
	}
}

// MatchesToTableData renders session results, one row per query.
func MatchesToTableData(results []match.Result) Data {
	headers := []string{"Query", "Category", "Match", "Composite", "Resolution"}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		matched := r.MatchedName
		if !r.Accepted() {
			matched = "-"
		}
		rows = append(rows, []string{
			r.QueryName,
			r.Category,
			matched,
			compositeCell(r.Composite),
			r.Resolution.String(),
		})
	}

	return Data{
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignLeft},
	}
}

// ScoresToTableData renders one metric vector as metric/value rows followed
// by the composite.
func ScoresToTableData(scores similarity.Scores) Data {
	rows := make([][]string, 0, similarity.NumMetrics+1)
	for _, m := range similarity.Metrics {
		rows = append(rows, []string{m.String(), strconv.Itoa(scores.Get(m))})
	}
	rows = append(rows, []string{"composite", FormatComposite(scores.Mean())})

	return Data{
		Headers:         []string{"Metric", "Score"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// FormatComposite prints a composite score with one decimal place.
func FormatComposite(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func compositeCell(c match.Composite) string {
	if v, ok := c.Value(); ok {
		return FormatComposite(v)
	}
	return c.String()
}

func scoreCells(s *similarity.Scores) []string {
	cells := make([]string, similarity.NumMetrics)
	for i := range cells {
		if s == nil {
			cells[i] = "-"
			continue
		}
		cells[i] = strconv.Itoa(s[i])
	}
	return cells
}

// numericThenLeft right-aligns every column except the trailing `left` ones.
func numericThenLeft(n, left int) []Align {
	align := make([]Align, n)
	for i := range align {
		align[i] = AlignRight
		if i >= n-left {
			align[i] = AlignLeft
		}
	}
	return align
}
