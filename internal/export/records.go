// Package export writes session results to dated files.
package export

import (
	"strconv"

	"github.com/agentstation/progmatch/pkg/match"
)

// Record is one exported row. Field order is the column order.
type Record struct {
	Ratio                 *int            `json:"ratio" yaml:"ratio"`
	PartialRatio          *int            `json:"partial_ratio" yaml:"partial_ratio"`
	TokenSortRatio        *int            `json:"token_sort_ratio" yaml:"token_sort_ratio"`
	TokenSetRatio         *int            `json:"token_set_ratio" yaml:"token_set_ratio"`
	PartialTokenSortRatio *int            `json:"partial_token_sort_ratio" yaml:"partial_token_sort_ratio"`
	CandidateName         string          `json:"candidate_name" yaml:"candidate_name"`
	QueryName             string          `json:"query_name" yaml:"query_name"`
	Category              string          `json:"category" yaml:"category"`
	CompositeScore        match.Composite `json:"composite_score" yaml:"composite_score"`
	Resolution            string          `json:"resolution" yaml:"resolution"`
}

// Columns returns the export header in column order.
func Columns() []string {
	return []string{
		"ratio",
		"partial_ratio",
		"token_sort_ratio",
		"token_set_ratio",
		"partial_token_sort_ratio",
		"candidate_name",
		"query_name",
		"category",
		"composite_score",
		"resolution",
	}
}

// Records flattens results in order. Absent scores stay nil.
func Records(results []match.Result) []Record {
	out := make([]Record, 0, len(results))
	for _, r := range results {
		rec := Record{
			CandidateName:  r.MatchedName,
			QueryName:      r.QueryName,
			Category:       r.Category,
			CompositeScore: r.Composite,
			Resolution:     r.Resolution.String(),
		}
		if r.Scores != nil {
			s := *r.Scores
			rec.Ratio = &s[0]
			rec.PartialRatio = &s[1]
			rec.TokenSortRatio = &s[2]
			rec.TokenSetRatio = &s[3]
			rec.PartialTokenSortRatio = &s[4]
		}
		out = append(out, rec)
	}
	return out
}

// Row returns the record as CSV cells. Absent scores are empty cells.
func (r Record) Row() []string {
	return []string{
		intCell(r.Ratio),
		intCell(r.PartialRatio),
		intCell(r.TokenSortRatio),
		intCell(r.TokenSetRatio),
		intCell(r.PartialTokenSortRatio),
		r.CandidateName,
		r.QueryName,
		r.Category,
		r.CompositeScore.String(),
		r.Resolution,
	}
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
