// Package ranking scores candidate names against a query and orders them by
// composite score.
package ranking

import (
	"math"
	"sort"

	"github.com/agentstation/progmatch/pkg/similarity"
)

// NoCandidates is the Max of a table built from an empty candidate set.
var NoCandidates = math.Inf(-1)

// Candidate is one scored reference name.
type Candidate struct {
	Name      string            `json:"candidate_name" yaml:"candidate_name"`
	Scores    similarity.Scores `json:"scores" yaml:"scores"`
	Composite float64           `json:"composite_score" yaml:"composite_score"`
}

// Table is the ranked candidate list for one query.
type Table struct {
	Query string
	Rows  []Candidate
	// Max is the highest composite score, or NoCandidates when Rows is empty.
	Max float64
}

// Empty reports whether the table was built from no candidates at all.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Top returns at most n leading rows.
func (t Table) Top(n int) []Candidate {
	if n < 0 || n > len(t.Rows) {
		n = len(t.Rows)
	}
	return t.Rows[:n]
}

// Engine ranks candidates with a similarity scorer.
type Engine struct {
	scorer similarity.Scorer
}

// NewEngine returns an engine using scorer, or similarity.Default when nil.
func NewEngine(scorer similarity.Scorer) *Engine {
	if scorer == nil {
		scorer = similarity.Default
	}
	return &Engine{scorer: scorer}
}

// Rank scores every name against query and sorts by composite descending.
// Equal composites keep the order of names.
func (e *Engine) Rank(query string, names []string) Table {
	rows := make([]Candidate, len(names))
	for i, name := range names {
		scores := e.scorer.Score(query, name)
		rows[i] = Candidate{
			Name:      name,
			Scores:    scores,
			Composite: scores.Mean(),
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Composite > rows[j].Composite
	})

	table := Table{Query: query, Rows: rows, Max: NoCandidates}
	if len(rows) > 0 {
		table.Max = rows[0].Composite
	}
	return table
}
