package ranking_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/progmatch/pkg/ranking"
	"github.com/agentstation/progmatch/pkg/similarity"
)

// fixedScorer returns preset scores per candidate name.
func fixedScorer(scores map[string]similarity.Scores) similarity.Scorer {
	return similarity.ScorerFunc(func(_, candidate string) similarity.Scores {
		return scores[candidate]
	})
}

func TestRankOrdersByComposite(t *testing.T) {
	engine := ranking.NewEngine(nil)
	table := engine.Rank("Gen Surg", []string{"Plastic Surgery", "General Surgery", "Vascular Surgery"})

	require.Len(t, table.Rows, 3)
	assert.Equal(t, "General Surgery", table.Rows[0].Name)
	assert.Equal(t, "Vascular Surgery", table.Rows[1].Name)
	assert.Equal(t, "Plastic Surgery", table.Rows[2].Name)
	assert.InDelta(t, 66.8, table.Max, 1e-9)
	assert.Equal(t, table.Rows[0].Composite, table.Max)
	assert.Equal(t, "Gen Surg", table.Query)

	for i := 1; i < len(table.Rows); i++ {
		assert.GreaterOrEqual(t, table.Rows[i-1].Composite, table.Rows[i].Composite)
	}
}

func TestRankStableOnTies(t *testing.T) {
	engine := ranking.NewEngine(fixedScorer(map[string]similarity.Scores{
		"b": {50, 50, 50, 50, 50},
		"a": {50, 50, 50, 50, 50},
		"c": {90, 90, 90, 90, 90},
		"d": {10, 90, 50, 50, 50},
	}))

	table := engine.Rank("q", []string{"b", "a", "c", "d"})

	names := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		names = append(names, row.Name)
	}
	assert.Equal(t, []string{"c", "b", "a", "d"}, names)
	assert.Equal(t, 90.0, table.Max)
	assert.Equal(t, 50.0, table.Rows[3].Composite)
}

func TestRankEmpty(t *testing.T) {
	table := ranking.NewEngine(nil).Rank("q", nil)

	assert.True(t, table.Empty())
	assert.True(t, math.IsInf(table.Max, -1))
	assert.Empty(t, table.Top(10))
}

func TestTop(t *testing.T) {
	names := []string{"a", "b", "c"}
	table := ranking.NewEngine(nil).Rank("a", names)

	assert.Len(t, table.Top(2), 2)
	assert.Len(t, table.Top(10), 3)
	assert.Len(t, table.Top(-1), 3)
	assert.Equal(t, "a", table.Top(1)[0].Name)
}
