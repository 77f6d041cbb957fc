package match_test

import (
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/progmatch/pkg/match"
	"github.com/agentstation/progmatch/pkg/similarity"
)

func TestResolutionString(t *testing.T) {
	assert.Equal(t, "AUTO_ACCEPTED", match.AutoAccepted.String())
	assert.Equal(t, "HUMAN_SELECTED", match.HumanSelected.String())
	assert.Equal(t, "UNRESOLVED", match.Unresolved.String())
	assert.Equal(t, "Resolution(9)", match.Resolution(9).String())

	r, err := match.ParseResolution("HUMAN_SELECTED")
	require.NoError(t, err)
	assert.Equal(t, match.HumanSelected, r)

	_, err = match.ParseResolution("MAYBE")
	assert.Error(t, err)
}

func TestComposite(t *testing.T) {
	c := match.Score(99.6)
	v, ok := c.Value()
	assert.True(t, ok)
	assert.Equal(t, 99.6, v)
	assert.Equal(t, "99.6", c.String())
	assert.False(t, c.IsSentinel())

	assert.True(t, match.UnableToMatch.IsSentinel())
	assert.Equal(t, "unable to match", match.UnableToMatch.String())
}

func TestCompositeJSON(t *testing.T) {
	data, err := json.Marshal([]match.Composite{match.Score(66.8), match.UnableToMatch})
	require.NoError(t, err)
	assert.JSONEq(t, `[66.8, "unable to match"]`, string(data))

	var got []match.Composite
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, []match.Composite{match.Score(66.8), match.UnableToMatch}, got)

	var bad match.Composite
	assert.Error(t, json.Unmarshal([]byte(`"nope"`), &bad))
}

func TestResultJSON(t *testing.T) {
	scores := similarity.Scores{98, 100, 100, 100, 100}
	result := match.Result{
		QueryName:      "UTSW General Surgery",
		Category:       "Surgery",
		MatchedName:    "UTSW General Surgery.",
		Scores:         &scores,
		Composite:      match.Score(99.6),
		Resolution:     match.AutoAccepted,
		CandidateIndex: 0,
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"query_name": "UTSW General Surgery",
		"category": "Surgery",
		"candidate_name": "UTSW General Surgery.",
		"scores": [98, 100, 100, 100, 100],
		"composite_score": 99.6,
		"resolution": "AUTO_ACCEPTED",
		"candidate_index": 0
	}`, string(data))
}

func TestUnresolvedResult(t *testing.T) {
	result := match.UnresolvedResult("Gen Surg", "Surgery")

	assert.Equal(t, "Gen Surg", result.MatchedName)
	assert.Nil(t, result.Scores)
	assert.True(t, result.Composite.IsSentinel())
	assert.Equal(t, match.Unresolved, result.Resolution)
	assert.Equal(t, match.NoIndex, result.CandidateIndex)
	assert.False(t, result.Accepted())

	data, err := yaml.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(data), "composite_score: unable to match")
	assert.Contains(t, string(data), "resolution: UNRESOLVED")
	assert.Contains(t, string(data), "scores: null")
}
