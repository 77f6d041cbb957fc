package reconciler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/progmatch/pkg/candidates"
	"github.com/agentstation/progmatch/pkg/disambiguate"
	"github.com/agentstation/progmatch/pkg/entity"
	"github.com/agentstation/progmatch/pkg/errors"
	"github.com/agentstation/progmatch/pkg/logging"
	"github.com/agentstation/progmatch/pkg/match"
	"github.com/agentstation/progmatch/pkg/provenance"
	"github.com/agentstation/progmatch/pkg/reconciler"
)

const testSessionID = "3b241101-e2bb-4255-8caf-4136c566a962"

var catalog = []entity.Reference{
	{Name: "UTSW General Surgery.", Category: "Surgery"},
	{Name: "General Surgery", Category: "Surgery"},
	{Name: "Vascular Surgery", Category: "Surgery"},
	{Name: "Plastic Surgery", Category: "Surgery"},
	{Name: "Dermatology Program", Category: "Dermatology"},
}

var queries = []entity.Query{
	{Name: "UTSW General Surgery", Category: "Surgery"},
	{Name: "Gen Surg", Category: "Surgery"},
	{Name: "Peds", Category: "Pediatrics"},
	{Name: "Vasc Surg", Category: "Surgery"},
	{Name: "Plastic", Category: "Surgery"},
}

func newSession(t *testing.T, op disambiguate.Operator, opts ...reconciler.Option) reconciler.Reconciler {
	t.Helper()
	selector, err := candidates.NewSelector(catalog, candidates.Policy{})
	require.NoError(t, err)

	opts = append([]reconciler.Option{reconciler.WithSessionID(testSessionID)}, opts...)
	r, err := reconciler.New(disambiguate.New(selector, op), opts...)
	require.NoError(t, err)
	return r
}

func TestRunTerminatedEarly(t *testing.T) {
	op := disambiguate.NewScriptedOperator("0", "done", "1")
	result, err := newSession(t, op).Run(context.Background(), queries)
	require.NoError(t, err)

	require.Len(t, result.Matches, 3)
	assert.Equal(t, match.AutoAccepted, result.Matches[0].Resolution)
	assert.Equal(t, "UTSW General Surgery.", result.Matches[0].MatchedName)
	assert.Equal(t, match.HumanSelected, result.Matches[1].Resolution)
	assert.Equal(t, "General Surgery", result.Matches[1].MatchedName)
	assert.Equal(t, match.Unresolved, result.Matches[2].Resolution)
	assert.Equal(t, "Peds", result.Matches[2].MatchedName)

	meta := result.Metadata
	assert.True(t, meta.TerminatedEarly)
	assert.Equal(t, testSessionID, meta.SessionID)
	assert.Equal(t, 97.0, meta.Threshold)
	assert.Equal(t, 5, meta.Stats.QueriesTotal)
	assert.Equal(t, 3, meta.Stats.QueriesProcessed)
	assert.Equal(t, 2, meta.Stats.Skipped())
	assert.Equal(t, 2, meta.Stats.Accepted())
	assert.False(t, meta.EndTime.Before(meta.StartTime))
	assert.Equal(t, 1, op.Remaining(), "replies after done are never read")

	assert.Equal(t, "Session terminated early after 3 of 5 queries: 1 auto-accepted, 1 selected, 1 unresolved.", result.Summary())
}

func TestRunExhaustsQueries(t *testing.T) {
	op := disambiguate.NewScriptedOperator("0", "x", "0")
	result, err := newSession(t, op).Run(context.Background(), queries)
	require.NoError(t, err)

	require.Len(t, result.Matches, len(queries))
	assert.False(t, result.Metadata.TerminatedEarly)
	for i, m := range result.Matches {
		assert.Equal(t, queries[i].Name, m.QueryName, "input order is kept")
	}
	assert.Equal(t, match.Unresolved, result.Matches[3].Resolution)
	assert.Equal(t, match.HumanSelected, result.Matches[4].Resolution)
	assert.Equal(t, "Plastic Surgery", result.Matches[4].MatchedName)
	assert.Equal(t, "Session completed. 5 queries: 1 auto-accepted, 2 selected, 2 unresolved.", result.Summary())
}

func TestRunCoverage(t *testing.T) {
	for n := 0; n <= len(queries); n++ {
		op := disambiguate.NewScriptedOperator("0", "0", "0")
		result, err := newSession(t, op).Run(context.Background(), queries[:n])
		require.NoError(t, err)
		assert.LessOrEqual(t, len(result.Matches), n)
		for i, m := range result.Matches {
			assert.Equal(t, queries[i].Name, m.QueryName)
		}
	}
}

func TestRunEmpty(t *testing.T) {
	result, err := newSession(t, disambiguate.NewScriptedOperator()).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, result.Matches)
	assert.Empty(t, result.Matches)
	assert.Equal(t, "Session completed. No queries to match.", result.Summary())
}

func TestRunDeterministic(t *testing.T) {
	run := func() []match.Result {
		op := disambiguate.NewScriptedOperator("1", "2", "0")
		result, err := newSession(t, op).Run(context.Background(), queries)
		require.NoError(t, err)
		return result.Matches
	}
	assert.Equal(t, run(), run())
}

func TestRunProvenance(t *testing.T) {
	tracker := provenance.NewTracker(true)
	op := disambiguate.NewScriptedOperator("0", "done")
	result, err := newSession(t, op, reconciler.WithTracker(tracker)).Run(context.Background(), queries)
	require.NoError(t, err)

	require.Len(t, result.Provenance, 4)
	assert.Equal(t, "above threshold", result.Provenance[0].Reason)
	require.NotNil(t, result.Provenance[0].TopComposite)
	assert.InDelta(t, 99.6, *result.Provenance[0].TopComposite, 1e-9)
	assert.Equal(t, 4, result.Provenance[0].Candidates)

	assert.Equal(t, "operator selected index 0", result.Provenance[1].Reason)
	assert.Equal(t, "0", result.Provenance[1].Reply)

	assert.Equal(t, "no candidates", result.Provenance[2].Reason)
	assert.Nil(t, result.Provenance[2].TopComposite)
	assert.Equal(t, match.NoIndex, result.Provenance[2].Index)

	assert.True(t, result.Provenance[3].TerminatedRun)
	assert.Equal(t, "done", result.Provenance[3].Reply)

	assert.Len(t, tracker.Find("Gen Surg"), 1)
}

func TestRunWithoutProvenance(t *testing.T) {
	op := disambiguate.NewScriptedOperator("0", "done")
	result, err := newSession(t, op, reconciler.WithProvenance(false)).Run(context.Background(), queries)
	require.NoError(t, err)
	assert.Nil(t, result.Provenance)
	assert.Len(t, result.Matches, 3)
}

func TestRunCanceledKeepsPartialResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	observed := 0
	observer := reconciler.WithObserver(func(position, total int, _ match.Result) {
		observed = position
		assert.Equal(t, len(queries), total)
		cancel()
	})

	op := disambiguate.NewScriptedOperator("0")
	result, err := newSession(t, op, observer).Run(ctx, queries)
	require.Error(t, err)
	assert.True(t, errors.IsCanceled(err))

	require.NotNil(t, result)
	assert.Len(t, result.Matches, 1)
	assert.Equal(t, 1, observed)
	assert.False(t, result.Metadata.TerminatedEarly)
}

func TestRunLogsSessionID(t *testing.T) {
	logger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), logger.Logger)

	_, err := newSession(t, disambiguate.NewScriptedOperator("done")).Run(ctx, queries)
	require.NoError(t, err)

	assert.True(t, logger.Contains(`"session_id":"`+testSessionID+`"`))
	assert.True(t, logger.Contains("Session terminated by operator"))
}

func TestNewValidation(t *testing.T) {
	_, err := reconciler.New(nil)
	assert.True(t, errors.IsValidationError(err))

	selector, err := candidates.NewSelector(catalog, candidates.Policy{})
	require.NoError(t, err)
	controller := disambiguate.New(selector, disambiguate.NewScriptedOperator())

	_, err = reconciler.New(controller, reconciler.WithSessionID("not-a-uuid"))
	assert.True(t, errors.IsValidationError(err))

	_, err = reconciler.New(controller, reconciler.WithTracker(nil))
	assert.True(t, errors.IsValidationError(err))
}
