// Package reconciler runs a reconciliation session: it walks the query list
// in order, resolves each query through the disambiguation controller and
// accumulates the match results.
package reconciler

import (
	"context"

	"github.com/agentstation/progmatch/pkg/disambiguate"
	"github.com/agentstation/progmatch/pkg/entity"
	"github.com/agentstation/progmatch/pkg/errors"
	"github.com/agentstation/progmatch/pkg/logging"
	"github.com/agentstation/progmatch/pkg/match"
	"github.com/agentstation/progmatch/pkg/provenance"
)

// Resolver decides the match for a single query.
type Resolver interface {
	Resolve(ctx context.Context, query entity.Query) (disambiguate.Outcome, error)
	Threshold() float64
}

// Reconciler is the main interface for running a session.
type Reconciler interface {
	// Run processes queries in order until they are exhausted or the
	// operator terminates the session. On error the partial result is
	// returned along with it.
	Run(ctx context.Context, queries []entity.Query) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	resolver   Resolver
	provenance provenance.Tracker
	tracking   bool
	sessionID  string
	observer   Observer
}

// New creates a new Reconciler with options.
func New(resolver Resolver, opts ...Option) (Reconciler, error) {
	if resolver == nil {
		return nil, &errors.ValidationError{
			Field:   "resolver",
			Message: "cannot be nil",
		}
	}

	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &reconciler{
		resolver:   resolver,
		provenance: options.tracker,
		tracking:   options.tracking,
		sessionID:  options.sessionID,
		observer:   options.observer,
	}, nil
}

// Run performs the session.
func (r *reconciler) Run(ctx context.Context, queries []entity.Query) (*Result, error) {
	ctx = logging.WithSessionID(ctx, r.sessionID)
	logger := logging.FromContext(ctx)

	result := NewResult(r.sessionID, len(queries))
	result.Metadata.Threshold = r.resolver.Threshold()
	defer result.Finalize()

	logger.Info().
		Int("queries", len(queries)).
		Float64("threshold", result.Metadata.Threshold).
		Msg("Starting reconciliation session")

	for i, query := range queries {
		outcome, err := r.resolver.Resolve(logging.WithQuery(ctx, query.Name), query)
		if err != nil {
			r.finish(result)
			logger.Warn().Err(err).
				Int("processed", len(result.Matches)).
				Msg("Reconciliation session interrupted")
			return result, err
		}

		if outcome.Terminated {
			result.Metadata.TerminatedEarly = true
			r.track(query, outcome, result.Metadata.Threshold, true)
			logger.Info().
				Str("query", query.Name).
				Int("processed", len(result.Matches)).
				Int("remaining", len(queries)-i).
				Msg("Session terminated by operator")
			break
		}

		result.add(*outcome.Result)
		r.track(query, outcome, result.Metadata.Threshold, false)

		logger.Debug().
			Str("query", query.Name).
			Str("category", query.Category).
			Stringer("resolution", outcome.Result.Resolution).
			Str("matched", outcome.Result.MatchedName).
			Msg("Query resolved")

		if r.observer != nil {
			r.observer(i+1, len(queries), *outcome.Result)
		}
	}

	r.finish(result)
	logger.Info().
		Int("processed", result.Metadata.Stats.QueriesProcessed).
		Int("accepted", result.Metadata.Stats.Accepted()).
		Int("unresolved", result.Metadata.Stats.Unresolved).
		Bool("terminated_early", result.Metadata.TerminatedEarly).
		Msg("Reconciliation session finished")

	return result, nil
}

// track records the decision for a query when tracking is enabled.
func (r *reconciler) track(query entity.Query, outcome disambiguate.Outcome, threshold float64, terminated bool) {
	if !r.tracking {
		return
	}

	decision := provenance.Decision{
		Query:         query.Name,
		Category:      query.Category,
		Reason:        outcome.Reason,
		Reply:         outcome.Reply,
		Index:         match.NoIndex,
		Threshold:     threshold,
		Candidates:    len(outcome.Table.Rows),
		TerminatedRun: terminated,
	}
	if !outcome.Table.Empty() {
		top := outcome.Table.Max
		decision.TopComposite = &top
	}
	if outcome.Result != nil {
		decision.Matched = outcome.Result.MatchedName
		decision.Resolution = outcome.Result.Resolution
		decision.Index = outcome.Result.CandidateIndex
	}

	r.provenance.Track(query.Name, decision)
}

func (r *reconciler) finish(result *Result) {
	if r.tracking {
		result.Provenance = r.provenance.Decisions()
	}
}
