// Package disambiguate decides each query's match: it takes the top
// candidate when it clears the threshold and asks the operator otherwise.
package disambiguate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/progmatch/pkg/constants"
	"github.com/agentstation/progmatch/pkg/entity"
	pkgerrors "github.com/agentstation/progmatch/pkg/errors"
	"github.com/agentstation/progmatch/pkg/logging"
	"github.com/agentstation/progmatch/pkg/match"
	"github.com/agentstation/progmatch/pkg/ranking"
)

// Selector returns the candidate names admitted for a query category.
type Selector interface {
	Select(category string) []string
}

// Outcome is the controller's answer for one query.
type Outcome struct {
	// Result is nil when Terminated is true.
	Result *match.Result
	// Terminated means the operator ended the session at this query.
	Terminated bool
	// Table is the ranked candidate table the decision was made on.
	Table ranking.Table
	// Reason explains the decision in a few words.
	Reason string
	// Reply is the raw operator reply, empty when none was read.
	Reply string
}

// Controller runs the decision cycle for single queries.
type Controller struct {
	selector     Selector
	engine       *ranking.Engine
	operator     Operator
	threshold    float64
	displayLimit int
	token        string
	hook         StateHook
	logger       *zerolog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithThreshold sets the auto-accept threshold.
func WithThreshold(threshold float64) Option {
	return func(c *Controller) {
		c.threshold = threshold
	}
}

// WithDisplayLimit sets how many rows are shown to the operator.
func WithDisplayLimit(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.displayLimit = n
		}
	}
}

// WithTerminationToken sets the reply that ends the session.
func WithTerminationToken(token string) Option {
	return func(c *Controller) {
		if token = strings.TrimSpace(token); token != "" {
			c.token = token
		}
	}
}

// WithEngine replaces the default ranking engine.
func WithEngine(engine *ranking.Engine) Option {
	return func(c *Controller) {
		if engine != nil {
			c.engine = engine
		}
	}
}

// WithStateHook observes every state transition.
func WithStateHook(hook StateHook) Option {
	return func(c *Controller) {
		c.hook = hook
	}
}

// WithLogger sets the logger used for transition traces. Without it the
// logger is taken from the Resolve context.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a controller with default policy values.
func New(selector Selector, operator Operator, opts ...Option) *Controller {
	c := &Controller{
		selector:     selector,
		engine:       ranking.NewEngine(nil),
		operator:     operator,
		threshold:    constants.AutoAcceptThreshold,
		displayLimit: constants.DisplayLimit,
		token:        constants.TerminationToken,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Threshold returns the auto-accept threshold in force.
func (c *Controller) Threshold() float64 { return c.threshold }

// DisplayLimit returns the number of rows shown per prompt.
func (c *Controller) DisplayLimit() int { return c.displayLimit }

// TerminationToken returns the reply that ends the session.
func (c *Controller) TerminationToken() string { return c.token }

// Resolve decides the match for one query. The only error returned is a
// cancelled context or an operator failure other than io.EOF.
func (c *Controller) Resolve(ctx context.Context, query entity.Query) (Outcome, error) {
	logger := c.logger
	if logger == nil {
		ctxLogger := logging.FromContext(ctx).With().Str("category", query.Category).Logger()
		logger = &ctxLogger
	}
	enter := func(from, to State) State {
		return c.enter(logger, query, from, to)
	}

	state := StateScoring
	table := c.engine.Rank(query.Name, c.selector.Select(query.Category))
	state = enter(state, StateDeciding)

	if table.Empty() {
		result := match.UnresolvedResult(query.Name, query.Category)
		enter(state, StateResolved)
		return Outcome{Result: &result, Table: table, Reason: "no candidates"}, nil
	}

	prompt := Prompt{
		Query:     query.Name,
		Category:  query.Category,
		Rows:      table.Top(c.displayLimit),
		Threshold: c.threshold,
		Token:     c.token,
	}

	if table.Max >= c.threshold {
		state = enter(state, StateAutoAccept)
		prompt.Mode = ModeAudit
		if err := c.operator.Show(prompt); err != nil {
			logger.Warn().Err(err).Str("query", query.Name).Msg("failed to display audit table")
		}
		result := fromRow(query, prompt.Rows[0], 0, match.AutoAccepted)
		enter(state, StateResolved)
		return Outcome{Result: &result, Table: table, Reason: "above threshold"}, nil
	}

	state = enter(state, StateAwaitInput)
	prompt.Mode = ModeSelect
	reply, err := c.operator.Ask(ctx, prompt)
	switch {
	case errors.Is(err, io.EOF):
		logger.Debug().Str("query", query.Name).Msg("operator input closed")
		enter(state, StateTerminatedEarly)
		return Outcome{Terminated: true, Table: table, Reason: "operator input closed"}, nil
	case ctx.Err() != nil:
		return Outcome{Table: table}, pkgerrors.WrapCanceled("await operator reply", ctx.Err())
	case err != nil:
		return Outcome{Table: table}, fmt.Errorf("await operator reply: %w", err)
	}

	outcome := Outcome{Table: table, Reply: reply}
	switch resp := ParseResponse(reply, c.token).(type) {
	case Terminate:
		enter(state, StateTerminatedEarly)
		outcome.Terminated = true
		outcome.Reason = "terminated by operator"
		return outcome, nil
	case SelectIndex:
		if resp.Index >= 0 && resp.Index < len(prompt.Rows) {
			result := fromRow(query, prompt.Rows[resp.Index], resp.Index, match.HumanSelected)
			outcome.Result = &result
			outcome.Reason = fmt.Sprintf("operator selected index %d", resp.Index)
		} else {
			result := match.UnresolvedResult(query.Name, query.Category)
			outcome.Result = &result
			outcome.Reason = fmt.Sprintf("index %d out of range", resp.Index)
		}
	case Unrecognized:
		result := match.UnresolvedResult(query.Name, query.Category)
		outcome.Result = &result
		outcome.Reason = fmt.Sprintf("unrecognized reply %q", resp.Raw)
	}

	enter(state, StateResolved)
	return outcome, nil
}

func (c *Controller) enter(logger *zerolog.Logger, query entity.Query, from, to State) State {
	logger.Trace().
		Str("query", query.Name).
		Stringer("from", from).
		Stringer("to", to).
		Msg("state transition")
	if c.hook != nil {
		c.hook(Transition{Query: query.Name, From: from, To: to})
	}
	return to
}

func fromRow(query entity.Query, row ranking.Candidate, index int, resolution match.Resolution) match.Result {
	scores := row.Scores
	return match.Result{
		QueryName:      query.Name,
		Category:       query.Category,
		MatchedName:    row.Name,
		Scores:         &scores,
		Composite:      match.Score(row.Composite),
		Resolution:     resolution,
		CandidateIndex: index,
	}
}
