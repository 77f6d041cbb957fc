package reconciler

import (
	"github.com/google/uuid"

	"github.com/agentstation/progmatch/pkg/errors"
	"github.com/agentstation/progmatch/pkg/match"
	"github.com/agentstation/progmatch/pkg/provenance"
)

// Observer is called after each query is resolved, with its position and
// the total query count.
type Observer func(position, total int, result match.Result)

// Options configures a reconciler.
type options struct {
	tracking  bool
	tracker   provenance.Tracker
	sessionID string
	observer  Observer
}

func defaultOptions() *options {
	return &options{
		tracking: true,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	options, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}
	if options.tracker == nil {
		options.tracker = provenance.NewTracker(options.tracking)
	}
	if options.sessionID == "" {
		options.sessionID = uuid.NewString()
	}
	return options, nil
}

// WithProvenance enables decision lineage tracking.
func WithProvenance(enabled bool) Option {
	return func(r *options) error {
		r.tracking = enabled
		return nil
	}
}

// WithTracker records decisions into an existing tracker.
func WithTracker(tracker provenance.Tracker) Option {
	return func(r *options) error {
		if tracker == nil {
			return &errors.ValidationError{
				Field:   "tracker",
				Message: "cannot be nil",
			}
		}
		r.tracker = tracker
		r.tracking = true
		return nil
	}
}

// WithSessionID fixes the session identifier instead of generating one.
func WithSessionID(id string) Option {
	return func(r *options) error {
		if _, err := uuid.Parse(id); err != nil {
			return &errors.ValidationError{
				Field:   "session_id",
				Value:   id,
				Message: "must be a UUID",
			}
		}
		r.sessionID = id
		return nil
	}
}

// WithObserver registers a callback invoked after each resolved query.
func WithObserver(observer Observer) Option {
	return func(r *options) error {
		r.observer = observer
		return nil
	}
}
