package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/progmatch/pkg/match"
	"github.com/agentstation/progmatch/pkg/provenance"
)

// Result is the accumulated output of a reconciliation session.
type Result struct {
	// Matches holds one record per processed query, in input order.
	Matches []match.Result

	// Metadata
	Metadata ResultMetadata

	// Provenance holds the decision lineage when tracking is enabled.
	Provenance []provenance.Decision
}

// ResultMetadata contains metadata about the session.
type ResultMetadata struct {
	// SessionID identifies the session in logs and provenance files
	SessionID string

	// StartTime when the session started
	StartTime time.Time

	// EndTime when the session completed
	EndTime time.Time

	// Duration of the session
	Duration time.Duration

	// TerminatedEarly is set when the operator ended the session
	TerminatedEarly bool

	// Threshold in force for auto-acceptance
	Threshold float64

	// Statistics about the session
	Stats ResultStatistics
}

// ResultStatistics contains counts per resolution.
type ResultStatistics struct {
	QueriesTotal     int
	QueriesProcessed int
	AutoAccepted     int
	HumanSelected    int
	Unresolved       int
	TotalTimeMs      int64
}

// Accepted returns the number of results that name a reference candidate.
func (s ResultStatistics) Accepted() int {
	return s.AutoAccepted + s.HumanSelected
}

// Skipped returns the number of queries never reached.
func (s ResultStatistics) Skipped() int {
	return s.QueriesTotal - s.QueriesProcessed
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	stats := r.Metadata.Stats
	counts := fmt.Sprintf("%d auto-accepted, %d selected, %d unresolved",
		stats.AutoAccepted, stats.HumanSelected, stats.Unresolved)

	if r.Metadata.TerminatedEarly {
		return fmt.Sprintf("Session terminated early after %d of %d queries: %s.",
			stats.QueriesProcessed, stats.QueriesTotal, counts)
	}

	if stats.QueriesProcessed == 0 {
		return "Session completed. No queries to match."
	}

	return fmt.Sprintf("Session completed. %d queries: %s.", stats.QueriesProcessed, counts)
}

// NewResult creates a new result with defaults.
func NewResult(sessionID string, total int) *Result {
	return &Result{
		Matches: []match.Result{},
		Metadata: ResultMetadata{
			SessionID: sessionID,
			StartTime: time.Now(),
			Stats: ResultStatistics{
				QueriesTotal: total,
			},
		},
	}
}

// add appends a match and updates the counters.
func (r *Result) add(m match.Result) {
	r.Matches = append(r.Matches, m)
	r.Metadata.Stats.QueriesProcessed++
	switch m.Resolution {
	case match.AutoAccepted:
		r.Metadata.Stats.AutoAccepted++
	case match.HumanSelected:
		r.Metadata.Stats.HumanSelected++
	default:
		r.Metadata.Stats.Unresolved++
	}
}

// Finalize calculates duration and marks completion.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
	r.Metadata.Stats.TotalTimeMs = r.Metadata.Duration.Milliseconds()
}
