// Package provenance records how each query's match was decided.
package provenance

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/progmatch/pkg/constants"
	"github.com/agentstation/progmatch/pkg/errors"
	"github.com/agentstation/progmatch/pkg/match"
)

// Decision is the lineage of one match result.
type Decision struct {
	Query      string           `yaml:"query" json:"query"`
	Category   string           `yaml:"category" json:"category"`
	Matched    string           `yaml:"matched,omitempty" json:"matched,omitempty"`
	Resolution match.Resolution `yaml:"resolution" json:"resolution"`
	Reason     string           `yaml:"reason" json:"reason"`
	Reply      string           `yaml:"reply,omitempty" json:"reply,omitempty"`
	// Index is the chosen row, or match.NoIndex.
	Index         int       `yaml:"index" json:"index"`
	TopComposite  *float64  `yaml:"top_composite" json:"top_composite"`
	Threshold     float64   `yaml:"threshold" json:"threshold"`
	Candidates    int       `yaml:"candidates" json:"candidates"`
	Timestamp     time.Time `yaml:"timestamp" json:"timestamp"`
	TerminatedRun bool      `yaml:"terminated_run,omitempty" json:"terminated_run,omitempty"`
}

// Tracker records decisions during a session.
type Tracker interface {
	// Track records the decision made for a query
	Track(query string, decision Decision)

	// Find returns the decisions recorded for a query name
	Find(query string) []Decision

	// Decisions returns every decision in the order they were tracked
	Decisions() []Decision

	// Clear removes all tracked decisions
	Clear()
}

// tracker is the default implementation.
type tracker struct {
	decisions []Decision
	byQuery   map[string][]int
	enabled   bool
}

// NewTracker creates a new provenance tracker. A disabled tracker ignores
// every Track call.
func NewTracker(enabled bool) Tracker {
	return &tracker{
		byQuery: make(map[string][]int),
		enabled: enabled,
	}
}

// Track records a decision.
func (p *tracker) Track(query string, decision Decision) {
	if !p.enabled {
		return
	}

	if decision.Query == "" {
		decision.Query = query
	}
	if decision.Timestamp.IsZero() {
		decision.Timestamp = time.Now()
	}

	p.byQuery[query] = append(p.byQuery[query], len(p.decisions))
	p.decisions = append(p.decisions, decision)
}

// Find returns the decisions for a query name. Duplicate names in the query
// list produce more than one entry.
func (p *tracker) Find(query string) []Decision {
	if !p.enabled {
		return nil
	}

	idx := p.byQuery[query]
	out := make([]Decision, 0, len(idx))
	for _, i := range idx {
		out = append(out, p.decisions[i])
	}
	return out
}

// Decisions returns a copy of the tracked decisions.
func (p *tracker) Decisions() []Decision {
	if !p.enabled {
		return nil
	}
	return append([]Decision(nil), p.decisions...)
}

// Clear removes all decisions.
func (p *tracker) Clear() {
	p.decisions = nil
	p.byQuery = make(map[string][]int)
}

// Report is the provenance file written next to an export.
type Report struct {
	SessionID       string         `yaml:"session_id"`
	GeneratedAt     time.Time      `yaml:"generated_at"`
	TerminatedEarly bool           `yaml:"terminated_early"`
	Counts          map[string]int `yaml:"counts"`
	Decisions       []Decision     `yaml:"decisions"`
}

// GenerateReport builds a report from tracked decisions.
func GenerateReport(sessionID string, decisions []Decision, terminatedEarly bool) *Report {
	report := &Report{
		SessionID:       sessionID,
		GeneratedAt:     time.Now().UTC(),
		TerminatedEarly: terminatedEarly,
		Counts:          make(map[string]int),
		Decisions:       append([]Decision{}, decisions...),
	}

	for _, d := range decisions {
		report.Counts[d.Resolution.String()]++
	}

	return report
}

// String generates a human-readable rendering of the report.
func (r *Report) String() string {
	var sb strings.Builder

	sb.WriteString("Provenance Report\n")
	sb.WriteString("=================\n\n")
	fmt.Fprintf(&sb, "Session: %s\n", r.SessionID)
	if r.TerminatedEarly {
		sb.WriteString("Terminated early by operator\n")
	}

	resolutions := make([]string, 0, len(r.Counts))
	for name := range r.Counts {
		resolutions = append(resolutions, name)
	}
	sort.Strings(resolutions)
	for _, name := range resolutions {
		fmt.Fprintf(&sb, "  %s: %d\n", name, r.Counts[name])
	}
	sb.WriteString("\n")

	for _, d := range r.Decisions {
		fmt.Fprintf(&sb, "%s [%s]\n", d.Query, d.Category)
		fmt.Fprintf(&sb, "  %s: %s\n", d.Resolution, d.Reason)
		if d.Matched != "" && d.Matched != d.Query {
			fmt.Fprintf(&sb, "  Matched: %s\n", d.Matched)
		}
		if d.TopComposite != nil {
			fmt.Fprintf(&sb, "  Top composite: %.1f (threshold %.1f, %d candidates)\n",
				*d.TopComposite, d.Threshold, d.Candidates)
		}
	}

	return sb.String()
}

// WriteFile saves the report as YAML.
func (r *Report) WriteFile(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("create", dir, err)
		}
	}

	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// Load reads a report written by WriteFile.
// Returns nil, nil if the file doesn't exist (not an error).
func Load(path string) (*Report, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the export config
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var report Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	return &report, nil
}
