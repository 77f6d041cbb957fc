// Package match defines the per-query match record produced by a
// reconciliation session.
package match

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/agentstation/progmatch/pkg/constants"
	"github.com/agentstation/progmatch/pkg/similarity"
)

// Resolution records how a result was decided.
type Resolution int

const (
	// Unresolved means no candidate was chosen.
	Unresolved Resolution = iota
	// AutoAccepted means the top candidate cleared the threshold.
	AutoAccepted
	// HumanSelected means the operator picked a displayed candidate.
	HumanSelected
)

var resolutionNames = map[Resolution]string{
	Unresolved:    "UNRESOLVED",
	AutoAccepted:  "AUTO_ACCEPTED",
	HumanSelected: "HUMAN_SELECTED",
}

// String returns the upper snake-case name of the resolution.
func (r Resolution) String() string {
	if name, ok := resolutionNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Resolution(%d)", int(r))
}

// ParseResolution is the inverse of Resolution.String.
func ParseResolution(s string) (Resolution, error) {
	for r, name := range resolutionNames {
		if name == s {
			return r, nil
		}
	}
	return Unresolved, fmt.Errorf("unknown resolution %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Resolution) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Resolution) UnmarshalText(text []byte) error {
	parsed, err := ParseResolution(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Composite is either a composite score or the "unable to match" sentinel.
type Composite struct {
	value float64
	ok    bool
}

// Score returns a composite holding v.
func Score(v float64) Composite {
	return Composite{value: v, ok: true}
}

// UnableToMatch is the sentinel composite of an unresolved result.
var UnableToMatch = Composite{}

// Value returns the score and whether one is present.
func (c Composite) Value() (float64, bool) {
	return c.value, c.ok
}

// IsSentinel reports whether c is the "unable to match" sentinel.
func (c Composite) IsSentinel() bool {
	return !c.ok
}

// String formats the score with strconv's shortest representation, or the
// sentinel text.
func (c Composite) String() string {
	if !c.ok {
		return constants.UnableToMatch
	}
	return strconv.FormatFloat(c.value, 'f', -1, 64)
}

// MarshalJSON encodes a number or the sentinel string.
func (c Composite) MarshalJSON() ([]byte, error) {
	if !c.ok {
		return json.Marshal(constants.UnableToMatch)
	}
	return json.Marshal(c.value)
}

// UnmarshalJSON accepts a number or the sentinel string.
func (c *Composite) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*c = Score(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("composite: %w", err)
	}
	if s != constants.UnableToMatch {
		return fmt.Errorf("composite: unexpected value %q", s)
	}
	*c = UnableToMatch
	return nil
}

// MarshalYAML encodes a number or the sentinel string.
func (c Composite) MarshalYAML() (any, error) {
	if !c.ok {
		return constants.UnableToMatch, nil
	}
	return c.value, nil
}

// Result is the match record for one processed query.
type Result struct {
	QueryName   string `json:"query_name" yaml:"query_name"`
	Category    string `json:"category" yaml:"category"`
	MatchedName string `json:"candidate_name" yaml:"candidate_name"`
	// Scores is nil when every metric is absent.
	Scores         *similarity.Scores `json:"scores" yaml:"scores"`
	Composite      Composite          `json:"composite_score" yaml:"composite_score"`
	Resolution     Resolution         `json:"resolution" yaml:"resolution"`
	CandidateIndex int                `json:"candidate_index" yaml:"candidate_index"`
}

// NoIndex is the CandidateIndex of results not picked from a displayed row.
const NoIndex = -1

// Accepted reports whether the result names a reference candidate.
func (r Result) Accepted() bool {
	return r.Resolution == AutoAccepted || r.Resolution == HumanSelected
}

// UnresolvedResult builds the record for a query no candidate was chosen for.
// The matched name falls back to the query name and scores are absent.
func UnresolvedResult(queryName, category string) Result {
	return Result{
		QueryName:      queryName,
		Category:       category,
		MatchedName:    queryName,
		Composite:      UnableToMatch,
		Resolution:     Unresolved,
		CandidateIndex: NoIndex,
	}
}
