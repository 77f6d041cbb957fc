package disambiguate

import (
	"context"

	"github.com/agentstation/progmatch/pkg/ranking"
)

// Mode tells the operator whether a reply is expected.
type Mode int

const (
	// ModeAudit displays an auto-accepted table.
	ModeAudit Mode = iota
	// ModeSelect asks the operator to choose a row.
	ModeSelect
)

// Prompt is what the operator sees for one query.
type Prompt struct {
	Query     string
	Category  string
	Rows      []ranking.Candidate
	Threshold float64
	Token     string
	Mode      Mode
}

// Operator is the human on the other side of the session.
type Operator interface {
	// Show displays a prompt without waiting for a reply.
	Show(p Prompt) error
	// Ask displays a prompt and blocks for one reply. It returns io.EOF when
	// the input stream ends and ctx.Err() when ctx is done first.
	Ask(ctx context.Context, p Prompt) (string, error)
}
