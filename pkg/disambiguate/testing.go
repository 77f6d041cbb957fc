package disambiguate

import (
	"context"
	"io"
	"sync"
)

// ScriptedOperator replays canned replies. Once the script is exhausted Ask
// returns io.EOF.
type ScriptedOperator struct {
	mu      sync.Mutex
	replies []string
	shown   []Prompt
	asked   []Prompt
}

// NewScriptedOperator returns an operator that answers with replies in order.
func NewScriptedOperator(replies ...string) *ScriptedOperator {
	return &ScriptedOperator{replies: replies}
}

// Show records the prompt.
func (s *ScriptedOperator) Show(p Prompt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = append(s.shown, p)
	return nil
}

// Ask records the prompt and returns the next reply.
func (s *ScriptedOperator) Ask(ctx context.Context, p Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.asked = append(s.asked, p)
	if len(s.replies) == 0 {
		return "", io.EOF
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply, nil
}

// Shown returns the prompts displayed without a reply.
func (s *ScriptedOperator) Shown() []Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Prompt(nil), s.shown...)
}

// Asked returns the prompts that waited for a reply.
func (s *ScriptedOperator) Asked() []Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Prompt(nil), s.asked...)
}

// Remaining returns the number of unused replies.
func (s *ScriptedOperator) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.replies)
}
