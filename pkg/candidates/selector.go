package candidates

import (
	"strings"

	"github.com/agentstation/progmatch/internal/matcher"
	"github.com/agentstation/progmatch/pkg/entity"
)

// Selector returns the distinct reference names admitted for a category.
type Selector struct {
	refs      []entity.Reference
	policy    Policy
	defaults  *matcher.MultiMatcher
	overrides map[string]*matcher.MultiMatcher
}

// NewSelector compiles the policy once for the whole session.
func NewSelector(refs []entity.Reference, policy Policy) (*Selector, error) {
	defaults, overrides, err := policy.compile()
	if err != nil {
		return nil, err
	}
	return &Selector{
		refs:      refs,
		policy:    policy,
		defaults:  defaults,
		overrides: overrides,
	}, nil
}

// Policy returns the policy the selector was built with.
func (s *Selector) Policy() Policy {
	return s.policy
}

// Select returns the names of admitted reference rows, deduplicated and in
// first-occurrence order.
func (s *Selector) Select(category string) []string {
	admit := s.admitter(category)

	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, ref := range s.refs {
		if !admit(ref.Category) {
			continue
		}
		if _, dup := seen[ref.Name]; dup {
			continue
		}
		seen[ref.Name] = struct{}{}
		names = append(names, ref.Name)
	}
	return names
}

func (s *Selector) admitter(category string) func(string) bool {
	if mm, ok := s.overrides[category]; ok {
		return mm.Match
	}
	for key, mm := range s.overrides {
		if strings.EqualFold(key, category) {
			return mm.Match
		}
	}
	if s.defaults.Len() > 0 {
		return s.defaults.Match
	}
	if s.policy.CaseInsensitive {
		return func(c string) bool { return strings.EqualFold(c, category) }
	}
	return func(c string) bool { return c == category }
}
