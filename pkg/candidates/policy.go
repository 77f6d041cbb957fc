// Package candidates narrows the reference catalog to the names admissible
// for a query category.
//
// Admission is an allow-list test on the reference row's category. The
// allow-list comes from an explicit Policy fixed when the Selector is built:
// a per-query-category override wins, then the session-wide default list,
// and when neither is configured the query's own category is the only
// admitted one.
package candidates

import (
	"maps"
	"slices"
	"strings"

	"github.com/agentstation/progmatch/internal/matcher"
	"github.com/agentstation/progmatch/pkg/errors"
)

// Policy maps query categories to the reference categories they may match.
// Entries are glob patterns; a name without metacharacters matches itself,
// and a "re:" prefix selects a regular expression.
type Policy struct {
	// Default is applied to every query category without an override.
	Default []string `mapstructure:"default" yaml:"default,omitempty" json:"default,omitempty"`
	// ByCategory overrides Default for specific query categories.
	ByCategory map[string][]string `mapstructure:"by_category" yaml:"by_category,omitempty" json:"by_category,omitempty"`
	// CaseInsensitive folds case when comparing categories.
	CaseInsensitive bool `mapstructure:"case_insensitive" yaml:"case_insensitive,omitempty" json:"case_insensitive,omitempty"`
}

// Allowed returns the allow-list that applies to a query category. The
// second result is false when no pattern is configured and the query's own
// category is used verbatim.
func (p Policy) Allowed(category string) ([]string, bool) {
	if list, ok := p.ByCategory[category]; ok && len(list) > 0 {
		return list, true
	}
	// Config loaders fold map keys to lower case. Validate rejects keys that
	// collide this way, so at most one matches.
	for key, list := range p.ByCategory {
		if len(list) > 0 && strings.EqualFold(key, category) {
			return list, true
		}
	}
	if len(p.Default) > 0 {
		return p.Default, true
	}
	return []string{category}, false
}

// Categories returns the query categories with explicit overrides, sorted.
func (p Policy) Categories() []string {
	return slices.Sorted(maps.Keys(p.ByCategory))
}

// Validate checks that every pattern compiles and that no two override keys
// differ only by case.
func (p Policy) Validate() error {
	_, _, err := p.compile()
	return err
}

func (p Policy) compile() (*matcher.MultiMatcher, map[string]*matcher.MultiMatcher, error) {
	opts := &matcher.Options{CaseInsensitive: p.CaseInsensitive}

	defaults, err := matcher.NewMultiMatcher(p.Default, opts)
	if err != nil {
		return nil, nil, errors.NewValidationError("categories.default", p.Default, err.Error())
	}

	overrides := make(map[string]*matcher.MultiMatcher, len(p.ByCategory))
	folded := make(map[string]string, len(p.ByCategory))
	for _, category := range p.Categories() {
		key := strings.ToLower(category)
		if prev, dup := folded[key]; dup {
			return nil, nil, errors.NewValidationError("categories.by_category."+category, p.ByCategory[category],
				"duplicates "+prev+" ignoring case")
		}
		folded[key] = category
		list := p.ByCategory[category]
		if len(list) == 0 {
			continue
		}
		mm, err := matcher.NewMultiMatcher(list, opts)
		if err != nil {
			return nil, nil, errors.NewValidationError("categories.by_category."+category, list, err.Error())
		}
		overrides[category] = mm
	}
	return defaults, overrides, nil
}
