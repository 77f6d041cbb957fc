// Package entity defines the two record kinds reconciled by progmatch.
package entity

// Query is one unmatched program from the source list.
type Query struct {
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
}

// Reference is one row of the reference catalog.
type Reference struct {
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
}

// FilterQueries keeps the queries whose category is one of categories,
// preserving order. With no categories every query is kept.
func FilterQueries(queries []Query, categories ...string) []Query {
	if len(categories) == 0 {
		return queries
	}
	allowed := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		allowed[c] = struct{}{}
	}
	out := make([]Query, 0, len(queries))
	for _, q := range queries {
		if _, ok := allowed[q.Category]; ok {
			out = append(out, q)
		}
	}
	return out
}
