package operator_test

import "github.com/agentstation/progmatch/pkg/entity"

type staticSelector map[string][]string

func (s staticSelector) Select(category string) []string { return s[category] }

func entityQuery(name, category string) entity.Query {
	return entity.Query{Name: name, Category: category}
}
