package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/progmatch/pkg/entity"
)

func TestFilterQueries(t *testing.T) {
	queries := []entity.Query{
		{Name: "A", Category: "Vascular Surgery"},
		{Name: "B", Category: "Dermatology"},
		{Name: "C", Category: "Vascular Surgery"},
	}

	assert.Equal(t, queries, entity.FilterQueries(queries))
	assert.Equal(t, []entity.Query{queries[0], queries[2]}, entity.FilterQueries(queries, "Vascular Surgery"))
	assert.Empty(t, entity.FilterQueries(queries, "Urology"))
}
