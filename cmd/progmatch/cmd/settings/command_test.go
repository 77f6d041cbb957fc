package settings

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/progmatch/cmd/application"
	"github.com/agentstation/progmatch/internal/config"
	"github.com/agentstation/progmatch/pkg/candidates"
)

func testSettings() *config.Settings {
	return &config.Settings{
		Threshold:        95,
		DisplayLimit:     10,
		TerminationToken: "done",
		Categories: candidates.Policy{
			Default:    []string{"Surgery*"},
			ByCategory: map[string][]string{"Dermatology": {"Dermatology", "re:^Derm"}},
		},
		Query:  config.QuerySource{File: "unmatched.csv", Filter: []string{"Vascular Surgery"}},
		Export: config.Export{Dir: ".", Format: "csv"},
	}
}

func TestToTableData(t *testing.T) {
	data := ToTableData(testSettings())

	values := make(map[string]string, len(data.Rows))
	for _, row := range data.Rows {
		require.Len(t, row, 2)
		values[row[0]] = row[1]
	}
	assert.Equal(t, "95.0", values["threshold"])
	assert.Equal(t, "Vascular Surgery", values["query.filter"])
	assert.Equal(t, "Surgery*", values["categories.default"])
	assert.Equal(t, "Dermatology, re:^Derm", values["categories.by_category.Dermatology"])
	assert.Equal(t, "false", values["export.provenance"])
}

func TestToTableDataOwnCategory(t *testing.T) {
	s := testSettings()
	s.Categories = candidates.Policy{}
	data := ToTableData(s)
	last := data.Rows[len(data.Rows)-1]
	assert.Equal(t, []string{"categories.default", "(own category)"}, last)
}

func TestConfigCommandJSON(t *testing.T) {
	app := &application.Mock{
		SettingsFunc:     func() (*config.Settings, error) { return testSettings(), nil },
		OutputFormatFunc: func() string { return "json" },
	}
	cmd := NewCommand(app)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	var got config.Settings
	require.NoError(t, json.Unmarshal([]byte(app.Output()), &got))
	assert.Equal(t, 95.0, got.Threshold)
	assert.Equal(t, []string{"Surgery*"}, got.Categories.Default)
}

func TestConfigCommandNotLoaded(t *testing.T) {
	cmd := NewCommand(&application.Mock{})
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute())
}
