package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/progmatch/pkg/constants"
	"github.com/agentstation/progmatch/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "progmatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	v := NewViper(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, ReadConfig(v), "explicit file must exist")

	v = NewViper("")
	v.AddConfigPath(t.TempDir())
	s, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, constants.AutoAcceptThreshold, s.Threshold)
	assert.Equal(t, constants.DisplayLimit, s.DisplayLimit)
	assert.Equal(t, constants.TerminationToken, s.TerminationToken)
	assert.Equal(t, constants.DefaultNameColumn, s.Query.NameColumn)
	assert.Equal(t, constants.DefaultCategoryColumn, s.Reference.CategoryColumn)
	assert.Equal(t, "csv", s.Export.Format)
	assert.False(t, s.Export.Provenance)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
threshold: 90
display_limit: 5
termination_token: " quit "
categories:
  default: ["Surgery*"]
  by_category:
    Dermatology: ["Dermatology"]
query:
  file: queries.csv
  filter: [Surgery]
reference:
  file: refs.db
  table: programs
export:
  dir: out
  format: yaml
  provenance: true
`)
	v := NewViper(path)
	require.NoError(t, ReadConfig(v))
	s, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 90.0, s.Threshold)
	assert.Equal(t, 5, s.DisplayLimit)
	assert.Equal(t, "quit", s.TerminationToken)
	assert.Equal(t, []string{"Surgery*"}, s.Categories.Default)
	list, ok := s.Categories.Allowed("Dermatology")
	assert.True(t, ok)
	assert.Equal(t, []string{"Dermatology"}, list)
	assert.Equal(t, "queries.csv", s.Query.File)
	assert.Equal(t, []string{"Surgery"}, s.Query.Filter)
	assert.Equal(t, "programs", s.Reference.Table)
	assert.Equal(t, "out", s.Export.Dir)
	assert.Equal(t, "yaml", s.Export.Format)
	assert.True(t, s.Export.Provenance)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("PROGMATCH_THRESHOLD", "85.5")
	t.Setenv("PROGMATCH_EXPORT_FORMAT", "json")

	path := writeConfig(t, "threshold: 90\n")
	v := NewViper(path)
	require.NoError(t, ReadConfig(v))
	s, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 85.5, s.Threshold)
	assert.Equal(t, "json", s.Export.Format)
}

func TestReadConfigMalformed(t *testing.T) {
	path := writeConfig(t, "threshold: [1, 2\n")
	err := ReadConfig(NewViper(path))
	require.Error(t, err)

	var cfgErr *errors.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestValidate(t *testing.T) {
	valid := func() Settings {
		return Settings{
			Threshold:        97,
			DisplayLimit:     10,
			TerminationToken: "done",
			Export:           Export{Format: "csv"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Settings)
		field  string
	}{
		{"threshold below range", func(s *Settings) { s.Threshold = -1 }, "threshold"},
		{"threshold above range", func(s *Settings) { s.Threshold = 100.5 }, "threshold"},
		{"display limit zero", func(s *Settings) { s.DisplayLimit = 0 }, "display_limit"},
		{"empty token", func(s *Settings) { s.TerminationToken = "  " }, "termination_token"},
		{"integer token", func(s *Settings) { s.TerminationToken = "3" }, "termination_token"},
		{"unknown export format", func(s *Settings) { s.Export.Format = "xml" }, "export.format"},
		{"bad category pattern", func(s *Settings) { s.Categories.Default = []string{"re:["} }, "categories.default"},
	}

	s := valid()
	require.NoError(t, s.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)

			var vErr *errors.ValidationError
			require.True(t, errors.As(err, &vErr), "got %T", err)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestThresholdBoundaries(t *testing.T) {
	for _, threshold := range []float64{0, 100} {
		s := Settings{Threshold: threshold, DisplayLimit: 1, TerminationToken: "done", Export: Export{Format: "json"}}
		assert.NoError(t, s.Validate())
	}
}
