package output_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/progmatch/internal/cmd/output"
	"github.com/agentstation/progmatch/internal/cmd/table"
)

var sample = table.Data{
	Headers:         []string{"#", "Candidate"},
	Rows:            [][]string{{"0", "General Surgery"}, {"1", "Vascular Surgery"}},
	ColumnAlignment: []table.Align{table.AlignRight, table.AlignLeft},
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.NewFormatter(output.FormatTable).Format(&buf, sample))

	out := buf.String()
	assert.Contains(t, out, "General Surgery")
	assert.Contains(t, out, "Vascular Surgery")
	assert.Contains(t, strings.ToUpper(out), "CANDIDATE")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&output.TableFormatter{}).Format(&buf, map[string]int{"ratio": 70}))
	assert.JSONEq(t, `{"ratio": 70}`, buf.String())
}

func TestPrint(t *testing.T) {
	raw := []map[string]string{{"candidate": "General Surgery"}}

	var buf bytes.Buffer
	require.NoError(t, output.Print(&buf, output.FormatJSON, sample, raw))
	assert.JSONEq(t, `[{"candidate": "General Surgery"}]`, buf.String())

	buf.Reset()
	require.NoError(t, output.Print(&buf, output.FormatYAML, sample, raw))
	assert.Equal(t, "- candidate: General Surgery\n", buf.String())

	buf.Reset()
	require.NoError(t, output.Print(&buf, output.FormatTable, sample, raw))
	assert.Contains(t, buf.String(), "Vascular Surgery")
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"table", "JSON", "yaml", ""} {
		_, err := output.ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := output.ParseFormat("xml")
	assert.Error(t, err)
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, output.FormatYAML, output.DetectFormat("YAML"))
}

func TestTitleHeader(t *testing.T) {
	assert.Equal(t, "Token Set Ratio", output.TitleHeader("token_set_ratio"))
	assert.Equal(t, "Composite Score", output.TitleHeader("composite_score"))
}
