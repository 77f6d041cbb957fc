package alerts_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/progmatch/internal/cmd/alerts"
	"github.com/agentstation/progmatch/internal/cmd/output"
)

func TestAlertString(t *testing.T) {
	a := alerts.NewSuccess("Exported 3 results").WithDetails("2024-05-01_vascular.csv")
	assert.Equal(t, "✓ Exported 3 results", a.String())

	a = alerts.NewError("export failed").WithError(errors.New("disk full"))
	assert.Equal(t, "✗ export failed: disk full", a.String())
	assert.Equal(t, "warning", alerts.LevelWarning.String())
	assert.Equal(t, "unknown(9)", alerts.Level(9).String())
}

func TestFormatWriterPlain(t *testing.T) {
	var buf bytes.Buffer
	w := alerts.NewFormatWriter(&buf, output.FormatTable)

	require.NoError(t, w.WriteAlert(alerts.NewWarning("Session terminated early").WithDetails("2 queries skipped")))
	assert.Equal(t, "! Session terminated early\n   2 queries skipped\n", buf.String())

	buf.Reset()
	require.NoError(t, w.WithColor(true).WriteAlert(alerts.NewInfo("hi")))
	assert.Equal(t, "\033[36mi hi\033[0m\n", buf.String())
}

func TestFormatWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	w := alerts.NewFormatWriter(&buf, output.FormatJSON)

	require.NoError(t, w.WriteAlert(alerts.NewError("export failed").WithError(errors.New("disk full"))))
	assert.JSONEq(t, `{"level":"error","message":"export failed","error":"disk full"}`, buf.String())
}
