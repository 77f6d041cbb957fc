package disambiguate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/progmatch/pkg/disambiguate"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		raw  string
		want disambiguate.Response
	}{
		{raw: "done", want: disambiguate.Terminate{}},
		{raw: " done\n", want: disambiguate.Terminate{}},
		{raw: "3", want: disambiguate.SelectIndex{Index: 3}},
		{raw: "-2", want: disambiguate.SelectIndex{Index: -2}},
		{raw: "+1", want: disambiguate.SelectIndex{Index: 1}},
		{raw: "two", want: disambiguate.Unrecognized{Raw: "two"}},
		{raw: "", want: disambiguate.Unrecognized{Raw: ""}},
		{raw: "Done", want: disambiguate.Unrecognized{Raw: "Done"}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, disambiguate.ParseResponse(tt.raw, "done"))
		})
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "AWAIT_INPUT", disambiguate.StateAwaitInput.String())
	assert.Equal(t, "TERMINATED_EARLY", disambiguate.StateTerminatedEarly.String())
	assert.Equal(t, "State(42)", disambiguate.State(42).String())
}
