package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/progmatch/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf).Level(zerolog.InfoLevel))

	logging.Debug().Msg("debug message")
	logging.Info().Msg("info message")

	assert.Contains(t, buf.String(), "info message")
	assert.NotContains(t, buf.String(), "debug message")
}

func TestContextFields(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithSessionID(ctx, "abc-123")
	ctx = logging.WithQuery(ctx, "Gen Surg")
	ctx = logging.WithCategory(ctx, "Surgery")

	logging.FromContext(ctx).Info().Msg("ranking")

	require.Len(t, tl.Lines(), 1)
	assert.True(t, tl.Contains(`"session_id":"abc-123"`))
	assert.True(t, tl.Contains(`"query":"Gen Surg"`))
	assert.True(t, tl.Contains(`"category":"Surgery"`))
	assert.Equal(t, "abc-123", logging.SessionID(ctx))
}

func TestFromContextDefaults(t *testing.T) {
	//nolint:staticcheck // nil context is handled explicitly
	assert.Same(t, logging.Default(), logging.FromContext(nil))
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	assert.Empty(t, logging.SessionID(context.Background()))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logging.ParseLevel(tt.in))
		})
	}
}

func TestNewLoggerFromConfigDiscard(t *testing.T) {
	oldLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(oldLevel) })

	logger := logging.NewLoggerFromConfig(&logging.Config{Level: "warn", Format: "auto", Output: "discard"})
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
}
