package errors_test

import (
	"context"
	"errors"
	"testing"

	pkgerrors "github.com/agentstation/progmatch/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{Resource: "column", ID: "program"}
		assert.Equal(t, `column "program" not found`, err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("table", "programs")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("threshold", 120.0, "must be within [0, 100]")
		assert.Equal(t, "validation failed for field threshold: must be within [0, 100]", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "empty policy"}
		assert.Equal(t, "validation failed: empty policy", err.Error())
	})
}

func TestConfigError(t *testing.T) {
	base := errors.New("bad yaml")
	err := pkgerrors.NewConfigError("categories", "cannot decode", base)
	assert.Equal(t, "configuration error in categories: cannot decode", err.Error())
	assert.ErrorIs(t, err, base)

	err = &pkgerrors.ConfigError{Message: "missing"}
	assert.Equal(t, "configuration error: missing", err.Error())
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name string
		err  *pkgerrors.ParseError
		want string
	}{
		{
			name: "file and line",
			err:  &pkgerrors.ParseError{Format: "csv", File: "a.csv", Line: 3, Message: "wrong field count"},
			want: "csv parse error in a.csv at line 3: wrong field count",
		},
		{
			name: "file only",
			err:  &pkgerrors.ParseError{Format: "csv", File: "a.csv", Message: "no header"},
			want: "csv parse error in a.csv: no header",
		},
		{
			name: "no file",
			err:  &pkgerrors.ParseError{Format: "yaml", Message: "bad indent"},
			want: "yaml parse error: bad indent",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestWrapHelpers(t *testing.T) {
	assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
	assert.NoError(t, pkgerrors.WrapParse("csv", "x", nil))
	assert.NoError(t, pkgerrors.WrapCanceled("ask", nil))

	base := errors.New("permission denied")
	err := pkgerrors.WrapIO("open", "/tmp/a.csv", base)
	require.Error(t, err)
	assert.Equal(t, "IO error during open of /tmp/a.csv: permission denied", err.Error())
	assert.ErrorIs(t, err, base)

	err = pkgerrors.WrapCanceled("read operator reply", context.Canceled)
	assert.True(t, pkgerrors.IsCanceled(err))
	assert.ErrorIs(t, err, context.Canceled)
}
