package application

import (
	"bytes"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/progmatch/internal/config"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
//
// Stdout defaults to a buffer kept on the mock, so tests can read what a
// command printed through Output.
type Mock struct {
	SettingsFunc     func() (*config.Settings, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	NoColorFunc      func() bool
	StdinFunc        func() io.Reader
	StdoutFunc       func() io.Writer
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string

	out bytes.Buffer
}

// Settings returns settings using the mock function or an error-free nil.
func (m *Mock) Settings() (*config.Settings, error) {
	if m.SettingsFunc != nil {
		return m.SettingsFunc()
	}
	return nil, nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// NoColor returns the mock function result or true.
func (m *Mock) NoColor() bool {
	if m.NoColorFunc != nil {
		return m.NoColorFunc()
	}
	return true
}

// Stdin returns the mock function result or an empty reader.
func (m *Mock) Stdin() io.Reader {
	if m.StdinFunc != nil {
		return m.StdinFunc()
	}
	return strings.NewReader("")
}

// Stdout returns the mock function result or the mock's own buffer.
func (m *Mock) Stdout() io.Writer {
	if m.StdoutFunc != nil {
		return m.StdoutFunc()
	}
	return &m.out
}

// Output returns what was written to the default Stdout buffer.
func (m *Mock) Output() string {
	return m.out.String()
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
