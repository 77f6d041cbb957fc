// Package application provides the application interface for progmatch
// commands.
//
// Commands accept the interface rather than the concrete App type so they
// can be exercised with a mock in tests:
//
//	mock := &application.Mock{
//	    SettingsFunc: func() (*config.Settings, error) {
//	        return settings, nil
//	    },
//	    StdinFunc: func() io.Reader { return strings.NewReader("0\n") },
//	}
//	cmd := match.NewCommand(mock)
package application

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/progmatch/internal/config"
)

// Application provides what commands need from the running program.
// The App struct from cmd/progmatch/app implements it.
type Application interface {
	// Settings returns the session settings resolved from the config file,
	// PROGMATCH_* environment variables and defaults. Command flags are
	// applied by the commands themselves.
	Settings() (*config.Settings, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// NoColor reports whether ANSI styling is disabled.
	NoColor() bool

	// Stdin is where operator replies are read from.
	Stdin() io.Reader

	// Stdout receives operator tables and command output.
	Stdout() io.Writer

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
