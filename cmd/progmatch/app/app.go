// Package app provides the application context and dependency management
// for the progmatch CLI. It centralizes configuration, logging and the
// terminal streams, and hands them to commands through the
// application.Application interface.
package app

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/agentstation/progmatch/cmd/application"
	"github.com/agentstation/progmatch/internal/config"
	"github.com/agentstation/progmatch/pkg/errors"
)

// App represents the progmatch application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config
	viper  *viper.Viper

	// Logger
	logger *zerolog.Logger

	// Terminal streams
	stdin  io.Reader
	stdout io.Writer

	// Session settings (lazy-initialized)
	mu       sync.Mutex
	settings *config.Settings
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
	}

	cfg, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "load config", err)
	}
	app.config = cfg

	logger := NewLogger(cfg)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the --format value, empty for auto-detection.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// NoColor reports whether --no-color or NO_COLOR is set.
func (a *App) NoColor() bool {
	return a.config.NoColor
}

// Stdin returns the operator input stream.
func (a *App) Stdin() io.Reader {
	return a.stdin
}

// Stdout returns the output stream.
func (a *App) Stdout() io.Writer {
	return a.stdout
}

// Settings loads the session settings once. The config file is read when
// the command starts; until then only defaults and the environment apply.
func (a *App) Settings() (*config.Settings, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.settings != nil {
		return a.settings, nil
	}

	v := a.viper
	if v == nil {
		v = config.NewViper(a.config.ConfigFile)
		if err := config.ReadConfig(v); err != nil {
			return nil, err
		}
		a.viper = v
	}

	settings, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	a.settings = settings
	return settings, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(cfg *Config) Option {
	return func(a *App) error {
		a.config = cfg
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithSettings sets the session settings directly (useful for testing).
func WithSettings(settings *config.Settings) Option {
	return func(a *App) error {
		if settings == nil {
			return errors.NewValidationError("settings", nil, "cannot be nil")
		}
		a.settings = settings
		return nil
	}
}

// WithStreams replaces stdin and stdout.
func WithStreams(in io.Reader, out io.Writer) Option {
	return func(a *App) error {
		if in == nil || out == nil {
			return errors.NewValidationError("streams", nil, "input and output are required")
		}
		a.stdin = in
		a.stdout = out
		return nil
	}
}
