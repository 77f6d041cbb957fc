// Package logging provides structured logging for progmatch using zerolog.
// Console output is used when stderr is a terminal and JSON otherwise.
// Logs always go to stderr; the operator table owns stdout.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("category", "Vascular Surgery").Msg("Starting session")
//
//	ctx := logging.WithQuery(ctx, "Gen Surg")
//	logging.FromContext(ctx).Debug().Msg("Ranking candidates")
package logging

import (
	"os"
	"sync/atomic"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger atomic.Pointer[zerolog.Logger]

func init() {
	SetDefault(NewLoggerFromConfig(envConfig()))
}

// envConfig builds the process default from LOG_LEVEL, LOG_FORMAT and
// NO_COLOR before any command line is parsed. DEBUG=1 is a shortcut for
// LOG_LEVEL=debug.
func envConfig() *Config {
	cfg := DefaultConfig()
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Level = level
	} else if os.Getenv("DEBUG") != "" {
		cfg.Level = "debug"
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Format = format
	}
	return cfg
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return defaultLogger.Load()
}

// SetDefault replaces the default global logger and zerolog's log.Logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger.Store(&logger)
	log.Logger = logger
}

// Debug starts a new debug level log event.
func Debug() *zerolog.Event {
	return Default().Debug()
}

// Info starts a new info level log event.
func Info() *zerolog.Event {
	return Default().Info()
}

// Warn starts a new warning level log event.
func Warn() *zerolog.Event {
	return Default().Warn()
}

// Error starts a new error level log event.
func Error() *zerolog.Event {
	return Default().Error()
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
