package app

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the process-level configuration: global flags and logging.
// Session settings (threshold, inputs, export) live in internal/config.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Logging configuration. LogLevel is the explicit --log-level flag;
	// DefaultLogLevel comes from the config file or the environment.
	LogLevel        string
	DefaultLogLevel string
	LogFormat       string
	LogOutput       string
}

// LoadConfig loads the process configuration from .env files and the
// environment. Precedence, highest first:
//  1. Command-line flags (applied by UpdateFromFlags)
//  2. PROGMATCH_LOG_* variables and the config file (applied by ApplyFile)
//  3. LOG_LEVEL, LOG_FORMAT, LOG_OUTPUT and NO_COLOR variables
//  4. .env files
//  5. Defaults
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	return &Config{
		NoColor:         os.Getenv("NO_COLOR") != "",
		DefaultLogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:       getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags so that flag values take
// precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// ApplyFile takes the logging keys from the session config.
func (c *Config) ApplyFile(v *viper.Viper) {
	if level := v.GetString("log_level"); level != "" {
		c.DefaultLogLevel = level
	}
	if format := v.GetString("log_format"); format != "" {
		c.LogFormat = format
	}
	if out := v.GetString("log_output"); out != "" {
		c.LogOutput = out
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is loaded after .env; godotenv never overrides variables that
// are already set.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
