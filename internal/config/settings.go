// Package config holds the matching session settings and loads them through
// viper from config files, PROGMATCH_* environment variables and defaults.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/agentstation/progmatch/internal/export"
	"github.com/agentstation/progmatch/pkg/candidates"
	"github.com/agentstation/progmatch/pkg/constants"
	"github.com/agentstation/progmatch/pkg/errors"
)

// EnvPrefix is prepended to environment variable names.
const EnvPrefix = "PROGMATCH"

// ConfigName is the config file name searched in $HOME and the working
// directory.
const ConfigName = ".progmatch"

// Settings is the resolved configuration of a matching session.
type Settings struct {
	Threshold        float64           `mapstructure:"threshold" yaml:"threshold" json:"threshold"`
	DisplayLimit     int               `mapstructure:"display_limit" yaml:"display_limit" json:"display_limit"`
	TerminationToken string            `mapstructure:"termination_token" yaml:"termination_token" json:"termination_token"`
	Categories       candidates.Policy `mapstructure:"categories" yaml:"categories" json:"categories"`
	Query            QuerySource       `mapstructure:"query" yaml:"query" json:"query"`
	Reference        ReferenceSource   `mapstructure:"reference" yaml:"reference" json:"reference"`
	Export           Export            `mapstructure:"export" yaml:"export" json:"export"`
}

// QuerySource locates the list of unmatched programs.
type QuerySource struct {
	File           string   `mapstructure:"file" yaml:"file" json:"file"`
	NameColumn     string   `mapstructure:"name_column" yaml:"name_column" json:"name_column"`
	CategoryColumn string   `mapstructure:"category_column" yaml:"category_column" json:"category_column"`
	Filter         []string `mapstructure:"filter" yaml:"filter,omitempty" json:"filter,omitempty"`
}

// ReferenceSource locates the reference catalog.
type ReferenceSource struct {
	File           string `mapstructure:"file" yaml:"file" json:"file"`
	Table          string `mapstructure:"table" yaml:"table,omitempty" json:"table,omitempty"`
	NameColumn     string `mapstructure:"name_column" yaml:"name_column" json:"name_column"`
	CategoryColumn string `mapstructure:"category_column" yaml:"category_column" json:"category_column"`
}

// Export controls where results are written.
type Export struct {
	Dir        string `mapstructure:"dir" yaml:"dir" json:"dir"`
	Label      string `mapstructure:"label" yaml:"label,omitempty" json:"label,omitempty"`
	Format     string `mapstructure:"format" yaml:"format" json:"format"`
	Provenance bool   `mapstructure:"provenance" yaml:"provenance" json:"provenance"`
}

// SetDefaults registers every settings key with its default so environment
// variables can override keys absent from the config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("threshold", constants.AutoAcceptThreshold)
	v.SetDefault("display_limit", constants.DisplayLimit)
	v.SetDefault("termination_token", constants.TerminationToken)
	v.SetDefault("categories.default", []string{})
	v.SetDefault("categories.by_category", map[string][]string{})
	v.SetDefault("categories.case_insensitive", false)
	v.SetDefault("query.file", "")
	v.SetDefault("query.name_column", constants.DefaultNameColumn)
	v.SetDefault("query.category_column", constants.DefaultCategoryColumn)
	v.SetDefault("query.filter", []string{})
	v.SetDefault("reference.file", "")
	v.SetDefault("reference.table", "")
	v.SetDefault("reference.name_column", constants.DefaultNameColumn)
	v.SetDefault("reference.category_column", constants.DefaultCategoryColumn)
	v.SetDefault("export.dir", constants.DefaultExportDir)
	v.SetDefault("export.label", "")
	v.SetDefault("export.format", constants.DefaultExportFormat)
	v.SetDefault("export.provenance", false)
	v.SetDefault("log_level", "")
	v.SetDefault("log_format", "")
	v.SetDefault("log_output", "")
}

// NewViper returns a viper instance with defaults and environment binding.
// When file is empty, .progmatch.yaml is searched in $HOME and the working
// directory.
func NewViper(file string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		return v
	}

	v.SetConfigName(ConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	return v
}

// ReadConfig reads the config file. A missing file in the search path is
// not an error; a missing explicit file is.
func ReadConfig(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return errors.NewConfigError("file", err.Error(), err)
}

// Load decodes and validates settings from v.
func Load(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.NewConfigError("settings", "cannot decode", err)
	}
	s.TerminationToken = strings.TrimSpace(s.TerminationToken)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks ranges and patterns.
func (s *Settings) Validate() error {
	if s.Threshold < 0 || s.Threshold > 100 {
		return errors.NewValidationError("threshold", s.Threshold, "must be within [0, 100]")
	}
	if s.DisplayLimit < 1 {
		return errors.NewValidationError("display_limit", s.DisplayLimit, "must be at least 1")
	}
	if strings.TrimSpace(s.TerminationToken) == "" {
		return errors.NewValidationError("termination_token", s.TerminationToken, "cannot be empty")
	}
	if _, err := strconv.Atoi(strings.TrimSpace(s.TerminationToken)); err == nil {
		return errors.NewValidationError("termination_token", s.TerminationToken, "cannot be an integer")
	}
	if _, err := export.ParseFormat(s.Export.Format); err != nil {
		return err
	}
	return s.Categories.Validate()
}
