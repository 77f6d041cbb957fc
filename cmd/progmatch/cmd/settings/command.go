// Package settings provides the command that prints the resolved
// configuration.
package settings

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/progmatch/cmd/application"
	"github.com/agentstation/progmatch/internal/cmd/output"
	"github.com/agentstation/progmatch/internal/cmd/table"
	"github.com/agentstation/progmatch/internal/config"
	"github.com/agentstation/progmatch/pkg/errors"
)

// NewCommand creates the config command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long: `Config prints the settings a match session would start with, after the
config file, PROGMATCH_* environment variables and defaults are merged.
Category policy entries are listed per query category.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Settings()
			if err != nil {
				return err
			}
			if s == nil {
				return errors.NewConfigError("settings", "not loaded", nil)
			}
			format := output.FormatTable
			if f := app.OutputFormat(); f != "" {
				format = output.Format(f)
			}
			return output.Print(app.Stdout(), format, ToTableData(s), s)
		},
	}
}

// ToTableData flattens settings into key/value rows using config key names.
func ToTableData(s *config.Settings) table.Data {
	rows := [][]string{
		{"threshold", table.FormatComposite(s.Threshold)},
		{"display_limit", strconv.Itoa(s.DisplayLimit)},
		{"termination_token", s.TerminationToken},
		{"query.file", s.Query.File},
		{"query.name_column", s.Query.NameColumn},
		{"query.category_column", s.Query.CategoryColumn},
		{"query.filter", list(s.Query.Filter)},
		{"reference.file", s.Reference.File},
		{"reference.table", s.Reference.Table},
		{"reference.name_column", s.Reference.NameColumn},
		{"reference.category_column", s.Reference.CategoryColumn},
		{"export.dir", s.Export.Dir},
		{"export.label", s.Export.Label},
		{"export.format", s.Export.Format},
		{"export.provenance", strconv.FormatBool(s.Export.Provenance)},
		{"categories.case_insensitive", strconv.FormatBool(s.Categories.CaseInsensitive)},
	}

	if len(s.Categories.Default) > 0 {
		rows = append(rows, []string{"categories.default", list(s.Categories.Default)})
	} else {
		rows = append(rows, []string{"categories.default", "(own category)"})
	}
	for _, category := range s.Categories.Categories() {
		rows = append(rows, []string{"categories.by_category." + category, list(s.Categories.ByCategory[category])})
	}

	return table.Data{
		Headers:         []string{"Key", "Value"},
		Rows:            rows,
		ColumnAlignment: []table.Align{table.AlignLeft, table.AlignLeft},
	}
}

func list(values []string) string {
	return strings.Join(values, ", ")
}
