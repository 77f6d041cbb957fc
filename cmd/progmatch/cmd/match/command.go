// Package match provides the interactive matching session command.
package match

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/progmatch/cmd/application"
	"github.com/agentstation/progmatch/internal/config"
)

// Flags holds the match command flags. Only flags the user actually set
// override the loaded settings.
type Flags struct {
	Queries      string
	References   string
	Table        string
	NameColumn   string
	CategoryCol  string
	Filter       []string
	Threshold    float64
	DisplayLimit int
	Token        string
	Label        string
	ExportDir    string
	ExportFormat string
	Provenance   bool
}

// NewCommand creates the match command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match unmatched program names against the reference catalog",
		Long: `Match runs an interactive reconciliation session.

Each query is compared with the reference names admitted for its category.
When the best composite score is at or above the threshold the match is
accepted automatically. Otherwise the ranked candidates are shown and the
operator types the index of the correct one, anything else to leave the query
unmatched, or the termination token to stop and export what was decided.`,
		Example: `  progmatch match -i unmatched.csv -r programs.csv
  progmatch match -i unmatched.csv -r catalog.db --table programs --filter "Vascular Surgery"
  progmatch match -i unmatched.csv -r programs.csv --threshold 95 --label surgery_vascular`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := app.Settings()
			if err != nil {
				return err
			}
			resolved, err := flags.Apply(cmd, settings)
			if err != nil {
				return err
			}
			return Run(cmd.Context(), app, resolved)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.Queries, "queries", "i", "", "unmatched program list (.csv)")
	f.StringVarP(&flags.References, "references", "r", "", "reference catalog (.csv or SQLite .db)")
	f.StringVar(&flags.Table, "table", "", "reference table name for SQLite catalogs")
	f.StringVar(&flags.NameColumn, "name-column", "", "name column in both inputs")
	f.StringVar(&flags.CategoryCol, "category-column", "", "category column in both inputs")
	f.StringSliceVar(&flags.Filter, "filter", nil, "only match queries in these categories")
	f.Float64Var(&flags.Threshold, "threshold", 0, "composite score for automatic acceptance (0-100)")
	f.IntVar(&flags.DisplayLimit, "display-limit", 0, "candidates shown per prompt")
	f.StringVar(&flags.Token, "token", "", "reply that ends the session early")
	f.StringVar(&flags.Label, "label", "", "export file label (asked when empty)")
	f.StringVar(&flags.ExportDir, "export-dir", "", "export directory")
	f.StringVar(&flags.ExportFormat, "export-format", "", "export format: csv, json, yaml")
	f.BoolVar(&flags.Provenance, "provenance", false, "write a provenance report next to the export")

	return cmd
}

// Apply copies settings and overrides every field whose flag was set.
func (f *Flags) Apply(cmd *cobra.Command, settings *config.Settings) (*config.Settings, error) {
	var s config.Settings
	if settings != nil {
		s = *settings
	}
	changed := cmd.Flags().Changed

	if changed("queries") {
		s.Query.File = f.Queries
	}
	if changed("references") {
		s.Reference.File = f.References
	}
	if changed("table") {
		s.Reference.Table = f.Table
	}
	if changed("name-column") {
		s.Query.NameColumn = f.NameColumn
		s.Reference.NameColumn = f.NameColumn
	}
	if changed("category-column") {
		s.Query.CategoryColumn = f.CategoryCol
		s.Reference.CategoryColumn = f.CategoryCol
	}
	if changed("filter") {
		s.Query.Filter = f.Filter
	}
	if changed("threshold") {
		s.Threshold = f.Threshold
	}
	if changed("display-limit") {
		s.DisplayLimit = f.DisplayLimit
	}
	if changed("token") {
		s.TerminationToken = f.Token
	}
	if changed("label") {
		s.Export.Label = f.Label
	}
	if changed("export-dir") {
		s.Export.Dir = f.ExportDir
	}
	if changed("export-format") {
		s.Export.Format = f.ExportFormat
	}
	if changed("provenance") {
		s.Export.Provenance = f.Provenance
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
