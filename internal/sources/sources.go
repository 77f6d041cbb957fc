// Package sources loads query and reference tables from CSV files and SQLite
// databases.
package sources

import (
	"context"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/agentstation/progmatch/pkg/constants"
	"github.com/agentstation/progmatch/pkg/entity"
	"github.com/agentstation/progmatch/pkg/errors"
	"github.com/agentstation/progmatch/pkg/logging"
)

// Record is one loaded row.
type Record struct {
	Name     string
	Category string
}

// Loader reads records from a table.
type Loader interface {
	// Load returns the rows in table order. Rows with an empty name are
	// skipped.
	Load(ctx context.Context) ([]Record, error)

	// Path returns the file the loader reads.
	Path() string
}

// options is shared by every loader.
type options struct {
	nameColumn     string
	categoryColumn string
	table          string
	normalize      bool
}

func defaultOptions() *options {
	return &options{
		nameColumn:     constants.DefaultNameColumn,
		categoryColumn: constants.DefaultCategoryColumn,
		normalize:      true,
	}
}

// Option configures a loader.
type Option func(*options)

// WithNameColumn sets the column holding the program name.
func WithNameColumn(column string) Option {
	return func(o *options) {
		if column != "" {
			o.nameColumn = column
		}
	}
}

// WithCategoryColumn sets the column holding the category.
func WithCategoryColumn(column string) Option {
	return func(o *options) {
		if column != "" {
			o.categoryColumn = column
		}
	}
}

// WithTable sets the SQLite table to read. Ignored by the CSV loader.
func WithTable(table string) Option {
	return func(o *options) {
		o.table = table
	}
}

// WithNormalize toggles NFKC folding of loaded cells.
func WithNormalize(enabled bool) Option {
	return func(o *options) {
		o.normalize = enabled
	}
}

func newOptions(opts ...Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Open picks a loader by file extension.
func Open(path string, opts ...Option) (Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return NewCSVLoader(path, opts...), nil
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteLoader(path, opts...), nil
	default:
		return nil, &errors.ValidationError{
			Field:   "file",
			Value:   path,
			Message: "unsupported extension (want .csv, .db, .sqlite or .sqlite3)",
		}
	}
}

// Queries loads a query list.
func Queries(ctx context.Context, l Loader) ([]entity.Query, error) {
	records, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Query, len(records))
	for i, r := range records {
		out[i] = entity.Query{Name: r.Name, Category: r.Category}
	}
	logged(ctx, l.Path(), "queries", records)
	return out, nil
}

// References loads a reference catalog.
func References(ctx context.Context, l Loader) ([]entity.Reference, error) {
	records, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Reference, len(records))
	for i, r := range records {
		out[i] = entity.Reference{Name: r.Name, Category: r.Category}
	}
	logged(ctx, l.Path(), "references", records)
	return out, nil
}

// FilterByCategory keeps the queries whose category is listed. No categories
// keeps everything.
func FilterByCategory(ctx context.Context, queries []entity.Query, categories ...string) []entity.Query {
	if len(categories) == 0 {
		return queries
	}
	out := entity.FilterQueries(queries, categories...)
	logging.FromContext(ctx).Info().
		Strs("categories", categories).
		Int("before", len(queries)).
		Int("after", len(out)).
		Msg("Filtered queries by category")
	return out
}

// previewRows is how many rows are logged at debug level after a load.
const previewRows = 5

func logged(ctx context.Context, path, kind string, records []Record) {
	logger := logging.FromContext(ctx)
	logger.Info().
		Str("path", path).
		Int("rows", len(records)).
		Msgf("Loaded %s", kind)

	for i, r := range records {
		if i == previewRows {
			break
		}
		logger.Debug().
			Int("row", i).
			Str("name", r.Name).
			Str("category", r.Category).
			Msg("Loaded row")
	}
}

// normalizeCell applies NFKC folding and drops control characters.
func normalizeCell(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

func (o *options) cell(s string) string {
	if o.normalize {
		return normalizeCell(s)
	}
	return strings.TrimSpace(s)
}
