package sources

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"regexp"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/agentstation/progmatch/pkg/errors"
)

// identifier matches the table and column names the loader will quote.
var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteLoader reads a table from a SQLite database.
type SQLiteLoader struct {
	path string
	opts *options
}

// NewSQLiteLoader creates a loader for the database at path.
func NewSQLiteLoader(path string, opts ...Option) *SQLiteLoader {
	return &SQLiteLoader{path: path, opts: newOptions(opts...)}
}

// Path returns the database path.
func (l *SQLiteLoader) Path() string { return l.path }

// Load reads every row of the configured table in rowid order.
func (l *SQLiteLoader) Load(ctx context.Context) ([]Record, error) {
	if err := l.validate(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(l.path); err != nil {
		return nil, errors.WrapIO("open", l.path, err)
	}

	db, err := sql.Open("sqlite", l.path)
	if err != nil {
		return nil, errors.WrapIO("open", l.path, err)
	}
	defer func() { _ = db.Close() }()

	query := fmt.Sprintf(`SELECT %q, %q FROM %q ORDER BY rowid`,
		l.opts.nameColumn, l.opts.categoryColumn, l.opts.table)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.WrapCanceled("query sqlite", ctx.Err())
		}
		return nil, &errors.ParseError{Format: "sqlite", File: l.path, Message: err.Error(), Err: err}
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var name, category sql.NullString
		if err := rows.Scan(&name, &category); err != nil {
			return nil, errors.WrapParse("sqlite", l.path, err)
		}
		n := l.opts.cell(name.String)
		if n == "" {
			continue
		}
		records = append(records, Record{Name: n, Category: l.opts.cell(category.String)})
	}
	if err := rows.Err(); err != nil {
		if ctx.Err() != nil {
			return nil, errors.WrapCanceled("query sqlite", ctx.Err())
		}
		return nil, errors.WrapParse("sqlite", l.path, err)
	}

	return records, nil
}

func (l *SQLiteLoader) validate() error {
	if l.opts.table == "" {
		return &errors.ValidationError{Field: "table", Message: "is required for SQLite sources"}
	}
	for field, value := range map[string]string{
		"table":           l.opts.table,
		"name_column":     l.opts.nameColumn,
		"category_column": l.opts.categoryColumn,
	} {
		if !identifier.MatchString(value) {
			return &errors.ValidationError{Field: field, Value: value, Message: "must be a plain SQL identifier"}
		}
	}
	return nil
}
