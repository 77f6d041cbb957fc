package sources

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"io"
	"os"
	"strings"

	"github.com/agentstation/progmatch/pkg/errors"
)

// CSVLoader reads a CSV file with a header row.
type CSVLoader struct {
	path string
	opts *options
}

// NewCSVLoader creates a loader for path.
func NewCSVLoader(path string, opts ...Option) *CSVLoader {
	return &CSVLoader{path: path, opts: newOptions(opts...)}
}

// Path returns the CSV file path.
func (l *CSVLoader) Path() string { return l.path }

// Load reads every row of the file.
func (l *CSVLoader) Load(ctx context.Context) ([]Record, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, errors.WrapIO("open", l.path, err)
	}
	defer func() { _ = f.Close() }()

	return l.read(ctx, f)
}

func (l *CSVLoader) read(ctx context.Context, r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &errors.ParseError{Format: "csv", File: l.path, Message: "missing header row"}
	}
	if err != nil {
		return nil, errors.WrapParse("csv", l.path, err)
	}

	nameIdx, categoryIdx := -1, -1
	for i, col := range header {
		col = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		switch col {
		case l.opts.nameColumn:
			nameIdx = i
		case l.opts.categoryColumn:
			categoryIdx = i
		}
	}
	if nameIdx < 0 {
		return nil, errors.NewNotFoundError("column", l.opts.nameColumn)
	}
	if categoryIdx < 0 {
		return nil, errors.NewNotFoundError("column", l.opts.categoryColumn)
	}

	var records []Record
	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapCanceled("read csv", err)
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			perr := &errors.ParseError{Format: "csv", File: l.path, Message: err.Error(), Err: err}
			var csvErr *csv.ParseError
			if stderrors.As(err, &csvErr) {
				perr.Line = csvErr.Line
				perr.Message = csvErr.Err.Error()
			}
			return nil, perr
		}

		name := l.opts.cell(row[nameIdx])
		if name == "" {
			continue
		}
		records = append(records, Record{
			Name:     name,
			Category: l.opts.cell(row[categoryIdx]),
		})
	}

	return records, nil
}
